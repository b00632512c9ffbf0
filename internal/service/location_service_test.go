package service

import (
	"errors"
	"testing"
)

func TestRecordEntryUpdatesLastActivity(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLocationService(env.locationRepo, env.userRepo, NewFamilyService(env.familyRepo))

	parent := env.createUser(t, "parent@example.com", "Parent")
	family := env.createFamily(t, "Location Family", parent)
	caller := env.reload(t, parent.ID)

	entry, err := svc.RecordEntry(caller, family.ID, 51.5074, -0.1278, "Home")
	if err != nil {
		t.Fatalf("RecordEntry failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("Entry ID not set")
	}

	got := env.reload(t, parent.ID)
	if got.LastActivityID == nil || *got.LastActivityID != entry.ID {
		t.Errorf("LastActivityID = %v, want %d", got.LastActivityID, entry.ID)
	}

	// A later entry moves the pointer
	second, err := svc.RecordEntry(caller, family.ID, 51.5080, -0.1280, "School")
	if err != nil {
		t.Fatalf("Second RecordEntry failed: %v", err)
	}
	got = env.reload(t, parent.ID)
	if got.LastActivityID == nil || *got.LastActivityID != second.ID {
		t.Errorf("LastActivityID = %v, want %d", got.LastActivityID, second.ID)
	}

	entries, err := svc.ListEntries(caller, family.ID, 10)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Entries = %d, want 2", len(entries))
	}
}

func TestRecordEntryValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLocationService(env.locationRepo, env.userRepo, NewFamilyService(env.familyRepo))

	parent := env.createUser(t, "parent@example.com", "Parent")
	family := env.createFamily(t, "Location Family", parent)
	caller := env.reload(t, parent.ID)

	if _, err := svc.RecordEntry(caller, family.ID, 91, 0, ""); err == nil {
		t.Error("RecordEntry accepted latitude 91")
	}
	if _, err := svc.RecordEntry(caller, family.ID, 0, -181, ""); err == nil {
		t.Error("RecordEntry accepted longitude -181")
	}

	outsider := env.createUser(t, "outsider@example.com", "Outsider")
	if _, err := svc.RecordEntry(env.reload(t, outsider.ID), family.ID, 0, 0, ""); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Outsider err = %v, want ErrNotFamilyMember", err)
	}
}

func TestMessagePaging(t *testing.T) {
	env := newTestEnv(t)
	familyService := NewFamilyService(env.familyRepo)
	svc := NewMessageService(env.messageRepo, familyService)

	parent := env.createUser(t, "parent@example.com", "Parent")
	family := env.createFamily(t, "Chat Family", parent)
	caller := env.reload(t, parent.ID)

	for _, body := range []string{"first", "second", "third", "fourth", "fifth"} {
		if _, err := svc.SendMessage(caller, family.ID, body); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	// Latest page, newest first
	page, err := svc.ListMessages(caller, family.ID, 0, 2)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Page size = %d, want 2", len(page))
	}
	if page[0].Body != "fifth" || page[1].Body != "fourth" {
		t.Errorf("Page = [%s, %s], want [fifth, fourth]", page[0].Body, page[1].Body)
	}

	// Continue backwards from the smallest ID of the previous page
	page, err = svc.ListMessages(caller, family.ID, page[1].ID, 2)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(page) != 2 || page[0].Body != "third" || page[1].Body != "second" {
		t.Errorf("Second page wrong: %+v", page)
	}
}

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessageService(env.messageRepo, NewFamilyService(env.familyRepo))

	parent := env.createUser(t, "parent@example.com", "Parent")
	family := env.createFamily(t, "Chat Family", parent)
	caller := env.reload(t, parent.ID)

	if _, err := svc.SendMessage(caller, family.ID, "   "); err == nil {
		t.Error("SendMessage accepted a blank body")
	}

	long := make([]byte, maxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.SendMessage(caller, family.ID, string(long)); err == nil {
		t.Error("SendMessage accepted an oversized body")
	}

	outsider := env.createUser(t, "outsider@example.com", "Outsider")
	if _, err := svc.SendMessage(env.reload(t, outsider.ID), family.ID, "hello"); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Outsider err = %v, want ErrNotFamilyMember", err)
	}
}
