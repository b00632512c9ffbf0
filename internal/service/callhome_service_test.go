package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"famlink/internal/models"
	"famlink/internal/push"
)

// recordingDispatcher captures dispatched messages for assertions
type recordingDispatcher struct {
	messages []push.Message
	err      error
}

func (d *recordingDispatcher) Send(ctx context.Context, msg push.Message) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.messages = append(d.messages, msg)
	return "projects/test/messages/" + strconv.Itoa(len(d.messages)), nil
}

func newCallHomeFixture(t *testing.T) (*testEnv, *recordingDispatcher, *CallHomeService, *models.User, *models.User, *models.Family) {
	t.Helper()
	env := newTestEnv(t)
	dispatcher := &recordingDispatcher{}
	svc := NewCallHomeService(env.callHomeRepo, env.userRepo, env.familyRepo, dispatcher)

	requester := env.createUser(t, "mum@example.com", "Mum")
	family := env.createFamily(t, "Call Home Family", requester)
	target := env.createUser(t, "kid@example.com", "Kid")
	env.addMember(t, family, target, models.RoleChild)

	return env, dispatcher, svc, requester, target, family
}

func TestCallHomeNotifiesTarget(t *testing.T) {
	env, dispatcher, svc, requester, target, family := newCallHomeFixture(t)

	if err := env.userRepo.UpdateDeviceToken(target.ID, "kid-device-token"); err != nil {
		t.Fatalf("Failed to set device token: %v", err)
	}

	request, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, target.ID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if request.Status != models.CallHomeRequested {
		t.Errorf("Request status = %s, want REQUESTED", request.Status)
	}
	if request.RequesterID != requester.ID {
		t.Errorf("RequesterID = %d, want %d", request.RequesterID, requester.ID)
	}

	if len(dispatcher.messages) != 1 {
		t.Fatalf("Dispatched %d messages, want 1", len(dispatcher.messages))
	}
	msg := dispatcher.messages[0]
	if msg.Token != "kid-device-token" {
		t.Errorf("Token = %q, want kid-device-token", msg.Token)
	}
	if !strings.Contains(msg.Body, "Mum") {
		t.Errorf("Body %q does not name the requester", msg.Body)
	}
	if msg.Data["type"] != "call_home_request" {
		t.Errorf("Data type = %q, want call_home_request", msg.Data["type"])
	}
	if msg.Data["requesterId"] != strconv.FormatInt(requester.ID, 10) {
		t.Errorf("Data requesterId = %q, want %d", msg.Data["requesterId"], requester.ID)
	}
	if msg.Data["familyId"] != strconv.FormatInt(family.ID, 10) {
		t.Errorf("Data familyId = %q, want %d", msg.Data["familyId"], family.ID)
	}
}

func TestCallHomeWithoutDeviceToken(t *testing.T) {
	env, dispatcher, svc, requester, target, family := newCallHomeFixture(t)

	// Target never registered a device; the request must still succeed
	request, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, target.ID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if request == nil {
		t.Fatal("Request returned nil")
	}

	if len(dispatcher.messages) != 0 {
		t.Errorf("Dispatched %d messages, want 0", len(dispatcher.messages))
	}

	stored, err := env.callHomeRepo.GetRequest(family.ID, target.ID)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if stored == nil || stored.Status != models.CallHomeRequested {
		t.Errorf("Stored request = %+v, want REQUESTED", stored)
	}
}

func TestCallHomeDispatchFailureIgnored(t *testing.T) {
	env, dispatcher, svc, requester, target, family := newCallHomeFixture(t)

	if err := env.userRepo.UpdateDeviceToken(target.ID, "kid-device-token"); err != nil {
		t.Fatalf("Failed to set device token: %v", err)
	}
	dispatcher.err = errors.New("fcm unavailable")

	if _, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, target.ID); err != nil {
		t.Fatalf("Request failed despite best-effort dispatch: %v", err)
	}

	stored, err := env.callHomeRepo.GetRequest(family.ID, target.ID)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if stored == nil {
		t.Error("Request not stored after dispatch failure")
	}
}

func TestCallHomeRequesterNameFallback(t *testing.T) {
	env, dispatcher, svc, _, target, family := newCallHomeFixture(t)

	nameless := env.createUser(t, "nameless@example.com", "")
	env.addMember(t, family, nameless, models.RoleParent)
	if err := env.userRepo.UpdateDeviceToken(target.ID, "kid-device-token"); err != nil {
		t.Fatalf("Failed to set device token: %v", err)
	}

	if _, err := svc.Request(t.Context(), env.reload(t, nameless.ID), family.ID, target.ID); err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if len(dispatcher.messages) != 1 {
		t.Fatalf("Dispatched %d messages, want 1", len(dispatcher.messages))
	}
	if !strings.Contains(dispatcher.messages[0].Body, "Someone") {
		t.Errorf("Body %q does not use the fallback name", dispatcher.messages[0].Body)
	}
}

func TestCallHomeReplacesPreviousRequest(t *testing.T) {
	env, _, svc, requester, target, family := newCallHomeFixture(t)

	second := env.createUser(t, "dad@example.com", "Dad")
	env.addMember(t, family, second, models.RoleParent)

	if _, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, target.ID); err != nil {
		t.Fatalf("First request failed: %v", err)
	}
	if _, err := svc.Request(t.Context(), env.reload(t, second.ID), family.ID, target.ID); err != nil {
		t.Fatalf("Second request failed: %v", err)
	}

	stored, err := env.callHomeRepo.GetRequest(family.ID, target.ID)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if stored == nil {
		t.Fatal("No stored request")
	}
	if stored.RequesterID != second.ID {
		t.Errorf("RequesterID = %d, want the later requester %d", stored.RequesterID, second.ID)
	}
	if stored.Status != models.CallHomeRequested {
		t.Errorf("Status = %s, want REQUESTED after replacement", stored.Status)
	}
}

func TestCallHomeNonMemberRejected(t *testing.T) {
	env, dispatcher, svc, requester, _, family := newCallHomeFixture(t)

	outsider := env.createUser(t, "outsider@example.com", "Outsider")

	if _, err := svc.Request(t.Context(), env.reload(t, outsider.ID), family.ID, requester.ID); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Outsider request: err = %v, want ErrNotFamilyMember", err)
	}
	if _, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, outsider.ID); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Outsider target: err = %v, want ErrNotFamilyMember", err)
	}
	if len(dispatcher.messages) != 0 {
		t.Errorf("Dispatched %d messages for rejected requests, want 0", len(dispatcher.messages))
	}
}

func TestCallHomeRespond(t *testing.T) {
	env, dispatcher, svc, requester, target, family := newCallHomeFixture(t)

	if err := env.userRepo.UpdateDeviceToken(requester.ID, "mum-device-token"); err != nil {
		t.Fatalf("Failed to set device token: %v", err)
	}

	if _, err := svc.Request(t.Context(), env.reload(t, requester.ID), family.ID, target.ID); err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	request, err := svc.Respond(t.Context(), env.reload(t, target.ID), family.ID, true)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if request.Status != models.CallHomeAccepted {
		t.Errorf("Status = %s, want ACCEPTED", request.Status)
	}

	// The requester got the answer
	if len(dispatcher.messages) != 1 {
		t.Fatalf("Dispatched %d messages, want 1", len(dispatcher.messages))
	}
	msg := dispatcher.messages[0]
	if msg.Token != "mum-device-token" {
		t.Errorf("Token = %q, want mum-device-token", msg.Token)
	}
	if msg.Data["type"] != "call_home_response" {
		t.Errorf("Data type = %q, want call_home_response", msg.Data["type"])
	}

	// Responding with no pending request fails
	other := env.createUser(t, "other@example.com", "Other")
	env.addMember(t, family, other, models.RoleChild)
	if _, err := svc.Respond(t.Context(), env.reload(t, other.ID), family.ID, false); !errors.Is(err, ErrCallHomeNotFound) {
		t.Errorf("Respond without request: err = %v, want ErrCallHomeNotFound", err)
	}
}
