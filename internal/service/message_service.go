package service

import (
	"errors"
	"fmt"
	"strings"

	"famlink/internal/models"
	"famlink/internal/repository"
)

const maxMessageLength = 2000

// MessageService handles family chat
type MessageService struct {
	messageRepo   *repository.MessageRepository
	familyService *FamilyService
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo *repository.MessageRepository, familyService *FamilyService) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		familyService: familyService,
	}
}

// SendMessage posts a chat message to the caller's family
func (s *MessageService) SendMessage(caller *models.User, familyID int64, body string) (int64, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, errors.New("message body is required")
	}
	if len(body) > maxMessageLength {
		return 0, errors.New("message body is too long")
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return 0, err
	}

	id, err := s.messageRepo.CreateMessage(familyID, caller.ID, body)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return id, nil
}

// ListMessages retrieves a page of family chat history, newest first.
// Pass beforeID 0 for the latest page; pass the smallest ID from the
// previous page to continue backwards.
func (s *MessageService) ListMessages(caller *models.User, familyID, beforeID int64, limit int) ([]models.Message, error) {
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListMessagesBefore(familyID, beforeID, limit)
}
