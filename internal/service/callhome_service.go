package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"famlink/internal/models"
	"famlink/internal/push"
	"famlink/internal/repository"
)

var ErrCallHomeNotFound = errors.New("call-home request not found")

// CallHomeService lets a family member ask another member to come home.
// A new request replaces any previous one for the same target, and the
// target is notified by push. Notification is best-effort: a target
// with no registered device, or a failed dispatch, never fails the
// request itself.
type CallHomeService struct {
	callHomeRepo *repository.CallHomeRepository
	userRepo     *repository.UserRepository
	familyRepo   *repository.FamilyRepository
	dispatcher   push.Dispatcher
}

// NewCallHomeService creates a new call-home service
func NewCallHomeService(callHomeRepo *repository.CallHomeRepository, userRepo *repository.UserRepository, familyRepo *repository.FamilyRepository, dispatcher push.Dispatcher) *CallHomeService {
	return &CallHomeService{
		callHomeRepo: callHomeRepo,
		userRepo:     userRepo,
		familyRepo:   familyRepo,
		dispatcher:   dispatcher,
	}
}

// Request records a call-home request from requester to target and
// pushes a notification to the target's device
func (s *CallHomeService) Request(ctx context.Context, requester *models.User, familyID, targetID int64) (*models.CallHomeRequest, error) {
	for _, userID := range []int64{requester.ID, targetID} {
		isMember, err := s.familyRepo.IsMember(userID, familyID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify membership: %w", err)
		}
		if !isMember {
			return nil, ErrNotFamilyMember
		}
	}

	request, err := s.callHomeRepo.ReplaceRequest(familyID, targetID, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create call-home request: %w", err)
	}

	s.notifyTarget(ctx, requester, familyID, targetID)

	return request, nil
}

// notifyTarget sends the call-home push to the target's device. Every
// failure path logs and returns; the request stands regardless.
func (s *CallHomeService) notifyTarget(ctx context.Context, requester *models.User, familyID, targetID int64) {
	target, err := s.userRepo.GetUserByID(targetID)
	if err != nil {
		log.Printf("Call-home notify: failed to load target: user=%d error=%v", targetID, err)
		return
	}
	if target == nil || target.DeviceToken == nil || *target.DeviceToken == "" {
		log.Printf("Call-home notify: target has no device token: user=%d", targetID)
		return
	}

	requesterName := "Someone"
	if requester != nil && requester.Name != "" {
		requesterName = requester.Name
	}

	msg := push.Message{
		Token: *target.DeviceToken,
		Title: "Come home, please!",
		Body:  fmt.Sprintf("%s is asking you to come home.", requesterName),
		Data: map[string]string{
			"type":        "call_home_request",
			"requesterId": strconv.FormatInt(requester.ID, 10),
			"familyId":    strconv.FormatInt(familyID, 10),
		},
	}

	id, err := s.dispatcher.Send(ctx, msg)
	if err != nil {
		log.Printf("Call-home notify: dispatch failed: user=%d error=%v", targetID, err)
		return
	}
	log.Printf("Call-home notify: dispatched: user=%d message=%s", targetID, id)
}

// Respond records the target's answer to their pending call-home
// request and notifies the requester. Only the target may respond.
func (s *CallHomeService) Respond(ctx context.Context, caller *models.User, familyID int64, accept bool) (*models.CallHomeRequest, error) {
	request, err := s.callHomeRepo.GetRequest(familyID, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get call-home request: %w", err)
	}
	if request == nil {
		return nil, ErrCallHomeNotFound
	}

	status := models.CallHomeAccepted
	if !accept {
		status = models.CallHomeRejected
	}

	if err := s.callHomeRepo.UpdateStatus(familyID, caller.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update call-home request: %w", err)
	}
	request.Status = status

	s.notifyRequester(ctx, caller, request, accept)

	return request, nil
}

// notifyRequester tells the requester whether the target is coming home
func (s *CallHomeService) notifyRequester(ctx context.Context, target *models.User, request *models.CallHomeRequest, accept bool) {
	requester, err := s.userRepo.GetUserByID(request.RequesterID)
	if err != nil {
		log.Printf("Call-home notify: failed to load requester: user=%d error=%v", request.RequesterID, err)
		return
	}
	if requester == nil || requester.DeviceToken == nil || *requester.DeviceToken == "" {
		return
	}

	targetName := "Someone"
	if target != nil && target.Name != "" {
		targetName = target.Name
	}

	body := fmt.Sprintf("%s is on the way home.", targetName)
	if !accept {
		body = fmt.Sprintf("%s can't come home right now.", targetName)
	}

	msg := push.Message{
		Token: *requester.DeviceToken,
		Title: "Call home update",
		Body:  body,
		Data: map[string]string{
			"type":     "call_home_response",
			"targetId": strconv.FormatInt(request.TargetUserID, 10),
			"familyId": strconv.FormatInt(request.FamilyID, 10),
			"status":   request.Status,
		},
	}

	if _, err := s.dispatcher.Send(ctx, msg); err != nil {
		log.Printf("Call-home notify: dispatch failed: user=%d error=%v", request.RequesterID, err)
	}
}
