package service

import (
	"errors"
	"fmt"
	"time"

	"famlink/internal/models"
	"famlink/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEventNotFound = errors.New("event not found")
)

// ScheduleService handles the family schedule: shared tasks and
// calendar events
type ScheduleService struct {
	taskRepo      *repository.TaskRepository
	eventRepo     *repository.EventRepository
	familyService *FamilyService
}

// NewScheduleService creates a new schedule service
func NewScheduleService(taskRepo *repository.TaskRepository, eventRepo *repository.EventRepository, familyService *FamilyService) *ScheduleService {
	return &ScheduleService{
		taskRepo:      taskRepo,
		eventRepo:     eventRepo,
		familyService: familyService,
	}
}

// CreateTask creates a task in the caller's family. An assignee, when
// set, must be a member of the same family.
func (s *ScheduleService) CreateTask(caller *models.User, familyID int64, title, notes string, assigneeID *int64, dueAt *time.Time) (*models.Task, error) {
	if title == "" {
		return nil, errors.New("task title is required")
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		if err := s.familyService.VerifyFamilyAccess(*assigneeID, familyID); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.CreateTask(&models.Task{
		FamilyID:   familyID,
		CreatorID:  caller.ID,
		AssigneeID: assigneeID,
		Title:      title,
		Notes:      notes,
		DueAt:      dueAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves a family's tasks for a member
func (s *ScheduleService) ListTasks(caller *models.User, familyID int64) ([]models.Task, error) {
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListFamilyTasks(familyID)
}

// SetTaskDone marks a task done or not done
func (s *ScheduleService) SetTaskDone(caller *models.User, taskID int64, done bool) (*models.Task, error) {
	task, err := s.getFamilyTask(caller, taskID)
	if err != nil {
		return nil, err
	}

	task.Done = done
	if err := s.taskRepo.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.taskRepo.GetTaskByID(task.ID)
}

// DeleteTask deletes a task in the caller's family
func (s *ScheduleService) DeleteTask(caller *models.User, taskID int64) error {
	task, err := s.getFamilyTask(caller, taskID)
	if err != nil {
		return err
	}
	return s.taskRepo.DeleteTask(task.ID)
}

func (s *ScheduleService) getFamilyTask(caller *models.User, taskID int64) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, task.FamilyID); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateEvent creates a calendar event in the caller's family
func (s *ScheduleService) CreateEvent(caller *models.User, familyID int64, title, location string, startsAt, endsAt time.Time) (*models.Event, error) {
	if title == "" {
		return nil, errors.New("event title is required")
	}
	if endsAt.Before(startsAt) {
		return nil, errors.New("event must end after it starts")
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.CreateEvent(&models.Event{
		FamilyID:  familyID,
		CreatorID: caller.ID,
		Title:     title,
		Location:  location,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// ListEvents retrieves a family's events for a member
func (s *ScheduleService) ListEvents(caller *models.User, familyID int64) ([]models.Event, error) {
	if err := s.familyService.VerifyFamilyAccess(caller.ID, familyID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListFamilyEvents(familyID)
}

// DeleteEvent deletes an event in the caller's family
func (s *ScheduleService) DeleteEvent(caller *models.User, eventID int64) error {
	event, err := s.eventRepo.GetEventByID(eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}
	if err := s.familyService.VerifyFamilyAccess(caller.ID, event.FamilyID); err != nil {
		return err
	}
	return s.eventRepo.DeleteEvent(event.ID)
}
