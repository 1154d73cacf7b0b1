package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type recurringTaskService struct {
	recurring repository.RecurringTaskRepo
	perms     *Permissions
}

// NewRecurringTaskService creates the recurring task service.
func NewRecurringTaskService(recurring repository.RecurringTaskRepo, perms *Permissions) RecurringTaskService {
	return &recurringTaskService{recurring: recurring, perms: perms}
}

func (s *recurringTaskService) Create(ctx context.Context, actorID string, r *domain.RecurringTask) error {
	if err := r.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, r.TodoID); err != nil {
		return err
	}
	r.ID = uuid.New().String()
	if err := s.recurring.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return NewValidationError("todo", "This todo already has a recurrence rule.")
		}
		return err
	}
	return nil
}

func (s *recurringTaskService) GetByID(ctx context.Context, id string) (*domain.RecurringTask, error) {
	return s.recurring.GetByID(ctx, id)
}

func (s *recurringTaskService) List(ctx context.Context, f repository.RecurringTaskFilter) ([]*domain.RecurringTask, error) {
	return s.recurring.List(ctx, f)
}

func (s *recurringTaskService) Update(ctx context.Context, actorID string, r *domain.RecurringTask) error {
	existing, err := s.recurring.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, existing.TodoID); err != nil {
		return err
	}
	// The one-to-one link to the todo is fixed at creation.
	r.TodoID = existing.TodoID
	if err := r.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	return s.recurring.Update(ctx, r)
}

func (s *recurringTaskService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.recurring.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, existing.TodoID); err != nil {
		return err
	}
	return s.recurring.Delete(ctx, id)
}

type activityLogService struct {
	logs  repository.ActivityLogRepo
	perms *Permissions
}

// NewActivityLogService creates the read-only activity log service.
func NewActivityLogService(logs repository.ActivityLogRepo, perms *Permissions) ActivityLogService {
	return &activityLogService{logs: logs, perms: perms}
}

func (s *activityLogService) GetByID(ctx context.Context, actorID, id string) (*domain.ActivityLog, error) {
	if err := s.perms.RequireAuthenticated(actorID); err != nil {
		return nil, err
	}
	return s.logs.GetByID(ctx, id)
}

func (s *activityLogService) List(ctx context.Context, actorID string, f repository.ActivityLogFilter) ([]*domain.ActivityLog, error) {
	if err := s.perms.RequireAuthenticated(actorID); err != nil {
		return nil, err
	}
	return s.logs.List(ctx, f)
}
