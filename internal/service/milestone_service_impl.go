package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	perms      *Permissions
}

// NewMilestoneService creates the milestone service.
func NewMilestoneService(milestones repository.MilestoneRepo, perms *Permissions) MilestoneService {
	return &milestoneService{milestones: milestones, perms: perms}
}

func (s *milestoneService) Create(ctx context.Context, actorID string, m *domain.Milestone) error {
	if err := m.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, m.ProjectID); err != nil {
		return err
	}
	m.ID = uuid.New().String()
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) List(ctx context.Context, f repository.MilestoneFilter) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx, f)
}

func (s *milestoneService) Update(ctx context.Context, actorID string, m *domain.Milestone) error {
	existing, err := s.milestones.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	// Moving a milestone requires membership in the destination project too.
	if m.ProjectID != existing.ProjectID {
		if err := s.perms.RequireProjectMember(ctx, actorID, m.ProjectID); err != nil {
			return err
		}
	}
	return s.milestones.Update(ctx, m)
}

func (s *milestoneService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}
	return s.milestones.Delete(ctx, id)
}
