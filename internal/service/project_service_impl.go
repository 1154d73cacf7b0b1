package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	perms    *Permissions
}

// NewProjectService creates the project service.
func NewProjectService(projects repository.ProjectRepo, perms *Permissions) ProjectService {
	return &projectService{projects: projects, perms: perms}
}

// Create stamps the acting identity as owner; the owner is never
// client-supplied and always starts as a member.
func (s *projectService) Create(ctx context.Context, actorID string, p *domain.Project) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	if err := p.Validate(); err != nil {
		return NewValidationError("name", err.Error())
	}
	p.ID = uuid.New().String()
	p.OwnerID = actorID
	if !containsString(p.MemberIDs, actorID) {
		p.MemberIDs = append(p.MemberIDs, actorID)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error) {
	return s.projects.List(ctx, f)
}

func (s *projectService) Update(ctx context.Context, actorID string, p *domain.Project) error {
	if err := s.perms.RequireProjectOwner(ctx, actorID, p.ID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return NewValidationError("name", err.Error())
	}
	existing, err := s.projects.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	// Ownership is immutable; the owner stays a member.
	p.OwnerID = existing.OwnerID
	p.CreatedAt = existing.CreatedAt
	if !containsString(p.MemberIDs, p.OwnerID) {
		p.MemberIDs = append(p.MemberIDs, p.OwnerID)
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.perms.RequireProjectOwner(ctx, actorID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func containsString(items []string, v string) bool {
	for _, s := range items {
		if s == v {
			return true
		}
	}
	return false
}
