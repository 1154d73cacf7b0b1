package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type categoryService struct {
	categories repository.CategoryRepo
	perms      *Permissions
}

// NewCategoryService creates the category service.
func NewCategoryService(categories repository.CategoryRepo, perms *Permissions) CategoryService {
	return &categoryService{categories: categories, perms: perms}
}

func (s *categoryService) Create(ctx context.Context, actorID string, c *domain.Category) error {
	if err := c.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, c.ProjectID); err != nil {
		return err
	}
	c.ID = uuid.New().String()
	return s.categories.Create(ctx, c)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context, f repository.CategoryFilter) ([]*domain.Category, error) {
	return s.categories.List(ctx, f)
}

func (s *categoryService) Update(ctx context.Context, actorID string, c *domain.Category) error {
	existing, err := s.categories.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if c.ProjectID != existing.ProjectID {
		if err := s.perms.RequireProjectMember(ctx, actorID, c.ProjectID); err != nil {
			return err
		}
	}
	return s.categories.Update(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

type tagService struct {
	tags  repository.TagRepo
	perms *Permissions
}

// NewTagService creates the tag service. Tags are global, so writes only
// require an authenticated identity.
func NewTagService(tags repository.TagRepo, perms *Permissions) TagService {
	return &tagService{tags: tags, perms: perms}
}

func (s *tagService) Create(ctx context.Context, actorID string, t *domain.Tag) error {
	if err := s.perms.RequireAuthenticated(actorID); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return NewValidationError("name", err.Error())
	}
	t.ID = uuid.New().String()
	return s.tags.Create(ctx, t)
}

func (s *tagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *tagService) List(ctx context.Context, f repository.TagFilter) ([]*domain.Tag, error) {
	return s.tags.List(ctx, f)
}

func (s *tagService) Update(ctx context.Context, actorID string, t *domain.Tag) error {
	if err := s.perms.RequireAuthenticated(actorID); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return NewValidationError("name", err.Error())
	}
	return s.tags.Update(ctx, t)
}

func (s *tagService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.perms.RequireAuthenticated(actorID); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}
