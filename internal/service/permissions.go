package service

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/repository"
)

// Permissions decides whether an acting identity may write a given resource.
// Read operations are open and never consult it. An empty actorID denotes an
// anonymous request.
//
// Rules: project writes require ownership; writes to project-scoped resources
// require membership, with the owner counting as a member. Resources hanging
// off a todo (comments, attachments, recurrence rules) resolve their project
// through the todo.
type Permissions struct {
	projects repository.ProjectRepo
	todos    repository.TodoRepo
}

// NewPermissions creates a Permissions evaluator over the given repositories.
func NewPermissions(projects repository.ProjectRepo, todos repository.TodoRepo) *Permissions {
	return &Permissions{projects: projects, todos: todos}
}

// RequireProjectOwner allows the write only when actorID owns the project.
func (p *Permissions) RequireProjectOwner(ctx context.Context, actorID, projectID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	proj, err := p.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if proj.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

// RequireProjectMember allows the write only when actorID is a member (or the
// owner) of the project.
func (p *Permissions) RequireProjectMember(ctx context.Context, actorID, projectID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	proj, err := p.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !proj.HasMember(actorID) {
		return ErrForbidden
	}
	return nil
}

// RequireTodoProjectMember resolves the todo's project and applies the
// membership rule.
func (p *Permissions) RequireTodoProjectMember(ctx context.Context, actorID, todoID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	todo, err := p.todos.GetByID(ctx, todoID)
	if err != nil {
		return err
	}
	return p.RequireProjectMember(ctx, actorID, todo.ProjectID)
}

// RequireAuthenticated allows any authenticated identity.
func (p *Permissions) RequireAuthenticated(actorID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	return nil
}
