package service

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

// Write operations take the acting identity's user ID as actorID; an empty
// actorID denotes an anonymous request and is rejected. Read operations are
// open unless noted.

// Credentials is the result of a successful registration or login.
type Credentials struct {
	Token  string
	UserID string
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*Credentials, error)
	Login(ctx context.Context, username, password string) (*Credentials, error)
	Logout(ctx context.Context, actorID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error
	// Authenticate resolves a bearer token key to a user, for middleware use.
	Authenticate(ctx context.Context, key string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type ProjectService interface {
	Create(ctx context.Context, actorID string, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, actorID string, p *domain.Project) error
	Delete(ctx context.Context, actorID, id string) error
}

type MilestoneService interface {
	Create(ctx context.Context, actorID string, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context, f repository.MilestoneFilter) ([]*domain.Milestone, error)
	Update(ctx context.Context, actorID string, m *domain.Milestone) error
	Delete(ctx context.Context, actorID, id string) error
}

type CategoryService interface {
	Create(ctx context.Context, actorID string, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, f repository.CategoryFilter) ([]*domain.Category, error)
	Update(ctx context.Context, actorID string, c *domain.Category) error
	Delete(ctx context.Context, actorID, id string) error
}

type TagService interface {
	Create(ctx context.Context, actorID string, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context, f repository.TagFilter) ([]*domain.Tag, error)
	Update(ctx context.Context, actorID string, t *domain.Tag) error
	Delete(ctx context.Context, actorID, id string) error
}

type TodoService interface {
	Create(ctx context.Context, actorID string, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context, f repository.TodoFilter) ([]*domain.Todo, error)
	Update(ctx context.Context, actorID string, t *domain.Todo) error
	Delete(ctx context.Context, actorID, id string) error
	// AddComment and AddAttachment are the todo sub-actions; the author is
	// stamped from actorID and the todo from the path.
	AddComment(ctx context.Context, actorID, todoID, content string) (*domain.Comment, error)
	AddAttachment(ctx context.Context, actorID, todoID, fileName, filePath string) (*domain.Attachment, error)
}

type CommentService interface {
	Create(ctx context.Context, actorID string, c *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context, f repository.CommentFilter) ([]*domain.Comment, error)
	Delete(ctx context.Context, actorID, id string) error
}

type AttachmentService interface {
	Create(ctx context.Context, actorID string, a *domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	List(ctx context.Context, f repository.AttachmentFilter) ([]*domain.Attachment, error)
	Delete(ctx context.Context, actorID, id string) error
}

type RecurringTaskService interface {
	Create(ctx context.Context, actorID string, r *domain.RecurringTask) error
	GetByID(ctx context.Context, id string) (*domain.RecurringTask, error)
	List(ctx context.Context, f repository.RecurringTaskFilter) ([]*domain.RecurringTask, error)
	Update(ctx context.Context, actorID string, r *domain.RecurringTask) error
	Delete(ctx context.Context, actorID, id string) error
}

// ActivityLogService is read-only and requires authentication, matching the
// append-only audit trail contract.
type ActivityLogService interface {
	GetByID(ctx context.Context, actorID, id string) (*domain.ActivityLog, error)
	List(ctx context.Context, actorID string, f repository.ActivityLogFilter) ([]*domain.ActivityLog, error)
}

// Mailer delivers password reset links. Delivery failures are deliberately
// not surfaced to the reset flow (anti-enumeration).
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}
