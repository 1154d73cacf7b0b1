package repository

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Filter structs carry the declared exact-match, search, and ordering
// parameters for each collection. Empty fields mean "no constraint".
// Order values use the API convention: a bare key orders ascending,
// a "-" prefix descending; unknown keys are ignored.

type ProjectFilter struct {
	OwnerID  string
	MemberID string
	Search   string
	Order    string
}

type MilestoneFilter struct {
	ProjectID string
	Order     string
}

type CategoryFilter struct {
	ProjectID string
	Search    string
}

type TagFilter struct {
	Search string
}

type TodoFilter struct {
	UserID      string
	ProjectID   string
	CategoryID  string
	MilestoneID string
	TagID       string
	ParentID    string
	Completed   *bool
	Priority    string
	Search      string
	Order       string
}

type CommentFilter struct {
	TodoID string
	UserID string
	Order  string
}

type AttachmentFilter struct {
	TodoID string
	UserID string
	Order  string
}

type RecurringTaskFilter struct {
	TodoID    string
	Frequency string
}

type ActivityLogFilter struct {
	UserID string
	Action string
	Order  string
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type TokenRepo interface {
	Create(ctx context.Context, key, userID string) error
	KeyForUser(ctx context.Context, userID string) (string, error)
	UserIDForKey(ctx context.Context, key string) (string, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type PasswordResetRepo interface {
	Create(ctx context.Context, r *domain.PasswordReset) error
	GetActive(ctx context.Context, userID, tokenHash string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	SetMembers(ctx context.Context, projectID string, memberIDs []string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context, f MilestoneFilter) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, f CategoryFilter) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context, f TagFilter) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context, f TodoFilter) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
	SetTags(ctx context.Context, todoID string, tagIDs []string) error
	ListSubtaskIDs(ctx context.Context, parentID string) ([]string, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context, f CommentFilter) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type AttachmentRepo interface {
	Create(ctx context.Context, a *domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	List(ctx context.Context, f AttachmentFilter) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type RecurringTaskRepo interface {
	Create(ctx context.Context, r *domain.RecurringTask) error
	GetByID(ctx context.Context, id string) (*domain.RecurringTask, error)
	GetByTodo(ctx context.Context, todoID string) (*domain.RecurringTask, error)
	List(ctx context.Context, f RecurringTaskFilter) ([]*domain.RecurringTask, error)
	Update(ctx context.Context, r *domain.RecurringTask) error
	Delete(ctx context.Context, id string) error
}

type ActivityLogRepo interface {
	Create(ctx context.Context, a *domain.ActivityLog) error
	GetByID(ctx context.Context, id string) (*domain.ActivityLog, error)
	List(ctx context.Context, f ActivityLogFilter) ([]*domain.ActivityLog, error)
}
