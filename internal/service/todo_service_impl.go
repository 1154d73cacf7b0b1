package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type todoService struct {
	todos repository.TodoRepo
	uow   db.UnitOfWork
	perms *Permissions
}

// NewTodoService creates the todo service. Creation and deletion run inside a
// unit of work so the todo mutation and its activity log row commit together.
func NewTodoService(todos repository.TodoRepo, uow db.UnitOfWork, perms *Permissions) TodoService {
	return &todoService{todos: todos, uow: uow, perms: perms}
}

func (s *todoService) Create(ctx context.Context, actorID string, t *domain.Todo) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, t.ProjectID); err != nil {
		return err
	}

	t.ID = uuid.New().String()
	t.UserID = actorID
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTodoRepo(tx).Create(ctx, t); err != nil {
			return err
		}
		return appendActivity(ctx, tx, t.UserID, domain.ActionCreated, t.Title)
	})
}

func (s *todoService) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	return s.todos.GetByID(ctx, id)
}

func (s *todoService) List(ctx context.Context, f repository.TodoFilter) ([]*domain.Todo, error) {
	return s.todos.List(ctx, f)
}

func (s *todoService) Update(ctx context.Context, actorID string, t *domain.Todo) error {
	existing, err := s.todos.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return NewValidationError("detail", err.Error())
	}
	if t.ProjectID != existing.ProjectID {
		if err := s.perms.RequireProjectMember(ctx, actorID, t.ProjectID); err != nil {
			return err
		}
	}
	// The creator is immutable.
	t.UserID = existing.UserID
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	return s.todos.Update(ctx, t)
}

func (s *todoService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireProjectMember(ctx, actorID, existing.ProjectID); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTodoRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		// The audit row is attributed to the todo's creator, not the actor.
		return appendActivity(ctx, tx, existing.UserID, domain.ActionDeleted, existing.Title)
	})
}

func (s *todoService) AddComment(ctx context.Context, actorID, todoID, content string) (*domain.Comment, error) {
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, todoID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		ID:        uuid.New().String(),
		TodoID:    todoID,
		UserID:    actorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, NewValidationError("content", err.Error())
	}
	return c, s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCommentRepo(tx).Create(ctx, c)
	})
}

func (s *todoService) AddAttachment(ctx context.Context, actorID, todoID, fileName, filePath string) (*domain.Attachment, error) {
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, todoID); err != nil {
		return nil, err
	}
	a := &domain.Attachment{
		ID:         uuid.New().String(),
		TodoID:     todoID,
		UserID:     actorID,
		FileName:   fileName,
		FilePath:   filePath,
		UploadedAt: time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, NewValidationError("file", err.Error())
	}
	return a, s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAttachmentRepo(tx).Create(ctx, a)
	})
}

// appendActivity writes the audit row for a todo mutation within the caller's
// transaction. A logging failure rolls the mutation back with it.
func appendActivity(ctx context.Context, tx db.DBTX, userID, action, title string) error {
	return repository.NewSQLiteActivityLogRepo(tx).Create(ctx, &domain.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Target:    "Todo: " + title,
		CreatedAt: time.Now().UTC(),
	})
}
