package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type commentService struct {
	comments repository.CommentRepo
	perms    *Permissions
}

// NewCommentService creates the comment service. Comments are immutable
// after creation, so there is no update path.
func NewCommentService(comments repository.CommentRepo, perms *Permissions) CommentService {
	return &commentService{comments: comments, perms: perms}
}

func (s *commentService) Create(ctx context.Context, actorID string, c *domain.Comment) error {
	if err := c.Validate(); err != nil {
		return NewValidationError("content", err.Error())
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, c.TodoID); err != nil {
		return err
	}
	c.ID = uuid.New().String()
	c.UserID = actorID
	c.CreatedAt = time.Now().UTC()
	return s.comments.Create(ctx, c)
}

func (s *commentService) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *commentService) List(ctx context.Context, f repository.CommentFilter) ([]*domain.Comment, error) {
	return s.comments.List(ctx, f)
}

func (s *commentService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, existing.TodoID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}

type attachmentService struct {
	attachments repository.AttachmentRepo
	perms       *Permissions
}

// NewAttachmentService creates the attachment service.
func NewAttachmentService(attachments repository.AttachmentRepo, perms *Permissions) AttachmentService {
	return &attachmentService{attachments: attachments, perms: perms}
}

func (s *attachmentService) Create(ctx context.Context, actorID string, a *domain.Attachment) error {
	if err := a.Validate(); err != nil {
		return NewValidationError("file", err.Error())
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, a.TodoID); err != nil {
		return err
	}
	a.ID = uuid.New().String()
	a.UserID = actorID
	a.UploadedAt = time.Now().UTC()
	return s.attachments.Create(ctx, a)
}

func (s *attachmentService) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	return s.attachments.GetByID(ctx, id)
}

func (s *attachmentService) List(ctx context.Context, f repository.AttachmentFilter) ([]*domain.Attachment, error) {
	return s.attachments.List(ctx, f)
}

func (s *attachmentService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.perms.RequireTodoProjectMember(ctx, actorID, existing.TodoID); err != nil {
		return err
	}
	return s.attachments.Delete(ctx, id)
}
