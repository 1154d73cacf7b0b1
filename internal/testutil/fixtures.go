package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/auth"
	"github.com/alexanderramin/taskboard/internal/domain"
)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithPassword(plain string) UserOption {
	return func(u *domain.User) {
		hash, err := auth.HashPassword(plain)
		if err != nil {
			panic(err)
		}
		u.PasswordHash = hash
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	n := testUserCounter.Add(1)
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        fmt.Sprintf("%s%d@example.com", username, n),
		PasswordHash: "$2a$10$unusabletesthashunusabletesthashunusablete",
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithMembers(userIDs ...string) ProjectOption {
	return func(p *domain.Project) {
		p.MemberIDs = append(p.MemberIDs, userIDs...)
	}
}

func WithDescription(desc string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = desc
	}
}

func NewTestProject(name, ownerID string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		MemberIDs: []string{ownerID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestMilestone(projectID, name string, due time.Time) *domain.Milestone {
	return &domain.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		DueDate:   due,
	}
}

func NewTestCategory(projectID, name string) *domain.Category {
	return &domain.Category{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
	}
}

func NewTestTag(name string) *domain.Tag {
	return &domain.Tag{ID: uuid.New().String(), Name: name}
}

// Todo options
type TodoOption func(*domain.Todo)

func WithPriority(p domain.Priority) TodoOption {
	return func(t *domain.Todo) {
		t.Priority = p
	}
}

func WithCompleted() TodoOption {
	return func(t *domain.Todo) {
		t.Completed = true
	}
}

func WithDueDate(d time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.DueDate = &d
	}
}

func WithCategory(id string) TodoOption {
	return func(t *domain.Todo) {
		t.CategoryID = &id
	}
}

func WithMilestone(id string) TodoOption {
	return func(t *domain.Todo) {
		t.MilestoneID = &id
	}
}

func WithTags(tagIDs ...string) TodoOption {
	return func(t *domain.Todo) {
		t.TagIDs = append(t.TagIDs, tagIDs...)
	}
}

func WithParent(id string) TodoOption {
	return func(t *domain.Todo) {
		t.ParentID = &id
	}
}

func NewTestTodo(title, userID, projectID string, opts ...TodoOption) *domain.Todo {
	now := time.Now().UTC()
	t := &domain.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		UserID:    userID,
		ProjectID: projectID,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestComment(todoID, userID, content string) *domain.Comment {
	return &domain.Comment{
		ID:        uuid.New().String(),
		TodoID:    todoID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestAttachment(todoID, userID, fileName string) *domain.Attachment {
	return &domain.Attachment{
		ID:         uuid.New().String(),
		TodoID:     todoID,
		UserID:     userID,
		FileName:   fileName,
		FilePath:   "attachments/" + fileName,
		UploadedAt: time.Now().UTC(),
	}
}

func NewTestRecurringTask(todoID string, freq domain.Frequency) *domain.RecurringTask {
	return &domain.RecurringTask{
		ID:        uuid.New().String(),
		TodoID:    todoID,
		Frequency: freq,
		StartDate: time.Now().UTC(),
	}
}
