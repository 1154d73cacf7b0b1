package api

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

// Wire representations. Related resources appear as IDs; list fields are the
// read-only expansions of the detail views.

type projectResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Members     []string `json:"members"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Milestones  []string `json:"milestones"`
	Todos       []string `json:"todos"`
}

type milestoneResponse struct {
	ID      string   `json:"id"`
	Project string   `json:"project"`
	Name    string   `json:"name"`
	DueDate string   `json:"due_date"`
	Todos   []string `json:"todos"`
}

type categoryResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Project string   `json:"project"`
	Todos   []string `json:"todos"`
}

type tagResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Todos []string `json:"todos"`
}

type commentResponse struct {
	ID        string `json:"id"`
	Todo      string `json:"todo"`
	User      string `json:"user"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type attachmentResponse struct {
	ID         string `json:"id"`
	Todo       string `json:"todo"`
	File       string `json:"file"`
	UploadedBy string `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

type recurringTaskResponse struct {
	ID        string  `json:"id"`
	Todo      string  `json:"todo"`
	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type todoResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Completed        bool                   `json:"completed"`
	User             string                 `json:"user"`
	Project          string                 `json:"project"`
	Category         *string                `json:"category"`
	Milestone        *string                `json:"milestone"`
	Tags             []string               `json:"tags"`
	Priority         string                 `json:"priority"`
	DueDate          *string                `json:"due_date"`
	EstimatedMinutes *int                   `json:"estimated_minutes"`
	ActualMinutes    *int                   `json:"actual_minutes"`
	ParentTask       *string                `json:"parent_task"`
	Subtasks         []string               `json:"subtasks"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
	Comments         []commentResponse      `json:"comments"`
	Attachments      []attachmentResponse   `json:"attachments"`
	RecurringTask    *recurringTaskResponse `json:"recurring_task"`
}

type activityLogResponse struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Target    string `json:"target"`
	Timestamp string `json:"timestamp"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func renderComment(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Todo:      c.TodoID,
		User:      c.UserID,
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func renderAttachment(a *domain.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:         a.ID,
		Todo:       a.TodoID,
		File:       a.FilePath,
		UploadedBy: a.UserID,
		UploadedAt: formatTime(a.UploadedAt),
	}
}

func renderRecurringTask(r *domain.RecurringTask) recurringTaskResponse {
	return recurringTaskResponse{
		ID:        r.ID,
		Todo:      r.TodoID,
		Frequency: string(r.Frequency),
		StartDate: formatTime(r.StartDate),
		EndDate:   formatTimePtr(r.EndDate),
	}
}

func renderActivityLog(a *domain.ActivityLog) activityLogResponse {
	return activityLogResponse{
		ID:        a.ID,
		User:      a.UserID,
		Action:    a.Action,
		Target:    a.Target,
		Timestamp: formatTime(a.CreatedAt),
	}
}

func (s *Server) renderProject(ctx context.Context, p *domain.Project) (projectResponse, error) {
	resp := projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       p.OwnerID,
		Members:     emptyIfNil(p.MemberIDs),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
		Milestones:  []string{},
		Todos:       []string{},
	}
	milestones, err := s.milestones.List(ctx, repository.MilestoneFilter{ProjectID: p.ID})
	if err != nil {
		return resp, err
	}
	for _, m := range milestones {
		resp.Milestones = append(resp.Milestones, m.ID)
	}
	todos, err := s.todos.List(ctx, repository.TodoFilter{ProjectID: p.ID})
	if err != nil {
		return resp, err
	}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, t.ID)
	}
	return resp, nil
}

func (s *Server) renderMilestone(ctx context.Context, m *domain.Milestone) (milestoneResponse, error) {
	resp := milestoneResponse{
		ID:      m.ID,
		Project: m.ProjectID,
		Name:    m.Name,
		DueDate: m.DueDate.Format("2006-01-02"),
		Todos:   []string{},
	}
	todos, err := s.todos.List(ctx, repository.TodoFilter{MilestoneID: m.ID})
	if err != nil {
		return resp, err
	}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, t.ID)
	}
	return resp, nil
}

func (s *Server) renderCategory(ctx context.Context, c *domain.Category) (categoryResponse, error) {
	resp := categoryResponse{
		ID:      c.ID,
		Name:    c.Name,
		Project: c.ProjectID,
		Todos:   []string{},
	}
	todos, err := s.todos.List(ctx, repository.TodoFilter{CategoryID: c.ID})
	if err != nil {
		return resp, err
	}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, t.ID)
	}
	return resp, nil
}

func (s *Server) renderTag(ctx context.Context, t *domain.Tag) (tagResponse, error) {
	resp := tagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Todos: []string{},
	}
	todos, err := s.todos.List(ctx, repository.TodoFilter{TagID: t.ID})
	if err != nil {
		return resp, err
	}
	for _, td := range todos {
		resp.Todos = append(resp.Todos, td.ID)
	}
	return resp, nil
}

func (s *Server) renderTodo(ctx context.Context, t *domain.Todo) (todoResponse, error) {
	resp := todoResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Completed:        t.Completed,
		User:             t.UserID,
		Project:          t.ProjectID,
		Category:         t.CategoryID,
		Milestone:        t.MilestoneID,
		Tags:             emptyIfNil(t.TagIDs),
		Priority:         string(t.Priority),
		DueDate:          formatTimePtr(t.DueDate),
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		ParentTask:       t.ParentID,
		Subtasks:         []string{},
		CreatedAt:        formatTime(t.CreatedAt),
		UpdatedAt:        formatTime(t.UpdatedAt),
		Comments:         []commentResponse{},
		Attachments:      []attachmentResponse{},
	}

	subtasks, err := s.todos.List(ctx, repository.TodoFilter{ParentID: t.ID})
	if err != nil {
		return resp, err
	}
	for _, st := range subtasks {
		resp.Subtasks = append(resp.Subtasks, st.ID)
	}

	comments, err := s.comments.List(ctx, repository.CommentFilter{TodoID: t.ID})
	if err != nil {
		return resp, err
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, renderComment(c))
	}

	attachments, err := s.attachments.List(ctx, repository.AttachmentFilter{TodoID: t.ID})
	if err != nil {
		return resp, err
	}
	for _, a := range attachments {
		resp.Attachments = append(resp.Attachments, renderAttachment(a))
	}

	rts, err := s.recurring.List(ctx, repository.RecurringTaskFilter{TodoID: t.ID})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return resp, err
	}
	if len(rts) > 0 {
		rt := renderRecurringTask(rts[0])
		resp.RecurringTask = &rt
	}
	return resp, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
