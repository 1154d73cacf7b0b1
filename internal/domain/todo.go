package domain

import (
	"fmt"
	"strings"
	"time"
)

type Todo struct {
	ID               string
	Title            string
	Description      string
	Completed        bool
	UserID           string
	ProjectID        string
	CategoryID       *string
	MilestoneID      *string
	TagIDs           []string
	Priority         Priority
	DueDate          *time.Time
	EstimatedMinutes *int
	ActualMinutes    *int
	ParentID         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("todo title is required")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("todo project is required")
	}
	if t.Priority != "" && !ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("priority %q must be one of LOW, MEDIUM, HIGH, URGENT", t.Priority)
	}
	if t.ParentID != nil && *t.ParentID == t.ID {
		return fmt.Errorf("todo cannot be its own parent")
	}
	return nil
}

type Tag struct {
	ID   string
	Name string
}

func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tag name is required")
	}
	return nil
}

type Comment struct {
	ID        string
	TodoID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

func (c *Comment) Validate() error {
	if c.TodoID == "" {
		return fmt.Errorf("comment todo is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("comment content is required")
	}
	return nil
}

type Attachment struct {
	ID         string
	TodoID     string
	UserID     string
	FileName   string
	FilePath   string
	UploadedAt time.Time
}

func (a *Attachment) Validate() error {
	if a.TodoID == "" {
		return fmt.Errorf("attachment todo is required")
	}
	if a.FileName == "" {
		return fmt.Errorf("attachment file is required")
	}
	return nil
}

type RecurringTask struct {
	ID        string
	TodoID    string
	Frequency Frequency
	StartDate time.Time
	EndDate   *time.Time
}

func (r *RecurringTask) Validate() error {
	if r.TodoID == "" {
		return fmt.Errorf("recurring task todo is required")
	}
	if !ValidFrequencies[string(r.Frequency)] {
		return fmt.Errorf("frequency %q must be one of DAILY, WEEKLY, MONTHLY, YEARLY", r.Frequency)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("recurring task start date is required")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("recurring task end date must not precede start date")
	}
	return nil
}
