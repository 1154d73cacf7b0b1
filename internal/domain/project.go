package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	MemberIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}

// HasMember reports whether userID may write project-scoped resources.
// The owner is implicitly a member.
func (p *Project) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	if userID == p.OwnerID {
		return true
	}
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type Milestone struct {
	ID        string
	ProjectID string
	Name      string
	DueDate   time.Time
}

func (m *Milestone) Validate() error {
	if m.ProjectID == "" {
		return fmt.Errorf("milestone project is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("milestone name is required")
	}
	if m.DueDate.IsZero() {
		return fmt.Errorf("milestone due date is required")
	}
	return nil
}

type Category struct {
	ID        string
	ProjectID string
	Name      string
}

func (c *Category) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("category project is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}
