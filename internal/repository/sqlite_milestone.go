package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(db db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (id, project_id, name, due_date) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.ProjectID, m.Name, m.DueDate.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, due_date FROM milestones WHERE id = ?`, id)

	var m domain.Milestone
	var dueDateStr string
	err := row.Scan(&m.ID, &m.ProjectID, &m.Name, &dueDateStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	if m.DueDate, err = time.Parse(dateLayout, dueDateStr); err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	return &m, nil
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context, f MilestoneFilter) ([]*domain.Milestone, error) {
	query := `SELECT id, project_id, name, due_date FROM milestones WHERE 1=1`
	var args []any
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	query += orderClause(map[string]string{"due_date": "due_date"}, f.Order, "due_date")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var dueDateStr string
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &dueDateStr); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		if m.DueDate, err = time.Parse(dateLayout, dueDateStr); err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		milestones = append(milestones, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return milestones, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE milestones SET project_id = ?, name = ?, due_date = ? WHERE id = ?`,
		m.ProjectID, m.Name, m.DueDate.Format(dateLayout), m.ID)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("milestone %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("milestone %s: %w", id, ErrNotFound)
	}
	return nil
}
