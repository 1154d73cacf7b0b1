package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(db db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: db}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, project_id, name) VALUES (?, ?, ?)`,
		c.ID, c.ProjectID, c.Name)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name FROM categories WHERE id = ?`, id)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.ProjectID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCategoryRepo) List(ctx context.Context, f CategoryFilter) ([]*domain.Category, error) {
	query := `SELECT id, project_id, name FROM categories WHERE 1=1`
	var args []any
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Search != "" {
		query += ` AND lower(name) LIKE '%'||lower(?)||'%'`
		args = append(args, f.Search)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET project_id = ?, name = ? WHERE id = ?`,
		c.ProjectID, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(db db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: db}
}

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name) VALUES (?, ?)`, t.ID, t.Name)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = ?`, id)

	var t domain.Tag
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTagRepo) List(ctx context.Context, f TagFilter) ([]*domain.Tag, error) {
	query := `SELECT id, name FROM tags WHERE 1=1`
	var args []any
	if f.Search != "" {
		query += ` AND lower(name) LIKE '%'||lower(?)||'%'`
		args = append(args, f.Search)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tag %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}
