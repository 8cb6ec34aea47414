package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"probuild/internal/models"
)

type KanbanColumnRepository interface {
	List(ctx context.Context) ([]*models.KanbanColumn, error)
	GetByID(ctx context.Context, id int64) (*models.KanbanColumn, error)
	Create(ctx context.Context, c *models.KanbanColumn) error
	Update(ctx context.Context, c *models.KanbanColumn) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type kanbanColumnRepository struct {
	db *sql.DB
}

func NewKanbanColumnRepository(db *sql.DB) KanbanColumnRepository {
	return &kanbanColumnRepository{db: db}
}

const kanbanColumnColumns = `id, title, statuses, default_status, color, is_active, position, created_at, updated_at`

func scanKanbanColumn(row rowScanner) (*models.KanbanColumn, error) {
	c := &models.KanbanColumn{}
	var statuses pq.StringArray
	if err := row.Scan(&c.ID, &c.Title, &statuses, &c.DefaultStatus, &c.Color, &c.IsActive, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Statuses = []string(statuses)
	if c.Statuses == nil {
		c.Statuses = []string{}
	}
	return c, nil
}

func (r *kanbanColumnRepository) List(ctx context.Context) ([]*models.KanbanColumn, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+kanbanColumnColumns+` FROM kanban_columns ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list kanban columns: %w", err)
	}
	defer rows.Close()

	out := []*models.KanbanColumn{}
	for rows.Next() {
		c, err := scanKanbanColumn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *kanbanColumnRepository) GetByID(ctx context.Context, id int64) (*models.KanbanColumn, error) {
	c, err := scanKanbanColumn(r.db.QueryRowContext(ctx, `SELECT `+kanbanColumnColumns+` FROM kanban_columns WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get kanban column: %w", err)
	}
	return c, nil
}

func (r *kanbanColumnRepository) Create(ctx context.Context, c *models.KanbanColumn) error {
	const q = `
		INSERT INTO kanban_columns (title, statuses, default_status, color, is_active, position)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(position), 0) + 1 FROM kanban_columns))
		RETURNING id, position, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, q, c.Title, pq.Array(c.Statuses), c.DefaultStatus, c.Color, c.IsActive).
		Scan(&c.ID, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create kanban column: %w", err)
	}
	return nil
}

func (r *kanbanColumnRepository) Update(ctx context.Context, c *models.KanbanColumn) error {
	const q = `
		UPDATE kanban_columns
		SET title=$1, statuses=$2, default_status=$3, color=$4, is_active=$5, updated_at=NOW()
		WHERE id=$6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, q, c.Title, pq.Array(c.Statuses), c.DefaultStatus, c.Color, c.IsActive, c.ID).
		Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update kanban column: %w", err)
	}
	return nil
}

func (r *kanbanColumnRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kanban_columns WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete kanban column: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *kanbanColumnRepository) Reorder(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := reorder(ctx, tx, "kanban_columns", ids); err != nil {
		return err
	}
	return tx.Commit()
}
