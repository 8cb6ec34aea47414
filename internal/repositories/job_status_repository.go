package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"probuild/internal/models"
)

type JobStatusRepository interface {
	List(ctx context.Context) ([]*models.JobStatus, error)
	GetByID(ctx context.Context, id int64) (*models.JobStatus, error)
	GetByKey(ctx context.Context, key string) (*models.JobStatus, error)
	Create(ctx context.Context, s *models.JobStatus) error
	Update(ctx context.Context, s *models.JobStatus) error
	// Delete removes the status, every dependency edge touching its key and
	// writes the repaired columns, all in one transaction.
	Delete(ctx context.Context, s *models.JobStatus, repaired []*models.KanbanColumn) error
	Reorder(ctx context.Context, ids []int64) error
	CountJobs(ctx context.Context, key string) (int, error)
}

type jobStatusRepository struct {
	db *sql.DB
}

func NewJobStatusRepository(db *sql.DB) JobStatusRepository {
	return &jobStatusRepository{db: db}
}

const jobStatusColumns = `id, key, label, description, is_active, position, created_at, updated_at`

func scanJobStatus(row rowScanner) (*models.JobStatus, error) {
	s := &models.JobStatus{}
	if err := row.Scan(&s.ID, &s.Key, &s.Label, &s.Description, &s.IsActive, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *jobStatusRepository) List(ctx context.Context) ([]*models.JobStatus, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobStatusColumns+` FROM job_statuses ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list job statuses: %w", err)
	}
	defer rows.Close()

	out := []*models.JobStatus{}
	for rows.Next() {
		s, err := scanJobStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *jobStatusRepository) GetByID(ctx context.Context, id int64) (*models.JobStatus, error) {
	s, err := scanJobStatus(r.db.QueryRowContext(ctx, `SELECT `+jobStatusColumns+` FROM job_statuses WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job status: %w", err)
	}
	return s, nil
}

func (r *jobStatusRepository) GetByKey(ctx context.Context, key string) (*models.JobStatus, error) {
	s, err := scanJobStatus(r.db.QueryRowContext(ctx, `SELECT `+jobStatusColumns+` FROM job_statuses WHERE key=$1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job status by key: %w", err)
	}
	return s, nil
}

func (r *jobStatusRepository) Create(ctx context.Context, s *models.JobStatus) error {
	const q = `
		INSERT INTO job_statuses (key, label, description, is_active, position)
		VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position), 0) + 1 FROM job_statuses))
		RETURNING id, position, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, q, s.Key, s.Label, s.Description, s.IsActive).
		Scan(&s.ID, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if dup := duplicateKey(err, "job status %q already exists", s.Key); dup != nil {
		return dup
	}
	if err != nil {
		return fmt.Errorf("create job status: %w", err)
	}
	return nil
}

// Update never touches key.
func (r *jobStatusRepository) Update(ctx context.Context, s *models.JobStatus) error {
	const q = `
		UPDATE job_statuses
		SET label=$1, description=$2, is_active=$3, updated_at=NOW()
		WHERE id=$4
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, q, s.Label, s.Description, s.IsActive, s.ID).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

func (r *jobStatusRepository) Delete(ctx context.Context, s *models.JobStatus, repaired []*models.KanbanColumn) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM job_status_dependencies WHERE status_key=$1 OR prerequisite_key=$1`, s.Key); err != nil {
		return fmt.Errorf("delete dependencies of %s: %w", s.Key, err)
	}
	for _, c := range repaired {
		if _, err := tx.ExecContext(ctx,
			`UPDATE kanban_columns SET statuses=$1, default_status=$2, updated_at=NOW() WHERE id=$3`,
			pq.Array(c.Statuses), c.DefaultStatus, c.ID); err != nil {
			return fmt.Errorf("repair kanban column %d: %w", c.ID, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM job_statuses WHERE id=$1`, s.ID)
	if err != nil {
		return fmt.Errorf("delete job status: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *jobStatusRepository) Reorder(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := reorder(ctx, tx, "job_statuses", ids); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *jobStatusRepository) CountJobs(ctx context.Context, key string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE status=$1`, key).Scan(&n)
	return n, err
}
