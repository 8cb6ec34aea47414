package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"probuild/internal/models"
)

type JobStatusDependencyRepository interface {
	List(ctx context.Context) ([]models.JobStatusDependency, error)
	ListForStatus(ctx context.Context, statusKey string) ([]models.JobStatusDependency, error)
	// Replace overwrites the complete dependency set of statusKey.
	Replace(ctx context.Context, statusKey string, deps []models.JobStatusDependency) error
}

type jobStatusDependencyRepository struct {
	db *sql.DB
}

func NewJobStatusDependencyRepository(db *sql.DB) JobStatusDependencyRepository {
	return &jobStatusDependencyRepository{db: db}
}

func (r *jobStatusDependencyRepository) query(ctx context.Context, q string, args ...any) ([]models.JobStatusDependency, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list dependencies: %w", err)
	}
	defer rows.Close()

	out := []models.JobStatusDependency{}
	for rows.Next() {
		var d models.JobStatusDependency
		if err := rows.Scan(&d.ID, &d.StatusKey, &d.PrerequisiteKey, &d.DependencyType); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *jobStatusDependencyRepository) List(ctx context.Context) ([]models.JobStatusDependency, error) {
	return r.query(ctx, `
		SELECT id, status_key, prerequisite_key, dependency_type
		FROM job_status_dependencies
		ORDER BY status_key, id`)
}

func (r *jobStatusDependencyRepository) ListForStatus(ctx context.Context, statusKey string) ([]models.JobStatusDependency, error) {
	return r.query(ctx, `
		SELECT id, status_key, prerequisite_key, dependency_type
		FROM job_status_dependencies
		WHERE status_key=$1
		ORDER BY id`, statusKey)
}

func (r *jobStatusDependencyRepository) Replace(ctx context.Context, statusKey string, deps []models.JobStatusDependency) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_status_dependencies WHERE status_key=$1`, statusKey); err != nil {
		return fmt.Errorf("clear dependencies of %s: %w", statusKey, err)
	}
	for _, d := range deps {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO job_status_dependencies (status_key, prerequisite_key, dependency_type)
			VALUES ($1, $2, $3)`, statusKey, d.PrerequisiteKey, d.DependencyType); err != nil {
			return fmt.Errorf("insert dependency %s -> %s: %w", statusKey, d.PrerequisiteKey, err)
		}
	}
	return tx.Commit()
}
