package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"probuild/internal/models"
)

type JobPipelineRepository interface {
	List(ctx context.Context) ([]*models.JobPipeline, error)
	GetByID(ctx context.Context, id int64) (*models.JobPipeline, error)
	Create(ctx context.Context, p *models.JobPipeline) error
	Update(ctx context.Context, p *models.JobPipeline) error
	// Delete removes the pipeline together with its stages.
	Delete(ctx context.Context, id int64) error

	ListStages(ctx context.Context, pipelineID int64) ([]*models.JobPipelineStage, error)
	GetStage(ctx context.Context, pipelineID, stageID int64) (*models.JobPipelineStage, error)
	CreateStage(ctx context.Context, s *models.JobPipelineStage) error
	UpdateStage(ctx context.Context, s *models.JobPipelineStage) error
	DeleteStage(ctx context.Context, pipelineID, stageID int64) error
	ReorderStages(ctx context.Context, pipelineID int64, ids []int64) error
}

type jobPipelineRepository struct {
	db *sql.DB
}

func NewJobPipelineRepository(db *sql.DB) JobPipelineRepository {
	return &jobPipelineRepository{db: db}
}

const (
	pipelineColumns = `id, name, description, is_active, created_at, updated_at`
	stageColumns    = `id, pipeline_id, name, icon, completion_type, is_active, position, created_at, updated_at`
)

func scanPipeline(row rowScanner) (*models.JobPipeline, error) {
	p := &models.JobPipeline{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func scanStage(row rowScanner) (*models.JobPipelineStage, error) {
	s := &models.JobPipelineStage{}
	if err := row.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Icon, &s.CompletionType, &s.IsActive, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *jobPipelineRepository) List(ctx context.Context) ([]*models.JobPipeline, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+pipelineColumns+` FROM job_pipelines ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	out := []*models.JobPipeline{}
	for rows.Next() {
		p, err := scanPipeline(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *jobPipelineRepository) GetByID(ctx context.Context, id int64) (*models.JobPipeline, error) {
	p, err := scanPipeline(r.db.QueryRowContext(ctx, `SELECT `+pipelineColumns+` FROM job_pipelines WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pipeline: %w", err)
	}
	return p, nil
}

func (r *jobPipelineRepository) Create(ctx context.Context, p *models.JobPipeline) error {
	const q = `
		INSERT INTO job_pipelines (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowContext(ctx, q, p.Name, p.Description, p.IsActive).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	return nil
}

func (r *jobPipelineRepository) Update(ctx context.Context, p *models.JobPipeline) error {
	const q = `
		UPDATE job_pipelines SET name=$1, description=$2, is_active=$3, updated_at=NOW()
		WHERE id=$4
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, q, p.Name, p.Description, p.IsActive, p.ID).Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("update pipeline: %w", err)
	}
	return nil
}

func (r *jobPipelineRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_pipeline_stages WHERE pipeline_id=$1`, id); err != nil {
		return fmt.Errorf("delete pipeline stages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM job_pipelines WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete pipeline: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *jobPipelineRepository) ListStages(ctx context.Context, pipelineID int64) ([]*models.JobPipelineStage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stageColumns+` FROM job_pipeline_stages WHERE pipeline_id=$1 ORDER BY position, id`, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	out := []*models.JobPipelineStage{}
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *jobPipelineRepository) GetStage(ctx context.Context, pipelineID, stageID int64) (*models.JobPipelineStage, error) {
	s, err := scanStage(r.db.QueryRowContext(ctx,
		`SELECT `+stageColumns+` FROM job_pipeline_stages WHERE id=$1 AND pipeline_id=$2`, stageID, pipelineID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return s, nil
}

func (r *jobPipelineRepository) CreateStage(ctx context.Context, s *models.JobPipelineStage) error {
	const q = `
		INSERT INTO job_pipeline_stages (pipeline_id, name, icon, completion_type, is_active, position)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM job_pipeline_stages WHERE pipeline_id=$1))
		RETURNING id, position, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, q, s.PipelineID, s.Name, s.Icon, s.CompletionType, s.IsActive).
		Scan(&s.ID, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create stage: %w", err)
	}
	return nil
}

func (r *jobPipelineRepository) UpdateStage(ctx context.Context, s *models.JobPipelineStage) error {
	const q = `
		UPDATE job_pipeline_stages
		SET name=$1, icon=$2, completion_type=$3, is_active=$4, updated_at=NOW()
		WHERE id=$5 AND pipeline_id=$6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, q, s.Name, s.Icon, s.CompletionType, s.IsActive, s.ID, s.PipelineID).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	return nil
}

func (r *jobPipelineRepository) DeleteStage(ctx context.Context, pipelineID, stageID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_pipeline_stages WHERE id=$1 AND pipeline_id=$2`, stageID, pipelineID)
	if err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *jobPipelineRepository) ReorderStages(ctx context.Context, pipelineID int64, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE job_pipeline_stages SET position=$1, updated_at=NOW() WHERE id=$2 AND pipeline_id=$3`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, id := range ids {
		res, err := stmt.ExecContext(ctx, i+1, id, pipelineID)
		if err != nil {
			return fmt.Errorf("reorder stage %d: %w", id, err)
		}
		if err := affectedOrNotFound(res); err != nil {
			return fmt.Errorf("reorder stage %d: %w", id, err)
		}
	}
	return tx.Commit()
}
