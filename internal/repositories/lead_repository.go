package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"probuild/internal/models"
)

type LeadFilter struct {
	Stages     []models.LeadStage
	ClientID   int64
	AssignedTo int64
	Limit      int
	Offset     int
}

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	UpdateStage(ctx context.Context, id int64, stage models.LeadStage) error
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f LeadFilter) ([]*models.Lead, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, stage, client_id, site_address, fence_style, fence_length, source,
	lead_type, job_fulfillment_type, notes, assigned_to, created_at, updated_at`

func scanLead(row rowScanner) (*models.Lead, error) {
	l := &models.Lead{}
	err := row.Scan(&l.ID, &l.Stage, &l.ClientID, &l.SiteAddress, &l.FenceStyle, &l.FenceLength, &l.Source,
		&l.LeadType, &l.JobFulfillmentType, &l.Notes, &l.AssignedTo, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leadRepository) Create(ctx context.Context, l *models.Lead) error {
	const q = `
		INSERT INTO leads (stage, client_id, site_address, fence_style, fence_length, source,
			lead_type, job_fulfillment_type, notes, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, q, l.Stage, l.ClientID, l.SiteAddress, l.FenceStyle, l.FenceLength, l.Source,
		l.LeadType, l.JobFulfillmentType, l.Notes, l.AssignedTo).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *leadRepository) Update(ctx context.Context, l *models.Lead) error {
	const q = `
		UPDATE leads
		SET stage=$1, client_id=$2, site_address=$3, fence_style=$4, fence_length=$5, source=$6,
			lead_type=$7, job_fulfillment_type=$8, notes=$9, assigned_to=$10, updated_at=NOW()
		WHERE id=$11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, q, l.Stage, l.ClientID, l.SiteAddress, l.FenceStyle, l.FenceLength, l.Source,
		l.LeadType, l.JobFulfillmentType, l.Notes, l.AssignedTo, l.ID).Scan(&l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

func (r *leadRepository) UpdateStage(ctx context.Context, id int64, stage models.LeadStage) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET stage=$1, updated_at=NOW() WHERE id=$2`, stage, id)
	if err != nil {
		return fmt.Errorf("update lead stage: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *leadRepository) List(ctx context.Context, f LeadFilter) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}
	i := 1

	if len(f.Stages) > 0 {
		stages := make([]string, len(f.Stages))
		for k, s := range f.Stages {
			stages[k] = string(s)
		}
		query += fmt.Sprintf(" AND stage = ANY($%d)", i)
		args = append(args, pq.Array(stages))
		i++
	}
	if f.ClientID > 0 {
		query += fmt.Sprintf(" AND client_id = $%d", i)
		args = append(args, f.ClientID)
		i++
	}
	if f.AssignedTo > 0 {
		query += fmt.Sprintf(" AND assigned_to = $%d", i)
		args = append(args, f.AssignedTo)
		i++
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := []*models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
