package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"probuild/internal/models"
)

type JobFilter struct {
	Status   string
	ClientID int64
	Limit    int
	Offset   int
}

type JobRepository interface {
	// Create assigns the job number from job_number_seq.
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	GetByLeadID(ctx context.Context, leadID int64) (*models.Job, error)
	List(ctx context.Context, f JobFilter) ([]*models.Job, error)
	// Update writes money fields and the site address. Status and job number are not touched.
	Update(ctx context.Context, job *models.Job) error
	// ChangeStatus moves the job and appends the history row in one transaction.
	ChangeStatus(ctx context.Context, change *models.JobStatusChange) error
	History(ctx context.Context, jobID int64) ([]*models.JobStatusChange, error)
	Delete(ctx context.Context, id int64) error
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, job_number, lead_id, client_id, status, site_address, total_amount,
	deposit_amount, deposit_paid, amount_paid, created_at, updated_at`

func scanJob(row rowScanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.JobNumber, &j.LeadID, &j.ClientID, &j.Status, &j.SiteAddress, &j.TotalAmount,
		&j.DepositAmount, &j.DepositPaid, &j.AmountPaid, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jobRepository) Create(ctx context.Context, j *models.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO jobs (job_number, lead_id, client_id, status, site_address, total_amount,
			deposit_amount, deposit_paid, amount_paid)
		VALUES ('JOB-' || LPAD(nextval('job_number_seq')::text, 5, '0'), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, job_number, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, q, j.LeadID, j.ClientID, j.Status, j.SiteAddress, j.TotalAmount,
		j.DepositAmount, j.DepositPaid, j.AmountPaid).Scan(&j.ID, &j.JobNumber, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO job_status_history (job_id, from_status, to_status)
		VALUES ($1, '', $2)`, j.ID, j.Status); err != nil {
		return fmt.Errorf("record initial status: %w", err)
	}
	return tx.Commit()
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (r *jobRepository) GetByLeadID(ctx context.Context, leadID int64) (*models.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE lead_id=$1 ORDER BY created_at DESC LIMIT 1`, leadID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job by lead: %w", err)
	}
	return j, nil
}

func (r *jobRepository) List(ctx context.Context, f JobFilter) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	i := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, f.Status)
		i++
	}
	if f.ClientID > 0 {
		query += fmt.Sprintf(" AND client_id = $%d", i)
		args = append(args, f.ClientID)
		i++
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []*models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *jobRepository) Update(ctx context.Context, j *models.Job) error {
	const q = `
		UPDATE jobs
		SET site_address=$1, total_amount=$2, deposit_amount=$3, deposit_paid=$4, amount_paid=$5, updated_at=NOW()
		WHERE id=$6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, q, j.SiteAddress, j.TotalAmount, j.DepositAmount, j.DepositPaid, j.AmountPaid, j.ID).
		Scan(&j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *jobRepository) ChangeStatus(ctx context.Context, c *models.JobStatusChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE jobs SET status=$1, updated_at=NOW() WHERE id=$2`, c.ToStatus, c.JobID)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO job_status_history (job_id, from_status, to_status, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, changed_at`, c.JobID, c.FromStatus, c.ToStatus, c.ChangedBy).Scan(&c.ID, &c.ChangedAt)
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}
	return tx.Commit()
}

func (r *jobRepository) History(ctx context.Context, jobID int64) ([]*models.JobStatusChange, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, job_id, from_status, to_status, changed_by, changed_at
		FROM job_status_history
		WHERE job_id=$1
		ORDER BY changed_at, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("job history: %w", err)
	}
	defer rows.Close()

	out := []*models.JobStatusChange{}
	for rows.Next() {
		var c models.JobStatusChange
		if err := rows.Scan(&c.ID, &c.JobID, &c.FromStatus, &c.ToStatus, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM job_status_history WHERE job_id=$1`, id); err != nil {
		return fmt.Errorf("delete job history: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return tx.Commit()
}
