package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"probuild/internal/models"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *models.Quote) error
	GetByID(ctx context.Context, id int64) (*models.Quote, error)
	List(ctx context.Context, status models.QuoteStatus) ([]*models.Quote, error)
	Update(ctx context.Context, q *models.Quote) error
}

type quoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteColumns = `id, quote_number, lead_id, client_id, status, total, sent_at, follow_up_at, created_at, updated_at`

func scanQuote(row rowScanner) (*models.Quote, error) {
	q := &models.Quote{}
	err := row.Scan(&q.ID, &q.QuoteNumber, &q.LeadID, &q.ClientID, &q.Status, &q.Total, &q.SentAt, &q.FollowUpAt, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *quoteRepository) Create(ctx context.Context, q *models.Quote) error {
	const stmt = `
		INSERT INTO quotes (quote_number, lead_id, client_id, status, total, sent_at, follow_up_at)
		VALUES ('Q-' || LPAD(nextval('quote_number_seq')::text, 5, '0'), $1, $2, $3, $4, $5, $6)
		RETURNING id, quote_number, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, stmt, q.LeadID, q.ClientID, q.Status, q.Total, q.SentAt, q.FollowUpAt).
		Scan(&q.ID, &q.QuoteNumber, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id int64) (*models.Quote, error) {
	q, err := scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (r *quoteRepository) List(ctx context.Context, status models.QuoteStatus) ([]*models.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes`
	args := []any{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	out := []*models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quoteRepository) Update(ctx context.Context, q *models.Quote) error {
	const stmt = `
		UPDATE quotes SET status=$1, total=$2, sent_at=$3, follow_up_at=$4, updated_at=NOW()
		WHERE id=$5
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, stmt, q.Status, q.Total, q.SentAt, q.FollowUpAt, q.ID).Scan(&q.UpdatedAt); err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}
