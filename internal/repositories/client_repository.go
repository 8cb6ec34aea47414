package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"probuild/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]*models.Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]*models.Client, error)
	Delete(ctx context.Context, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, email, phone, address, created_at`

func scanClient(row rowScanner) (*models.Client, error) {
	c := &models.Client{}
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *models.Client) error {
	const q = `
		INSERT INTO clients (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, q, c.Name, c.Email, c.Phone, c.Address).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, c *models.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name=$1, email=$2, phone=$3, address=$4 WHERE id=$5`,
		c.Name, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *clientRepository) GetMany(ctx context.Context, ids []int64) (map[int64]*models.Client, error) {
	out := make(map[int64]*models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get clients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

func (r *clientRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		query += ` WHERE LOWER(name) LIKE $1`
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	query += " ORDER BY name, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := []*models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return affectedOrNotFound(res)
}
