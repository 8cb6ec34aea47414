package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"probuild/internal/models"
)

// UserRepository is read-only here; accounts are managed by the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, activeOnly bool) ([]*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role_id, is_active FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, activeOnly bool) ([]*models.User, error) {
	query := `SELECT id, name, email, role_id, is_active FROM users`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []*models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.IsActive); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
