package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"probuild/internal/apperr"
)

const uniqueViolation = "23505"

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// reorder writes position = index for every id, inside tx.
func reorder(ctx context.Context, tx *sql.Tx, table string, ids []int64) error {
	q := fmt.Sprintf(`UPDATE %s SET position=$1, updated_at=NOW() WHERE id=$2`, table)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i+1, id); err != nil {
			return fmt.Errorf("reorder %s id=%d: %w", table, id, err)
		}
	}
	return nil
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// duplicateKey turns a unique constraint violation into a conflict. Other
// errors come back as nil.
func duplicateKey(err error, format string, args ...any) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperr.Conflict(format, args...)
	}
	return nil
}
