package services

import (
	"database/sql"
	"errors"

	"probuild/internal/apperr"
)

// notFound turns a repository miss (nil row or sql.ErrNoRows) into apperr.NotFound.
func notFound(err error, entity string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
