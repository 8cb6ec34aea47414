package workflow

import (
	"slices"

	"probuild/internal/apperr"
)

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// MoveAdjacent returns a copy of items with items[index] swapped with its
// neighbour in dir. Moves past either end return an unchanged copy.
func MoveAdjacent[T any](items []T, index int, dir Direction) []T {
	out := slices.Clone(items)
	target := index + int(dir)
	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out
	}
	out[index], out[target] = out[target], out[index]
	return out
}

// CheckPermutation verifies ordered is a complete reordering of existing.
// Partial lists, duplicates and unknown ids are rejected.
func CheckPermutation(existing, ordered []int64) error {
	if len(ordered) != len(existing) {
		return apperr.Invalid("ids", "expected %d ids, got %d", len(existing), len(ordered))
	}
	known := make(map[int64]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	seen := make(map[int64]bool, len(ordered))
	for _, id := range ordered {
		if !known[id] {
			return apperr.Invalid("ids", "unknown id %d", id)
		}
		if seen[id] {
			return apperr.Invalid("ids", "id %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}
