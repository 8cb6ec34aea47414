package client

import "encoding/json"

// Optimistic rewrites the cached value under key with edit, runs commit, and
// puts the previous value back if commit fails. A key that is not cached is
// left alone and commit runs as a plain write.
func Optimistic[T any](qc *QueryCache, key string, edit func(T) T, commit func() error) error {
	prev, ok := qc.Get(key)
	if !ok {
		return commit()
	}
	var current T
	if err := json.Unmarshal(prev, &current); err == nil {
		if next, err := json.Marshal(edit(current)); err == nil {
			qc.Set(key, next)
		}
	}
	if err := commit(); err != nil {
		qc.Set(key, prev)
		return err
	}
	return nil
}
