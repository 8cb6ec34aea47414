package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   []error
		not  []error
	}{
		{"validation", Invalid("key", "is required"), []error{ErrValidation}, []error{ErrConflict, ErrNotFound}},
		{"not found", NotFound("lead", 4), []error{ErrNotFound}, []error{ErrConflict}},
		{"conflict", Conflict("lead %d was already converted", 3), []error{ErrConflict}, []error{ErrValidation}},
		{"cycle", &CycleError{Path: []string{"a", "b", "a"}}, []error{ErrCyclicDependency, ErrConflict}, []error{ErrDependencyUnmet}},
		{"unmet", &UnmetError{Status: "install", Missing: []string{"qa_check"}}, []error{ErrDependencyUnmet, ErrConflict}, []error{ErrCyclicDependency}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			for _, target := range tt.is {
				assert.ErrorIs(t, wrapped, target)
			}
			for _, target := range tt.not {
				assert.NotErrorIs(t, wrapped, target)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "lead 4 not found", Message(NotFound("lead", 4)))
	assert.Equal(t, "lead 3 was already converted", Message(Conflict("lead %d was already converted", 3)))
	assert.Equal(t, "key: is required", Message(Invalid("key", "is required")))
	assert.Equal(t, "dependency cycle: a -> b -> a", Message(&CycleError{Path: []string{"a", "b", "a"}}))
}

func TestUnmetErrorAs(t *testing.T) {
	err := fmt.Errorf("change status: %w", &UnmetError{Status: "install", Missing: []string{"qa_check", "paint"}})
	var unmet *UnmetError
	assert.True(t, errors.As(err, &unmet))
	assert.Equal(t, []string{"qa_check", "paint"}, unmet.Missing)
	assert.Equal(t, "status install requires qa_check, paint first", unmet.Error())
}
