package models

import "time"

type JobPipeline struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CompletionType string

const (
	CompletionManual    CompletionType = "manual"
	CompletionAutomatic CompletionType = "automatic"
)

func (t CompletionType) Valid() bool {
	return t == CompletionManual || t == CompletionAutomatic
}

// JobPipelineStage belongs to exactly one pipeline; Position orders the progression.
type JobPipelineStage struct {
	ID             int64          `json:"id"`
	PipelineID     int64          `json:"pipelineId"`
	Name           string         `json:"name"`
	Icon           *string        `json:"icon,omitempty"`
	CompletionType CompletionType `json:"completionType"`
	IsActive       bool           `json:"isActive"`
	Position       int            `json:"position"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
