package models

import "time"

// JobStatus is an administrator-configurable stage a job can occupy.
type JobStatus struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"` // lowercase + underscores, frozen after creation
	Label       string    `json:"label"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DependencyType string

const (
	DependencyMandatory DependencyType = "mandatory"
	DependencyAdvisory  DependencyType = "advisory"
)

func (t DependencyType) Valid() bool {
	return t == DependencyMandatory || t == DependencyAdvisory
}

// JobStatusDependency: StatusKey requires PrerequisiteKey to have been reached first.
type JobStatusDependency struct {
	ID              int64          `json:"id"`
	StatusKey       string         `json:"statusKey"`
	PrerequisiteKey string         `json:"prerequisiteKey"`
	DependencyType  DependencyType `json:"dependencyType"`
}
