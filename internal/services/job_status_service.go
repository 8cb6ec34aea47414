package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type JobStatusService struct {
	Repo    repositories.JobStatusRepository
	DepRepo repositories.JobStatusDependencyRepository
	Columns repositories.KanbanColumnRepository
}

func NewJobStatusService(repo repositories.JobStatusRepository, deps repositories.JobStatusDependencyRepository, columns repositories.KanbanColumnRepository) *JobStatusService {
	return &JobStatusService{Repo: repo, DepRepo: deps, Columns: columns}
}

// StatusPatch is a partial update. Key is accepted only so a changed key can be rejected.
type StatusPatch struct {
	Key         *string
	Label       *string
	Description *string
	IsActive    *bool
}

// StatusDeletion reports the side effects of removing a status.
type StatusDeletion struct {
	Key             string `json:"key"`
	JobsOnStatus    int    `json:"jobsOnStatus"`
	RepairedColumns int    `json:"repairedColumns"`
	Warning         string `json:"warning,omitempty"`
}

func (s *JobStatusService) List(ctx context.Context) ([]*models.JobStatus, error) {
	return s.Repo.List(ctx)
}

func (s *JobStatusService) Create(ctx context.Context, st *models.JobStatus) error {
	st.Key = workflow.NormalizeKey(st.Key)
	st.Label = strings.TrimSpace(st.Label)
	if err := workflow.ValidateStatusInput(st.Key, st.Label); err != nil {
		return err
	}
	existing, err := s.Repo.GetByKey(ctx, st.Key)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict("job status %q already exists", st.Key)
	}
	return s.Repo.Create(ctx, st)
}

func (s *JobStatusService) Update(ctx context.Context, id int64, p StatusPatch) (*models.JobStatus, error) {
	st, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperr.NotFound("job status", id)
	}
	if p.Key != nil && workflow.NormalizeKey(*p.Key) != st.Key {
		return nil, apperr.Invalid("key", "cannot be changed after creation")
	}
	if p.Label != nil {
		label := strings.TrimSpace(*p.Label)
		if label == "" {
			return nil, apperr.Invalid("label", "is required")
		}
		st.Label = label
	}
	if p.Description != nil {
		st.Description = p.Description
	}
	if p.IsActive != nil {
		st.IsActive = *p.IsActive
	}
	if err := s.Repo.Update(ctx, st); err != nil {
		return nil, notFound(err, "job status", id)
	}
	return st, nil
}

// Delete removes a status, its dependency edges and its kanban memberships.
// Jobs on the status keep it; the result reports how many there are.
func (s *JobStatusService) Delete(ctx context.Context, id int64) (*StatusDeletion, error) {
	st, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperr.NotFound("job status", id)
	}

	columns, err := s.Columns.List(ctx)
	if err != nil {
		return nil, err
	}
	var repaired []*models.KanbanColumn
	for _, c := range columns {
		if !slices.Contains(c.Statuses, st.Key) {
			continue
		}
		form := workflow.FormFromColumn(c)
		form.ToggleStatus(st.Key)
		if len(form.Statuses) == 0 {
			return nil, apperr.Conflict("kanban column %q would be left without statuses", c.Title)
		}
		fixed := *c
		fixed.Statuses = form.Statuses
		fixed.DefaultStatus = form.DefaultStatus
		repaired = append(repaired, &fixed)
	}

	n, err := s.Repo.CountJobs(ctx, st.Key)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, st, repaired); err != nil {
		return nil, notFound(err, "job status", id)
	}

	res := &StatusDeletion{Key: st.Key, JobsOnStatus: n, RepairedColumns: len(repaired)}
	if n > 0 {
		res.Warning = fmt.Sprintf("%d job(s) still have status %q", n, st.Key)
	}
	return res, nil
}

func (s *JobStatusService) Reorder(ctx context.Context, ordered []int64) error {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	existing := ids(all, func(st *models.JobStatus) int64 { return st.ID })
	if err := workflow.CheckPermutation(existing, ordered); err != nil {
		return err
	}
	return s.Repo.Reorder(ctx, ordered)
}

func (s *JobStatusService) knownKeys(ctx context.Context) (map[string]bool, []*models.JobStatus, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[string]bool, len(all))
	for _, st := range all {
		known[st.Key] = true
	}
	return known, all, nil
}

func (s *JobStatusService) ListDependencies(ctx context.Context) ([]models.JobStatusDependency, error) {
	return s.DepRepo.List(ctx)
}

func (s *JobStatusService) GetDependencies(ctx context.Context, statusKey string) ([]models.JobStatusDependency, error) {
	st, err := s.Repo.GetByKey(ctx, statusKey)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperr.NotFound("job status", statusKey)
	}
	return s.DepRepo.ListForStatus(ctx, statusKey)
}

// SaveDependencies replaces statusKey's prerequisites with deps. An empty
// deps clears them. Sets that would close a cycle are rejected.
func (s *JobStatusService) SaveDependencies(ctx context.Context, statusKey string, deps []models.JobStatusDependency) ([]models.JobStatusDependency, error) {
	known, _, err := s.knownKeys(ctx)
	if err != nil {
		return nil, err
	}
	if err := workflow.ValidateDependencySet(statusKey, deps, known); err != nil {
		return nil, err
	}
	all, err := s.DepRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cycle := workflow.FindCycle(workflow.ReplaceDependencies(all, statusKey, deps)); cycle != nil {
		return nil, &apperr.CycleError{Path: cycle}
	}

	next := make([]models.JobStatusDependency, len(deps))
	for i, d := range deps {
		d.StatusKey = statusKey
		next[i] = d
	}
	if err := s.DepRepo.Replace(ctx, statusKey, next); err != nil {
		return nil, err
	}
	return s.DepRepo.ListForStatus(ctx, statusKey)
}

// Available lists the statuses that can still be added as prerequisites of
// statusKey. A nil selected means the currently stored prerequisites.
func (s *JobStatusService) Available(ctx context.Context, statusKey string, selected []string) ([]*models.JobStatus, error) {
	known, all, err := s.knownKeys(ctx)
	if err != nil {
		return nil, err
	}
	if !known[statusKey] {
		return nil, apperr.NotFound("job status", statusKey)
	}
	if selected == nil {
		current, err := s.DepRepo.ListForStatus(ctx, statusKey)
		if err != nil {
			return nil, err
		}
		for _, d := range current {
			selected = append(selected, d.PrerequisiteKey)
		}
	}
	return workflow.AvailablePrerequisites(all, statusKey, selected), nil
}
