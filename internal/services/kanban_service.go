package services

import (
	"context"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type KanbanService struct {
	Repo     repositories.KanbanColumnRepository
	Statuses repositories.JobStatusRepository
	Jobs     repositories.JobRepository
}

func NewKanbanService(repo repositories.KanbanColumnRepository, statuses repositories.JobStatusRepository, jobs repositories.JobRepository) *KanbanService {
	return &KanbanService{Repo: repo, Statuses: statuses, Jobs: jobs}
}

func (s *KanbanService) List(ctx context.Context) ([]*models.KanbanColumn, error) {
	return s.Repo.List(ctx)
}

// checkForm validates the form and that every selected status is registered.
func (s *KanbanService) checkForm(ctx context.Context, f *workflow.ColumnForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	all, err := s.Statuses.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(all))
	for _, st := range all {
		known[st.Key] = true
	}
	for _, key := range f.Statuses {
		if !known[key] {
			return apperr.Invalid("statuses", "unknown job status %q", key)
		}
	}
	return nil
}

func (s *KanbanService) Create(ctx context.Context, f workflow.ColumnForm) (*models.KanbanColumn, error) {
	if err := s.checkForm(ctx, &f); err != nil {
		return nil, err
	}
	c := &models.KanbanColumn{
		Title:         f.Title,
		Statuses:      f.Statuses,
		DefaultStatus: f.DefaultStatus,
		Color:         f.Color,
		IsActive:      f.IsActive,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *KanbanService) Update(ctx context.Context, id int64, f workflow.ColumnForm) (*models.KanbanColumn, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("kanban column", id)
	}
	if err := s.checkForm(ctx, &f); err != nil {
		return nil, err
	}
	c.Title = f.Title
	c.Statuses = f.Statuses
	c.DefaultStatus = f.DefaultStatus
	c.Color = f.Color
	c.IsActive = f.IsActive
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, notFound(err, "kanban column", id)
	}
	return c, nil
}

func (s *KanbanService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Repo.Delete(ctx, id), "kanban column", id)
}

func (s *KanbanService) Reorder(ctx context.Context, ordered []int64) error {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	existing := ids(all, func(c *models.KanbanColumn) int64 { return c.ID })
	if err := workflow.CheckPermutation(existing, ordered); err != nil {
		return err
	}
	return s.Repo.Reorder(ctx, ordered)
}

// Board groups every job under the active column that owns its status.
func (s *KanbanService) Board(ctx context.Context) (models.KanbanBoard, error) {
	columns, err := s.Repo.List(ctx)
	if err != nil {
		return models.KanbanBoard{}, err
	}
	jobs, err := s.Jobs.List(ctx, repositories.JobFilter{})
	if err != nil {
		return models.KanbanBoard{}, err
	}
	return workflow.BuildBoard(columns, jobs), nil
}
