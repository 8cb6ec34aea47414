package services

import (
	"context"
	"strings"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type PipelineService struct {
	Repo repositories.JobPipelineRepository
}

func NewPipelineService(repo repositories.JobPipelineRepository) *PipelineService {
	return &PipelineService{Repo: repo}
}

type PipelinePatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type StagePatch struct {
	Name           *string
	Icon           *string
	CompletionType *models.CompletionType
	IsActive       *bool
}

func (s *PipelineService) List(ctx context.Context) ([]*models.JobPipeline, error) {
	return s.Repo.List(ctx)
}

func (s *PipelineService) Get(ctx context.Context, id int64) (*models.JobPipeline, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("pipeline", id)
	}
	return p, nil
}

func (s *PipelineService) Create(ctx context.Context, p *models.JobPipeline) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperr.Invalid("name", "is required")
	}
	return s.Repo.Create(ctx, p)
}

func (s *PipelineService) Update(ctx context.Context, id int64, patch PipelinePatch) (*models.JobPipeline, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Invalid("name", "is required")
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, notFound(err, "pipeline", id)
	}
	return p, nil
}

// Delete removes the pipeline and all of its stages.
func (s *PipelineService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Repo.Delete(ctx, id), "pipeline", id)
}

func (s *PipelineService) ListStages(ctx context.Context, pipelineID int64) ([]*models.JobPipelineStage, error) {
	if _, err := s.Get(ctx, pipelineID); err != nil {
		return nil, err
	}
	return s.Repo.ListStages(ctx, pipelineID)
}

func (s *PipelineService) CreateStage(ctx context.Context, st *models.JobPipelineStage) error {
	if _, err := s.Get(ctx, st.PipelineID); err != nil {
		return err
	}
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return apperr.Invalid("name", "is required")
	}
	if st.CompletionType == "" {
		st.CompletionType = models.CompletionManual
	}
	if !st.CompletionType.Valid() {
		return apperr.Invalid("completionType", "must be manual or automatic")
	}
	return s.Repo.CreateStage(ctx, st)
}

func (s *PipelineService) getStage(ctx context.Context, pipelineID, stageID int64) (*models.JobPipelineStage, error) {
	st, err := s.Repo.GetStage(ctx, pipelineID, stageID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperr.NotFound("stage", stageID)
	}
	return st, nil
}

func (s *PipelineService) UpdateStage(ctx context.Context, pipelineID, stageID int64, patch StagePatch) (*models.JobPipelineStage, error) {
	st, err := s.getStage(ctx, pipelineID, stageID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Invalid("name", "is required")
		}
		st.Name = name
	}
	if patch.Icon != nil {
		st.Icon = patch.Icon
	}
	if patch.CompletionType != nil {
		if !patch.CompletionType.Valid() {
			return nil, apperr.Invalid("completionType", "must be manual or automatic")
		}
		st.CompletionType = *patch.CompletionType
	}
	if patch.IsActive != nil {
		st.IsActive = *patch.IsActive
	}
	if err := s.Repo.UpdateStage(ctx, st); err != nil {
		return nil, notFound(err, "stage", stageID)
	}
	return st, nil
}

func (s *PipelineService) DeleteStage(ctx context.Context, pipelineID, stageID int64) error {
	return notFound(s.Repo.DeleteStage(ctx, pipelineID, stageID), "stage", stageID)
}

// ReorderStages persists a complete new order for one pipeline's stages.
func (s *PipelineService) ReorderStages(ctx context.Context, pipelineID int64, ordered []int64) error {
	stages, err := s.ListStages(ctx, pipelineID)
	if err != nil {
		return err
	}
	existing := ids(stages, func(st *models.JobPipelineStage) int64 { return st.ID })
	if err := workflow.CheckPermutation(existing, ordered); err != nil {
		return err
	}
	return s.Repo.ReorderStages(ctx, pipelineID, ordered)
}
