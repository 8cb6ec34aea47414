package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type LeadService struct {
	Repo          repositories.LeadRepository
	Jobs          repositories.JobRepository
	Clients       repositories.ClientRepository
	Notifier      Notifier
	InitialStatus string
}

func NewLeadService(repo repositories.LeadRepository, jobs repositories.JobRepository, clients repositories.ClientRepository, notifier Notifier, initialStatus string) *LeadService {
	return &LeadService{Repo: repo, Jobs: jobs, Clients: clients, Notifier: notifier, InitialStatus: initialStatus}
}

func (s *LeadService) checkLead(ctx context.Context, l *models.Lead) error {
	if l.Stage == "" {
		l.Stage = models.StageNew
	}
	if _, ok := workflow.ParseLeadStage(string(l.Stage)); !ok {
		return apperr.Invalid("stage", "unknown lead stage %q", l.Stage)
	}
	if l.FenceLength < 0 {
		return apperr.Invalid("fenceLength", "must not be negative")
	}
	if l.ClientID != nil {
		c, err := s.Clients.GetByID(ctx, *l.ClientID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.Invalid("clientId", "client %d does not exist", *l.ClientID)
		}
	}
	return nil
}

func (s *LeadService) Create(ctx context.Context, l *models.Lead) error {
	if err := s.checkLead(ctx, l); err != nil {
		return err
	}
	return s.Repo.Create(ctx, l)
}

func (s *LeadService) Update(ctx context.Context, l *models.Lead) error {
	if err := s.checkLead(ctx, l); err != nil {
		return err
	}
	return notFound(s.Repo.Update(ctx, l), "lead", l.ID)
}

func (s *LeadService) get(ctx context.Context, id int64) (*models.Lead, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("lead", id)
	}
	return l, nil
}

func (s *LeadService) GetByID(ctx context.Context, id int64) (*models.LeadView, error) {
	l, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []*models.Lead{l})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *LeadService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Repo.Delete(ctx, id), "lead", id)
}

// List returns leads, optionally only those in one board bucket.
func (s *LeadService) List(ctx context.Context, bucket string, limit, offset int) ([]*models.LeadView, error) {
	f := repositories.LeadFilter{Limit: limit, Offset: offset}
	if bucket != "" {
		status, ok := workflow.ParseLeadStatus(bucket)
		if !ok {
			return nil, apperr.Invalid("status", "unknown lead status %q", bucket)
		}
		f.Stages = workflow.StagesFor(status)
	}
	leads, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, leads)
}

func (s *LeadService) Board(ctx context.Context) ([]models.LeadBoardColumn, error) {
	views, err := s.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	return workflow.GroupLeads(views), nil
}

func (s *LeadService) SetStage(ctx context.Context, id int64, stage string) (*models.LeadView, error) {
	st, ok := workflow.ParseLeadStage(stage)
	if !ok {
		return nil, apperr.Invalid("stage", "unknown lead stage %q", stage)
	}
	if err := s.Repo.UpdateStage(ctx, id, st); err != nil {
		return nil, notFound(err, "lead", id)
	}
	return s.GetByID(ctx, id)
}

// Move handles a board drop into a bucket. A drop into the lead's own bucket
// keeps its stage; otherwise the bucket's canonical stage is written.
func (s *LeadService) Move(ctx context.Context, id int64, bucket string) (*models.LeadView, error) {
	status, ok := workflow.ParseLeadStatus(bucket)
	if !ok {
		return nil, apperr.Invalid("status", "unknown lead status %q", bucket)
	}
	l, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, _ := workflow.MoveLead(l.Stage, status)
	if next != l.Stage {
		if err := s.Repo.UpdateStage(ctx, id, next); err != nil {
			return nil, notFound(err, "lead", id)
		}
		l.Stage = next
	}
	views, err := s.views(ctx, []*models.Lead{l})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Convert turns an approved lead into a job. A lead converts at most once.
func (s *LeadService) Convert(ctx context.Context, id int64) (*models.Job, error) {
	l, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := s.Jobs.GetByLeadID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil || l.Stage == models.StageConvertedToJob {
		return nil, apperr.Conflict("lead %d was already converted", id)
	}
	if workflow.StageToStatus(l.Stage) != models.LeadStatusApproved {
		return nil, apperr.Conflict("lead %d must be approved before conversion", id)
	}

	job := &models.Job{
		LeadID:      &l.ID,
		ClientID:    l.ClientID,
		Status:      s.InitialStatus,
		SiteAddress: l.SiteAddress,
	}
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStage(ctx, id, models.StageConvertedToJob); err != nil {
		if derr := s.Jobs.Delete(ctx, job.ID); derr != nil {
			log.Error().Err(derr).Int64("job_id", job.ID).Msg("rollback of converted job failed")
		}
		return nil, err
	}
	l.Stage = models.StageConvertedToJob

	if s.Notifier != nil {
		if err := s.Notifier.LeadConverted(ctx, l, job); err != nil {
			log.Warn().Err(err).Int64("lead_id", id).Msg("conversion notification failed")
		}
	}
	return job, nil
}

func (s *LeadService) views(ctx context.Context, leads []*models.Lead) ([]*models.LeadView, error) {
	refs := make([]*int64, len(leads))
	for i, l := range leads {
		refs[i] = l.ClientID
	}
	clients, err := loadClients(ctx, s.Clients, refs)
	if err != nil {
		return nil, err
	}
	out := make([]*models.LeadView, len(leads))
	for i, l := range leads {
		out[i] = &models.LeadView{
			Lead:       l,
			Status:     workflow.StageToStatus(l.Stage),
			ClientName: displayName(clients, l.ClientID),
		}
	}
	return out, nil
}
