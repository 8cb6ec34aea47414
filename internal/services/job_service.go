package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type JobService struct {
	Repo     repositories.JobRepository
	Statuses repositories.JobStatusRepository
	Deps     repositories.JobStatusDependencyRepository
	Clients  repositories.ClientRepository
	Notifier Notifier
}

func NewJobService(repo repositories.JobRepository, statuses repositories.JobStatusRepository, deps repositories.JobStatusDependencyRepository, clients repositories.ClientRepository, notifier Notifier) *JobService {
	return &JobService{Repo: repo, Statuses: statuses, Deps: deps, Clients: clients, Notifier: notifier}
}

type JobPatch struct {
	SiteAddress   *string
	TotalAmount   *float64
	DepositAmount *float64
	DepositPaid   *bool
	AmountPaid    *float64
}

// StatusChangeResult is returned by ChangeStatus. Warnings list advisory
// prerequisites the job skipped.
type StatusChangeResult struct {
	Job      *models.JobView         `json:"job"`
	Change   *models.JobStatusChange `json:"change"`
	Warnings []string                `json:"warnings"`
}

func (s *JobService) get(ctx context.Context, id int64) (*models.Job, error) {
	j, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, apperr.NotFound("job", id)
	}
	return j, nil
}

func (s *JobService) List(ctx context.Context, f repositories.JobFilter) ([]*models.JobView, error) {
	jobs, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, jobs)
}

func (s *JobService) GetByID(ctx context.Context, id int64) (*models.JobView, error) {
	j, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []*models.Job{j})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *JobService) Update(ctx context.Context, id int64, p JobPatch) (*models.JobView, error) {
	j, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SiteAddress != nil {
		j.SiteAddress = *p.SiteAddress
	}
	for field, v := range map[string]*float64{
		"totalAmount":   p.TotalAmount,
		"depositAmount": p.DepositAmount,
		"amountPaid":    p.AmountPaid,
	} {
		if v != nil && *v < 0 {
			return nil, apperr.Invalid(field, "must not be negative")
		}
	}
	if p.TotalAmount != nil {
		j.TotalAmount = *p.TotalAmount
	}
	if p.DepositAmount != nil {
		j.DepositAmount = *p.DepositAmount
	}
	if p.DepositPaid != nil {
		j.DepositPaid = *p.DepositPaid
	}
	if p.AmountPaid != nil {
		j.AmountPaid = *p.AmountPaid
	}
	if err := s.Repo.Update(ctx, j); err != nil {
		return nil, notFound(err, "job", id)
	}
	return s.GetByID(ctx, id)
}

// ChangeStatus moves a job to another registered status. Mandatory
// prerequisites the job never reached block the move.
func (s *JobService) ChangeStatus(ctx context.Context, id int64, to string, changedBy *int64) (*StatusChangeResult, error) {
	j, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := s.Statuses.GetByKey(ctx, to)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.Invalid("status", "unknown job status %q", to)
	}
	if !target.IsActive {
		return nil, apperr.Invalid("status", "job status %q is inactive", to)
	}
	if j.Status == to {
		return nil, apperr.Invalid("status", "job is already %q", to)
	}

	history, err := s.Repo.History(ctx, id)
	if err != nil {
		return nil, err
	}
	visited := map[string]bool{j.Status: true}
	for _, h := range history {
		visited[h.ToStatus] = true
	}
	deps, err := s.Deps.ListForStatus(ctx, to)
	if err != nil {
		return nil, err
	}
	mandatory, advisory := workflow.UnmetPrerequisites(deps, to, visited)
	if len(mandatory) > 0 {
		return nil, &apperr.UnmetError{Status: to, Missing: mandatory}
	}

	change := &models.JobStatusChange{JobID: id, FromStatus: j.Status, ToStatus: to, ChangedBy: changedBy}
	if err := s.Repo.ChangeStatus(ctx, change); err != nil {
		return nil, notFound(err, "job", id)
	}
	j.Status = to

	views, err := s.views(ctx, []*models.Job{j})
	if err != nil {
		return nil, err
	}
	res := &StatusChangeResult{Job: views[0], Change: change, Warnings: []string{}}
	for _, key := range advisory {
		res.Warnings = append(res.Warnings, fmt.Sprintf("advisory prerequisite %q was skipped", key))
	}
	s.notifyStatus(ctx, j, change.FromStatus, to)
	return res, nil
}

func (s *JobService) notifyStatus(ctx context.Context, j *models.Job, from, to string) {
	if s.Notifier == nil || j.ClientID == nil {
		return
	}
	client, err := s.Clients.GetByID(ctx, *j.ClientID)
	if err == nil {
		err = s.Notifier.JobStatusChanged(ctx, j, client, from, to)
	}
	if err != nil {
		log.Warn().Err(err).Int64("job_id", j.ID).Msg("status notification failed")
	}
}

func (s *JobService) History(ctx context.Context, id int64) ([]*models.JobStatusChange, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.History(ctx, id)
}

func (s *JobService) views(ctx context.Context, jobs []*models.Job) ([]*models.JobView, error) {
	statuses, err := s.Statuses.List(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(statuses))
	for _, st := range statuses {
		labels[st.Key] = st.Label
	}
	refs := make([]*int64, len(jobs))
	for i, j := range jobs {
		refs[i] = j.ClientID
	}
	clients, err := loadClients(ctx, s.Clients, refs)
	if err != nil {
		return nil, err
	}
	out := make([]*models.JobView, len(jobs))
	for i, j := range jobs {
		label, ok := labels[j.Status]
		if !ok {
			label = j.Status
		}
		out[i] = &models.JobView{
			Job:         j,
			ClientName:  displayName(clients, j.ClientID),
			StatusLabel: label,
			Progress:    workflow.Progress(statuses, j.Status),
		}
	}
	return out, nil
}
