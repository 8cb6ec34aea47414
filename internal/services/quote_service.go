package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
)

// FollowUpDelay is how long after sending a quote the follow-up falls due.
const FollowUpDelay = 3 * 24 * time.Hour

type QuoteService struct {
	Repo  repositories.QuoteRepository
	Leads repositories.LeadRepository
	now   func() time.Time
}

func NewQuoteService(repo repositories.QuoteRepository, leads repositories.LeadRepository) *QuoteService {
	return &QuoteService{Repo: repo, Leads: leads, now: time.Now}
}

func (s *QuoteService) Create(ctx context.Context, q *models.Quote) error {
	if q.Status == "" {
		q.Status = models.QuoteDraft
	}
	if q.Status != models.QuoteDraft {
		return apperr.Invalid("status", "new quotes start as draft")
	}
	if q.Total < 0 {
		return apperr.Invalid("total", "must not be negative")
	}
	return s.Repo.Create(ctx, q)
}

func (s *QuoteService) GetByID(ctx context.Context, id int64) (*models.Quote, error) {
	q, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperr.NotFound("quote", id)
	}
	return q, nil
}

func (s *QuoteService) List(ctx context.Context, status string) ([]*models.Quote, error) {
	st := models.QuoteStatus(status)
	if status != "" && !st.Valid() {
		return nil, apperr.Invalid("status", "unknown quote status %q", status)
	}
	return s.Repo.List(ctx, st)
}

type QuotePatch struct {
	Status *models.QuoteStatus
	Total  *float64
}

// Update applies a status move and/or a new total. Sending a quote stamps
// SentAt and schedules the follow-up; the linked lead follows the quote.
func (s *QuoteService) Update(ctx context.Context, id int64, p QuotePatch) (*models.Quote, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Total != nil {
		if *p.Total < 0 {
			return nil, apperr.Invalid("total", "must not be negative")
		}
		q.Total = *p.Total
	}
	moved := false
	if p.Status != nil && *p.Status != q.Status {
		if !p.Status.Valid() {
			return nil, apperr.Invalid("status", "unknown quote status %q", *p.Status)
		}
		if !canTransition(q.Status, *p.Status, QuoteTransitions) {
			return nil, apperr.Conflict("quote cannot move from %s to %s", q.Status, *p.Status)
		}
		q.Status = *p.Status
		moved = true
		if q.Status == models.QuoteSent {
			now := s.now()
			due := now.Add(FollowUpDelay)
			q.SentAt, q.FollowUpAt = &now, &due
		}
	}
	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, notFound(err, "quote", id)
	}
	if moved {
		s.syncLead(ctx, q)
	}
	return q, nil
}

func (s *QuoteService) syncLead(ctx context.Context, q *models.Quote) {
	stage, ok := quoteLeadStage[q.Status]
	if !ok || q.LeadID == nil || s.Leads == nil {
		return
	}
	lead, err := s.Leads.GetByID(ctx, *q.LeadID)
	if err != nil || lead == nil || lead.Stage == models.StageConvertedToJob {
		return
	}
	if err := s.Leads.UpdateStage(ctx, lead.ID, stage); err != nil {
		log.Warn().Err(err).Int64("lead_id", lead.ID).Msg("lead stage sync failed")
	}
}
