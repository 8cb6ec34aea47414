package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probuild/internal/apperr"
	"probuild/internal/models"
)

func TestQuoteLifecycle(t *testing.T) {
	leads := &fakeLeads{}
	lead := leads.add(models.StageSiteVisitComplete, nil)
	svc := NewQuoteService(&fakeQuotes{}, leads)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	q := &models.Quote{LeadID: &lead.ID, Total: 4200}
	require.NoError(t, svc.Create(ctx, q))
	assert.Equal(t, models.QuoteDraft, q.Status)
	assert.Equal(t, "Q-00001", q.QuoteNumber)

	sent := models.QuoteSent
	q, err := svc.Update(ctx, q.ID, QuotePatch{Status: &sent})
	require.NoError(t, err)
	require.NotNil(t, q.SentAt)
	assert.Equal(t, now, *q.SentAt)
	assert.Equal(t, now.Add(FollowUpDelay), *q.FollowUpAt)
	assert.Equal(t, models.StageQuoteSent, leads.items[0].Stage)

	approved := models.QuoteApproved
	_, err = svc.Update(ctx, q.ID, QuotePatch{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, models.StageApproved, leads.items[0].Stage)

	revised := models.QuoteRevised
	_, err = svc.Update(ctx, q.ID, QuotePatch{Status: &revised})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestQuoteValidation(t *testing.T) {
	svc := NewQuoteService(&fakeQuotes{}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, &models.Quote{Status: models.QuoteSent}), apperr.ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &models.Quote{Total: -1}), apperr.ErrValidation)

	_, err := svc.List(ctx, "pending")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.GetByID(ctx, 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestQuoteSyncSkipsConvertedLead(t *testing.T) {
	leads := &fakeLeads{}
	lead := leads.add(models.StageConvertedToJob, nil)
	svc := NewQuoteService(&fakeQuotes{}, leads)
	ctx := context.Background()

	q := &models.Quote{LeadID: &lead.ID}
	require.NoError(t, svc.Create(ctx, q))
	declined := models.QuoteDeclined
	_, err := svc.Update(ctx, q.ID, QuotePatch{Status: &declined})
	require.NoError(t, err)
	assert.Equal(t, models.StageConvertedToJob, leads.items[0].Stage)
}
