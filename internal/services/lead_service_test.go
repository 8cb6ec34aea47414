package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probuild/internal/apperr"
	"probuild/internal/models"
)

func newLeadService() (*LeadService, *fakeLeads, *fakeJobs, *fakeNotifier) {
	leads := &fakeLeads{}
	jobs := &fakeJobs{}
	clients := newFakeClients(&models.Client{ID: 1, Name: "Acme Fencing", Email: "ops@acme.test"})
	n := &fakeNotifier{}
	return NewLeadService(leads, jobs, clients, n, "new_jobs"), leads, jobs, n
}

func TestMoveLeadKeepsStageInSameBucket(t *testing.T) {
	svc, leads, _, _ := newLeadService()
	l := leads.add(models.StageSiteVisitScheduled, nil)

	v, err := svc.Move(context.Background(), l.ID, "contacted")
	require.NoError(t, err)
	assert.Equal(t, models.StageSiteVisitScheduled, v.Stage)
	assert.Equal(t, models.LeadStatusContacted, v.Status)
}

func TestMoveLeadWritesCanonicalStage(t *testing.T) {
	svc, leads, _, _ := newLeadService()
	l := leads.add(models.StageNew, nil)

	v, err := svc.Move(context.Background(), l.ID, "quoted")
	require.NoError(t, err)
	assert.Equal(t, models.StageQuoteSent, v.Stage)
	assert.Equal(t, models.StageQuoteSent, leads.items[0].Stage)

	_, err = svc.Move(context.Background(), l.ID, "quote_sent")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Move(context.Background(), 42, "new")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLeadViewsResolveClients(t *testing.T) {
	svc, leads, _, _ := newLeadService()
	leads.add(models.StageNew, int64p(1))
	leads.add(models.StageLost, int64p(99))
	leads.add(models.StageQuoteRevised, nil)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 5)
	assert.Equal(t, "Acme Fencing", board[0].Leads[0].ClientName)
	assert.Equal(t, UnknownClient, board[2].Leads[0].ClientName)
	assert.Equal(t, UnknownClient, board[4].Leads[0].ClientName)
}

func TestListLeadsByBucket(t *testing.T) {
	svc, leads, _, _ := newLeadService()
	leads.add(models.StageNew, nil)
	leads.add(models.StageQuoteSent, nil)
	leads.add(models.StageQuoteRevised, nil)

	got, err := svc.List(context.Background(), "quoted", 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.List(context.Background(), "bogus", 0, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestConvertLead(t *testing.T) {
	svc, leads, jobs, n := newLeadService()
	l := leads.add(models.StageApproved, int64p(1))
	ctx := context.Background()

	job, err := svc.Convert(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "JOB-00001", job.JobNumber)
	assert.Equal(t, "new_jobs", job.Status)
	assert.Equal(t, l.SiteAddress, job.SiteAddress)
	assert.Equal(t, models.StageConvertedToJob, leads.items[0].Stage)
	assert.Len(t, jobs.items, 1)
	assert.Equal(t, []sentMail{{kind: "converted:JOB-00001"}}, n.sent)

	_, err = svc.Convert(ctx, l.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, jobs.items, 1)
}

func TestConvertLeadRequiresApproval(t *testing.T) {
	svc, leads, jobs, _ := newLeadService()
	l := leads.add(models.StageQuoteSent, nil)

	_, err := svc.Convert(context.Background(), l.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Empty(t, jobs.items)
}

func TestConvertLeadRollsBackJob(t *testing.T) {
	svc, leads, jobs, n := newLeadService()
	l := leads.add(models.StageApproved, nil)
	leads.failStage = errBoom

	_, err := svc.Convert(context.Background(), l.ID)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, jobs.items)
	assert.Empty(t, n.sent)
}

func TestConvertLeadNotificationFailureIsIgnored(t *testing.T) {
	svc, leads, _, n := newLeadService()
	n.err = errBoom
	l := leads.add(models.StageApproved, nil)

	_, err := svc.Convert(context.Background(), l.ID)
	require.NoError(t, err)
}

func TestCreateLeadValidates(t *testing.T) {
	svc, _, _, _ := newLeadService()
	ctx := context.Background()

	l := &models.Lead{SiteAddress: "1 Rail St"}
	require.NoError(t, svc.Create(ctx, l))
	assert.Equal(t, models.StageNew, l.Stage)

	assert.ErrorIs(t, svc.Create(ctx, &models.Lead{Stage: "maybe"}), apperr.ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &models.Lead{ClientID: int64p(7)}), apperr.ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &models.Lead{FenceLength: -1}), apperr.ErrValidation)
}
