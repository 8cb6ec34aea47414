package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probuild/internal/models"
)

func TestStageToStatus(t *testing.T) {
	tests := []struct {
		stage string
		want  models.LeadStatus
	}{
		{"new", models.LeadStatusNew},
		{"contacted", models.LeadStatusContacted},
		{"site_visit_scheduled", models.LeadStatusContacted},
		{"site_visit_complete", models.LeadStatusContacted},
		{"quote_sent", models.LeadStatusQuoted},
		{"quote_revised", models.LeadStatusQuoted},
		{"approved", models.LeadStatusApproved},
		{"converted_to_job", models.LeadStatusApproved},
		{"declined", models.LeadStatusDeclined},
		{"lost", models.LeadStatusDeclined},
		{"", models.LeadStatusNew},
		{"on_hold", models.LeadStatusNew},
		{"APPROVED", models.LeadStatusNew},
	}
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			assert.Equal(t, tt.want, StageToStatus(models.LeadStage(tt.stage)))
		})
	}
}

func TestEveryStageIsMapped(t *testing.T) {
	for _, s := range models.LeadStages {
		_, known := ParseLeadStage(string(s))
		assert.True(t, known, "stage %s has no bucket", s)
	}
	_, known := ParseLeadStage("somewhere_else")
	assert.False(t, known)
}

func TestStatusToStageRoundTrip(t *testing.T) {
	for _, status := range models.LeadStatuses {
		stage, ok := StatusToStage(status)
		require.True(t, ok)
		assert.Equal(t, status, StageToStatus(stage))
	}
}

// The inverse is lossy on purpose: three stages share the contacted bucket
// and only one comes back.
func TestStatusToStageCollapsesContacted(t *testing.T) {
	stage, ok := StatusToStage(StageToStatus(models.StageSiteVisitScheduled))
	require.True(t, ok)
	assert.Equal(t, models.StageContacted, stage)
	assert.NotEqual(t, models.StageSiteVisitScheduled, stage)
}

func TestMoveLead(t *testing.T) {
	tests := []struct {
		name    string
		current models.LeadStage
		target  models.LeadStatus
		want    models.LeadStage
	}{
		{"same bucket keeps detail", models.StageSiteVisitComplete, models.LeadStatusContacted, models.StageSiteVisitComplete},
		{"new bucket takes canonical stage", models.StageSiteVisitComplete, models.LeadStatusQuoted, models.StageQuoteSent},
		{"back to contacted", models.StageQuoteRevised, models.LeadStatusContacted, models.StageContacted},
		{"unknown stage into new", models.LeadStage("mystery"), models.LeadStatusNew, models.StageNew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MoveLead(tt.current, tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := MoveLead(models.StageNew, models.LeadStatus("archived"))
	assert.False(t, ok)
}

func TestGroupLeads(t *testing.T) {
	leads := []*models.LeadView{
		{Lead: &models.Lead{ID: 1, Stage: models.StageQuoteSent}},
		{Lead: &models.Lead{ID: 2, Stage: models.StageLost}},
		{Lead: &models.Lead{ID: 3, Stage: "weird"}},
		{Lead: &models.Lead{ID: 4, Stage: models.StageQuoteRevised}},
	}
	board := GroupLeads(leads)
	require.Len(t, board, 5)
	assert.Equal(t, models.LeadStatusNew, board[0].Status)
	assert.Len(t, board[0].Leads, 1)
	assert.Empty(t, board[1].Leads)
	require.Len(t, board[2].Leads, 2)
	assert.Equal(t, int64(1), board[2].Leads[0].ID)
	assert.Equal(t, int64(4), board[2].Leads[1].ID)
	assert.Len(t, board[4].Leads, 1)
}

func TestStagesFor(t *testing.T) {
	assert.Equal(t,
		[]models.LeadStage{models.StageContacted, models.StageSiteVisitScheduled, models.StageSiteVisitComplete},
		StagesFor(models.LeadStatusContacted))
	assert.Equal(t, []models.LeadStage{models.StageApproved, models.StageConvertedToJob}, StagesFor(models.LeadStatusApproved))

	total := 0
	for _, s := range models.LeadStatuses {
		total += len(StagesFor(s))
	}
	assert.Equal(t, len(models.LeadStages), total)
}

func TestParseLeadStatus(t *testing.T) {
	s, ok := ParseLeadStatus("quoted")
	assert.True(t, ok)
	assert.Equal(t, models.LeadStatusQuoted, s)

	_, ok = ParseLeadStatus("quote_sent")
	assert.False(t, ok)
}
