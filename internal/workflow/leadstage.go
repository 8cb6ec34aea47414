// Package workflow holds the pure rules behind the job and lead boards:
// lead-stage bucketing, kanban column editing, ordering, the status
// dependency graph and the dashboard predicates.
package workflow

import (
	"slices"

	"probuild/internal/models"
)

// ParseLeadStage reports whether s is one of the known lead stages.
func ParseLeadStage(s string) (models.LeadStage, bool) {
	stage := models.LeadStage(s)
	if _, known := stageBucket(stage); known {
		return stage, true
	}
	return stage, false
}

// StageToStatus maps a lead stage to its board bucket. Unknown stages land in "new".
func StageToStatus(stage models.LeadStage) models.LeadStatus {
	status, _ := stageBucket(stage)
	return status
}

// stageBucket is the single translation table. Every case in
// models.LeadStages must appear here; TestEveryStageIsMapped guards it.
func stageBucket(stage models.LeadStage) (models.LeadStatus, bool) {
	switch stage {
	case models.StageNew:
		return models.LeadStatusNew, true
	case models.StageContacted, models.StageSiteVisitScheduled, models.StageSiteVisitComplete:
		return models.LeadStatusContacted, true
	case models.StageQuoteSent, models.StageQuoteRevised:
		return models.LeadStatusQuoted, true
	case models.StageApproved, models.StageConvertedToJob:
		return models.LeadStatusApproved, true
	case models.StageDeclined, models.StageLost:
		return models.LeadStatusDeclined, true
	}
	return models.LeadStatusNew, false
}

// StatusToStage returns the canonical stage written when a card is dropped
// into a bucket. Several stages share a bucket, so this is not an inverse of
// StageToStatus: contacted -> contacted drops site_visit_* detail.
func StatusToStage(status models.LeadStatus) (models.LeadStage, bool) {
	switch status {
	case models.LeadStatusNew:
		return models.StageNew, true
	case models.LeadStatusContacted:
		return models.StageContacted, true
	case models.LeadStatusQuoted:
		return models.StageQuoteSent, true
	case models.LeadStatusApproved:
		return models.StageApproved, true
	case models.LeadStatusDeclined:
		return models.StageDeclined, true
	}
	return "", false
}

// MoveLead computes the stage after a board move. A drop into the bucket the
// lead already belongs to keeps its current stage.
func MoveLead(current models.LeadStage, target models.LeadStatus) (models.LeadStage, bool) {
	if bucket, known := stageBucket(current); known && bucket == target {
		return current, true
	}
	return StatusToStage(target)
}

// GroupLeads buckets leads by status, keeping input order inside each bucket.
func GroupLeads(leads []*models.LeadView) []models.LeadBoardColumn {
	idx := make(map[models.LeadStatus]int, len(models.LeadStatuses))
	board := make([]models.LeadBoardColumn, len(models.LeadStatuses))
	for i, s := range models.LeadStatuses {
		idx[s] = i
		board[i] = models.LeadBoardColumn{Status: s, Leads: []*models.LeadView{}}
	}
	for _, l := range leads {
		i := idx[StageToStatus(l.Stage)]
		board[i].Leads = append(board[i].Leads, l)
	}
	return board
}

// StagesFor lists the stages that fall into a bucket, in sales order.
func StagesFor(status models.LeadStatus) []models.LeadStage {
	var out []models.LeadStage
	for _, s := range models.LeadStages {
		if StageToStatus(s) == status {
			out = append(out, s)
		}
	}
	return out
}

// ParseLeadStatus reports whether s names one of the board buckets.
func ParseLeadStatus(s string) (models.LeadStatus, bool) {
	status := models.LeadStatus(s)
	return status, slices.Contains(models.LeadStatuses, status)
}
