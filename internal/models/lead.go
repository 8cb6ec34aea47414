package models

import "time"

// LeadStage is the fine-grained sales stage stored on a lead.
type LeadStage string

const (
	StageNew                LeadStage = "new"
	StageContacted          LeadStage = "contacted"
	StageSiteVisitScheduled LeadStage = "site_visit_scheduled"
	StageSiteVisitComplete  LeadStage = "site_visit_complete"
	StageQuoteSent          LeadStage = "quote_sent"
	StageQuoteRevised       LeadStage = "quote_revised"
	StageApproved           LeadStage = "approved"
	StageConvertedToJob     LeadStage = "converted_to_job"
	StageDeclined           LeadStage = "declined"
	StageLost               LeadStage = "lost"
)

// LeadStages lists the known stages in sales order.
var LeadStages = []LeadStage{
	StageNew, StageContacted, StageSiteVisitScheduled, StageSiteVisitComplete,
	StageQuoteSent, StageQuoteRevised, StageApproved, StageConvertedToJob,
	StageDeclined, StageLost,
}

// LeadStatus is the coarse bucket a lead is shown under on the board.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusApproved  LeadStatus = "approved"
	LeadStatusDeclined  LeadStatus = "declined"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQuoted, LeadStatusApproved, LeadStatusDeclined,
}

type Lead struct {
	ID                 int64     `json:"id"`
	Stage              LeadStage `json:"stage"`
	ClientID           *int64    `json:"clientId,omitempty"`
	SiteAddress        string    `json:"siteAddress"`
	FenceStyle         string    `json:"fenceStyle"`
	FenceLength        float64   `json:"fenceLength"`
	Source             string    `json:"source"`
	LeadType           string    `json:"leadType"`
	JobFulfillmentType string    `json:"jobFulfillmentType"`
	Notes              string    `json:"notes"`
	AssignedTo         *int64    `json:"assignedTo,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// LeadView is a lead with its client name resolved for lists and boards.
type LeadView struct {
	*Lead
	Status     LeadStatus `json:"status"`
	ClientName string     `json:"clientName"`
}

type LeadBoardColumn struct {
	Status LeadStatus  `json:"status"`
	Leads  []*LeadView `json:"leads"`
}
