package models

import "time"

// Job is a confirmed work order created on lead conversion.
type Job struct {
	ID            int64     `json:"id"`
	JobNumber     string    `json:"jobNumber"` // immutable
	LeadID        *int64    `json:"leadId,omitempty"`
	ClientID      *int64    `json:"clientId,omitempty"`
	Status        string    `json:"status"` // a JobStatus key
	SiteAddress   string    `json:"siteAddress"`
	TotalAmount   float64   `json:"totalAmount"`
	DepositAmount float64   `json:"depositAmount"`
	DepositPaid   bool      `json:"depositPaid"`
	AmountPaid    float64   `json:"amountPaid"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// JobView adds derived fields for list/detail responses.
type JobView struct {
	*Job
	ClientName  string `json:"clientName"`
	StatusLabel string `json:"statusLabel"`
	Progress    int    `json:"progress"`
}

type JobStatusChange struct {
	ID         int64     `json:"id"`
	JobID      int64     `json:"jobId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ChangedBy  *int64    `json:"changedBy,omitempty"`
	ChangedAt  time.Time `json:"changedAt"`
}
