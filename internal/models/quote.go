package models

import "time"

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteRevised  QuoteStatus = "revised"
	QuoteApproved QuoteStatus = "approved"
	QuoteDeclined QuoteStatus = "declined"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteRevised, QuoteApproved, QuoteDeclined:
		return true
	}
	return false
}

type Quote struct {
	ID          int64       `json:"id"`
	QuoteNumber string      `json:"quoteNumber"`
	LeadID      *int64      `json:"leadId,omitempty"`
	ClientID    *int64      `json:"clientId,omitempty"`
	Status      QuoteStatus `json:"status"`
	Total       float64     `json:"total"`
	SentAt      *time.Time  `json:"sentAt,omitempty"`
	FollowUpAt  *time.Time  `json:"followUpAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
