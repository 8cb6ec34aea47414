package models

// DashboardStats is the aggregate shown on the dashboard. Pointer fields let
// a partial server response be merged with a client-side computation.
type DashboardStats struct {
	NewLeads         *int `json:"newLeads"`
	QuotesAwaiting   *int `json:"quotesAwaitingFollowUp"`
	JobsInProduction *int `json:"jobsInProduction"`
	LowStockAlerts   *int `json:"lowStockAlerts"`
	PendingPayments  *int `json:"pendingPaymentAlerts"`
}
