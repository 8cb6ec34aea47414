package workflow

import (
	"slices"

	"probuild/internal/models"
)

// DefaultCompletedStatuses are the job status keys that no longer count as in production.
var DefaultCompletedStatuses = []string{"install_complete", "final_payment_pending", "completed"}

// FinalPaymentStatus is the status on which an unpaid balance becomes an alert.
const FinalPaymentStatus = "final_payment_pending"

func IsNewLead(l *models.Lead) bool {
	return StageToStatus(l.Stage) == models.LeadStatusNew
}

func IsAwaitingFollowUp(q *models.Quote) bool {
	return q.Status == models.QuoteSent || q.Status == models.QuoteRevised
}

func IsInProgress(j *models.Job, completed []string) bool {
	return !slices.Contains(completed, j.Status)
}

func IsLowStock(item *models.InventoryItem) bool {
	return item.Quantity <= item.ReorderLevel
}

// IsPaymentPending: a required deposit is unpaid, or the job waits on its
// final payment with a balance outstanding.
func IsPaymentPending(j *models.Job) bool {
	if j.DepositAmount > 0 && !j.DepositPaid {
		return true
	}
	return j.Status == FinalPaymentStatus && j.AmountPaid < j.TotalAmount
}

// Collections is the raw data the dashboard is computed from.
type Collections struct {
	Leads     []*models.Lead
	Quotes    []*models.Quote
	Jobs      []*models.Job
	Inventory []*models.InventoryItem
}

// ComputeStats is the one definition of every dashboard figure. The API's
// stats endpoint and the SDK's local fallback both call it.
func ComputeStats(c Collections, completed []string) models.DashboardStats {
	return models.DashboardStats{
		NewLeads:         count(c.Leads, IsNewLead),
		QuotesAwaiting:   count(c.Quotes, IsAwaitingFollowUp),
		JobsInProduction: count(c.Jobs, func(j *models.Job) bool { return IsInProgress(j, completed) }),
		LowStockAlerts:   count(c.Inventory, IsLowStock),
		PendingPayments:  count(c.Jobs, IsPaymentPending),
	}
}

// MergeStats prefers each field of server when present, otherwise fallback.
func MergeStats(server *models.DashboardStats, fallback models.DashboardStats) models.DashboardStats {
	if server == nil {
		return fallback
	}
	pick := func(s, f *int) *int {
		if s != nil {
			return s
		}
		return f
	}
	return models.DashboardStats{
		NewLeads:         pick(server.NewLeads, fallback.NewLeads),
		QuotesAwaiting:   pick(server.QuotesAwaiting, fallback.QuotesAwaiting),
		JobsInProduction: pick(server.JobsInProduction, fallback.JobsInProduction),
		LowStockAlerts:   pick(server.LowStockAlerts, fallback.LowStockAlerts),
		PendingPayments:  pick(server.PendingPayments, fallback.PendingPayments),
	}
}

func count[T any](items []T, pred func(T) bool) *int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return &n
}
