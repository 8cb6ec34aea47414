package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"probuild/internal/models"
)

func intp(n int) *int { return &n }

func TestJobsInProgressFallback(t *testing.T) {
	jobs := []*models.Job{{Status: "manufacturing_posts"}, {Status: "completed"}}
	stats := ComputeStats(Collections{Jobs: jobs}, []string{"install_complete", "final_payment_pending", "completed"})
	assert.Equal(t, 1, *stats.JobsInProduction)
}

func TestComputeStats(t *testing.T) {
	c := Collections{
		Leads: []*models.Lead{
			{Stage: models.StageNew}, {Stage: "unheard_of"}, {Stage: models.StageQuoteSent},
		},
		Quotes: []*models.Quote{
			{Status: models.QuoteSent}, {Status: models.QuoteRevised}, {Status: models.QuoteApproved}, {Status: models.QuoteDraft},
		},
		Jobs: []*models.Job{
			{Status: "cutting", DepositAmount: 500, DepositPaid: false},
			{Status: "final_payment_pending", DepositAmount: 500, DepositPaid: true, TotalAmount: 4000, AmountPaid: 500},
			{Status: "completed", DepositAmount: 500, DepositPaid: true, TotalAmount: 4000, AmountPaid: 4000},
		},
		Inventory: []*models.InventoryItem{
			{Quantity: 3, ReorderLevel: 5}, {Quantity: 5, ReorderLevel: 5}, {Quantity: 40, ReorderLevel: 5},
		},
	}
	stats := ComputeStats(c, DefaultCompletedStatuses)
	assert.Equal(t, 2, *stats.NewLeads)
	assert.Equal(t, 2, *stats.QuotesAwaiting)
	assert.Equal(t, 1, *stats.JobsInProduction)
	assert.Equal(t, 2, *stats.LowStockAlerts)
	assert.Equal(t, 2, *stats.PendingPayments)
}

func TestMergeStats(t *testing.T) {
	fallback := models.DashboardStats{
		NewLeads: intp(3), QuotesAwaiting: intp(4), JobsInProduction: intp(5), LowStockAlerts: intp(6), PendingPayments: intp(7),
	}
	assert.Equal(t, fallback, MergeStats(nil, fallback))

	server := &models.DashboardStats{NewLeads: intp(0), JobsInProduction: intp(9)}
	got := MergeStats(server, fallback)
	assert.Equal(t, 0, *got.NewLeads, "a server zero is a real value")
	assert.Equal(t, 4, *got.QuotesAwaiting)
	assert.Equal(t, 9, *got.JobsInProduction)
	assert.Equal(t, 7, *got.PendingPayments)
}

func TestProgress(t *testing.T) {
	statuses := []*models.JobStatus{
		{Key: "install", Position: 3, IsActive: true},
		{Key: "new_jobs", Position: 1, IsActive: true},
		{Key: "archived", Position: 2, IsActive: false},
		{Key: "cutting", Position: 2, IsActive: true},
		{Key: "completed", Position: 4, IsActive: true},
	}
	assert.Equal(t, 25, Progress(statuses, "new_jobs"))
	assert.Equal(t, 50, Progress(statuses, "cutting"))
	assert.Equal(t, 100, Progress(statuses, "completed"))
	assert.Equal(t, 0, Progress(statuses, "archived"))
	assert.Equal(t, 0, Progress(nil, "cutting"))
}
