package client

import (
	"context"

	"probuild/internal/models"
	"probuild/internal/workflow"
)

// DashboardStats prefers the server's figures. Fields the server leaves
// null, or all of them when the stats request fails, are computed locally
// from the list endpoints with the same predicates the server uses.
func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var server *models.DashboardStats
	var s models.DashboardStats
	if err := c.get(ctx, dashboardPath, nil, &s); err == nil {
		if complete(s) {
			return s, nil
		}
		server = &s
	}

	fallback, err := c.localStats(ctx)
	if err != nil {
		if server != nil {
			return *server, nil
		}
		return models.DashboardStats{}, err
	}
	return workflow.MergeStats(server, fallback), nil
}

func complete(s models.DashboardStats) bool {
	return s.NewLeads != nil && s.QuotesAwaiting != nil && s.JobsInProduction != nil &&
		s.LowStockAlerts != nil && s.PendingPayments != nil
}

func (c *Client) localStats(ctx context.Context) (models.DashboardStats, error) {
	leads, err := c.Leads(ctx, "")
	if err != nil {
		return models.DashboardStats{}, err
	}
	quotes, err := c.Quotes(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	jobs, err := c.Jobs(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	inventory, err := c.Inventory(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	col := workflow.Collections{Quotes: quotes, Inventory: inventory}
	for _, l := range leads {
		if l.Lead != nil {
			col.Leads = append(col.Leads, l.Lead)
		}
	}
	for _, j := range jobs {
		if j.Job != nil {
			col.Jobs = append(col.Jobs, j.Job)
		}
	}
	completed := c.CompletedStatuses
	if len(completed) == 0 {
		completed = workflow.DefaultCompletedStatuses
	}
	return workflow.ComputeStats(col, completed), nil
}
