package services

import (
	"context"

	"probuild/internal/models"
	"probuild/internal/repositories"
	"probuild/internal/workflow"
)

type DashboardService struct {
	Leads     repositories.LeadRepository
	Quotes    repositories.QuoteRepository
	Jobs      repositories.JobRepository
	Inventory repositories.InventoryRepository
	Completed []string
}

func NewDashboardService(leads repositories.LeadRepository, quotes repositories.QuoteRepository, jobs repositories.JobRepository, inventory repositories.InventoryRepository, completed []string) *DashboardService {
	if len(completed) == 0 {
		completed = workflow.DefaultCompletedStatuses
	}
	return &DashboardService{Leads: leads, Quotes: quotes, Jobs: jobs, Inventory: inventory, Completed: completed}
}

// Stats loads the four collections and derives every figure from them.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	var c workflow.Collections
	var err error
	if c.Leads, err = s.Leads.List(ctx, repositories.LeadFilter{}); err != nil {
		return models.DashboardStats{}, err
	}
	if c.Quotes, err = s.Quotes.List(ctx, ""); err != nil {
		return models.DashboardStats{}, err
	}
	if c.Jobs, err = s.Jobs.List(ctx, repositories.JobFilter{}); err != nil {
		return models.DashboardStats{}, err
	}
	if c.Inventory, err = s.Inventory.List(ctx, false); err != nil {
		return models.DashboardStats{}, err
	}
	return workflow.ComputeStats(c, s.Completed), nil
}
