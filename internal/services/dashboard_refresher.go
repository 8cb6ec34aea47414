package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"probuild/internal/cache"
)

// DashboardStatsPath is the endpoint whose cached response the refresher warms.
const DashboardStatsPath = "/api/dashboard/stats"

// DashboardRefresher recomputes the dashboard on a cron schedule and stores
// the response body the stats endpoint would produce.
type DashboardRefresher struct {
	svc   *DashboardService
	store cache.Store
	ttl   time.Duration
	cron  *cron.Cron
}

func NewDashboardRefresher(svc *DashboardService, store cache.Store, ttl time.Duration) *DashboardRefresher {
	return &DashboardRefresher{svc: svc, store: store, ttl: ttl, cron: cron.New()}
}

// Start schedules the refresh and runs it once immediately.
func (r *DashboardRefresher) Start(ctx context.Context, schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("dashboard refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid dashboard schedule %q: %w", schedule, err)
	}
	r.cron.Start()
	log.Info().Str("schedule", schedule).Msg("dashboard refresher started")
	go func() {
		if err := r.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("initial dashboard refresh failed")
		}
	}()
	return nil
}

// Stop waits for a running refresh to finish.
func (r *DashboardRefresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *DashboardRefresher) Refresh(ctx context.Context) error {
	stats, err := r.svc.Stats(ctx)
	if err != nil {
		return err
	}
	body, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, cache.Key(DashboardStatsPath, nil), body, r.ttl)
}
