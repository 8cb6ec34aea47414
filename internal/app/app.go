package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "probuild/docs"
	"probuild/internal/cache"
	"probuild/internal/config"
	"probuild/internal/handlers"
	"probuild/internal/middleware"
	"probuild/internal/repositories"
	"probuild/internal/routes"
	"probuild/internal/services"
)

// App holds the assembled server and the background workers tied to it.
type App struct {
	cfg       *config.Config
	db        *sql.DB
	store     cache.Store
	router    *gin.Engine
	refresher *services.DashboardRefresher
}

// New wires repositories, services and handlers over an open database.
func New(cfg *config.Config, db *sql.DB, store cache.Store) *App {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// === Repositories ===
	clientRepo := repositories.NewClientRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	statusRepo := repositories.NewJobStatusRepository(db)
	depRepo := repositories.NewJobStatusDependencyRepository(db)
	columnRepo := repositories.NewKanbanColumnRepository(db)
	pipelineRepo := repositories.NewJobPipelineRepository(db)
	quoteRepo := repositories.NewQuoteRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	notifier := services.NewEmailService(services.EmailSettings{
		SMTPHost:      cfg.Email.SMTPHost,
		SMTPPort:      cfg.Email.SMTPPort,
		SMTPUser:      cfg.Email.SMTPUser,
		SMTPPassword:  cfg.Email.SMTPPassword,
		From:          cfg.Email.FromEmail,
		OfficeAddress: cfg.Email.OfficeAddress,
		DryRun:        cfg.Email.DryRun,
	})
	clientService := services.NewClientService(clientRepo)
	leadService := services.NewLeadService(leadRepo, jobRepo, clientRepo, notifier, cfg.Jobs.InitialStatus)
	jobService := services.NewJobService(jobRepo, statusRepo, depRepo, clientRepo, notifier)
	statusService := services.NewJobStatusService(statusRepo, depRepo, columnRepo)
	kanbanService := services.NewKanbanService(columnRepo, statusRepo, jobRepo)
	pipelineService := services.NewPipelineService(pipelineRepo)
	quoteService := services.NewQuoteService(quoteRepo, leadRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	userService := services.NewUserService(userRepo)
	dashboardService := services.NewDashboardService(leadRepo, quoteRepo, jobRepo, inventoryRepo, cfg.Dashboard.CompletedStatuses)

	// === Handlers ===
	h := routes.Handlers{
		JobStatuses: handlers.NewJobStatusHandler(statusService),
		Kanban:      handlers.NewKanbanColumnHandler(kanbanService),
		Pipelines:   handlers.NewJobPipelineHandler(pipelineService),
		Leads:       handlers.NewLeadHandler(leadService),
		Jobs:        handlers.NewJobHandler(jobService),
		Quotes:      handlers.NewQuoteHandler(quoteService),
		Clients:     handlers.NewClientHandler(clientService),
		Users:       handlers.NewUserHandler(userService),
		Inventory:   handlers.NewInventoryHandler(inventoryService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Export:      handlers.NewExportHandler(clientService, leadService),
	}

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.Server.AllowedOrigins))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	routes.SetupRoutes(router, h, store, cfg.Redis.CacheTTL, []byte(cfg.Auth.JWTSecret))

	return &App{
		cfg:       cfg,
		db:        db,
		store:     store,
		router:    router,
		refresher: services.NewDashboardRefresher(dashboardService, store, cfg.Redis.CacheTTL),
	}
}

func (a *App) Router() http.Handler { return a.router }

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured timeout.
func (a *App) Run(ctx context.Context) error {
	if err := a.refresher.Start(ctx, a.cfg.Dashboard.RefreshCron); err != nil {
		return err
	}
	defer a.refresher.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", a.cfg.Server.Port).Str("environment", a.cfg.Server.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// OpenStore returns a Redis-backed cache, or an in-process one when Redis
// is disabled.
func OpenStore(ctx context.Context, cfg *config.Config) (cache.Store, func() error, error) {
	if cfg.Redis.Disabled {
		log.Warn().Msg("redis disabled, using in-memory query cache")
		return cache.NewMemoryStore(), func() error { return nil }, nil
	}
	store, err := cache.NewRedisStore(ctx, cfg.Redis.URL, "probuild:")
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// Run opens the database and cache, applies migrate when set, and serves
// until ctx ends.
func Run(ctx context.Context, cfg *config.Config, migrate func(*sql.DB) error) error {
	db, err := repositories.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate != nil {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("close cache store")
		}
	}()

	return New(cfg, db, store).Run(ctx)
}
