package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"probuild/internal/authz"
	"probuild/internal/cache"
	"probuild/internal/handlers"
	"probuild/internal/middleware"
)

type Handlers struct {
	JobStatuses *handlers.JobStatusHandler
	Kanban      *handlers.KanbanColumnHandler
	Pipelines   *handlers.JobPipelineHandler
	Leads       *handlers.LeadHandler
	Jobs        *handlers.JobHandler
	Quotes      *handlers.QuoteHandler
	Clients     *handlers.ClientHandler
	Users       *handlers.UserHandler
	Inventory   *handlers.InventoryHandler
	Dashboard   *handlers.DashboardHandler
	Export      *handlers.ExportHandler
}

// Cached query prefixes. Each mutation below names the ones it makes stale.
const (
	pStatuses     = "/api/job-statuses"
	pDependencies = "/api/job-status-dependencies"
	pColumns      = "/api/kanban-columns"
	pBoard        = "/api/kanban-columns/board"
	pPipelines    = "/api/job-pipelines"
	pStages       = "/api/job-pipelines/:id/stages"
	pLeads        = "/api/leads"
	pJobs         = "/api/jobs"
	pQuotes       = "/api/quotes"
	pClients      = "/api/clients"
	pInventory    = "/api/inventory"
	pDashboard    = "/api/dashboard"
)

func SetupRoutes(r *gin.Engine, h Handlers, store cache.Store, ttl time.Duration, jwtSecret []byte) *gin.Engine {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	inv := func(prefixes ...string) gin.HandlerFunc { return cache.Invalidate(store, prefixes...) }
	config := middleware.RequireRoles(authz.ConfigRoles...)
	jobRoles := middleware.RequireRoles(authz.JobRoles...)

	api := r.Group("/api", middleware.AuthMiddleware(jwtSecret), middleware.ReadOnlyGuard(), cache.Responses(store, ttl))

	statuses := api.Group("/job-statuses")
	{
		statuses.GET("", h.JobStatuses.List)
		statuses.POST("", config, inv(pStatuses, pDependencies, pJobs), h.JobStatuses.Create)
		statuses.POST("/reorder", config, inv(pStatuses, pDependencies, pJobs), h.JobStatuses.Reorder)
		statuses.PATCH("/:id", config, inv(pStatuses, pDependencies, pJobs), h.JobStatuses.Update)
		statuses.DELETE("/:id", config, inv(pStatuses, pDependencies, pColumns, pJobs, pDashboard), h.JobStatuses.Delete)
	}

	deps := api.Group("/job-status-dependencies")
	{
		deps.GET("", h.JobStatuses.ListDependencies)
		deps.GET("/:statusKey", h.JobStatuses.GetDependencies)
		deps.GET("/:statusKey/available", h.JobStatuses.Available)
		deps.PUT("/:statusKey", config, inv(pDependencies), h.JobStatuses.SaveDependencies)
	}

	columns := api.Group("/kanban-columns")
	{
		columns.GET("", h.Kanban.List)
		columns.GET("/board", h.Kanban.Board)
		columns.POST("", config, inv(pColumns), h.Kanban.Create)
		columns.POST("/reorder", config, inv(pColumns), h.Kanban.Reorder)
		columns.PATCH("/:id", config, inv(pColumns), h.Kanban.Update)
		columns.DELETE("/:id", config, inv(pColumns), h.Kanban.Delete)
	}

	pipelines := api.Group("/job-pipelines")
	{
		pipelines.GET("", h.Pipelines.List)
		pipelines.GET("/:id", h.Pipelines.Get)
		pipelines.POST("", config, inv(pPipelines), h.Pipelines.Create)
		pipelines.PATCH("/:id", config, inv(pPipelines), h.Pipelines.Update)
		pipelines.DELETE("/:id", config, inv(pPipelines), h.Pipelines.Delete)

		pipelines.GET("/:id/stages", h.Pipelines.ListStages)
		pipelines.POST("/:id/stages", config, inv(pStages), h.Pipelines.CreateStage)
		pipelines.POST("/:id/stages/reorder", config, inv(pStages), h.Pipelines.ReorderStages)
		pipelines.PATCH("/:id/stages/:stageId", config, inv(pStages), h.Pipelines.UpdateStage)
		pipelines.DELETE("/:id/stages/:stageId", config, inv(pStages), h.Pipelines.DeleteStage)
	}

	leads := api.Group("/leads")
	{
		leads.GET("", h.Leads.List)
		leads.GET("/board", h.Leads.Board)
		leads.GET("/:id", h.Leads.GetByID)
		leads.POST("", inv(pLeads, pDashboard), h.Leads.Create)
		leads.PATCH("/:id", inv(pLeads, pDashboard), h.Leads.Update)
		leads.DELETE("/:id", inv(pLeads, pDashboard), h.Leads.Delete)
		leads.PUT("/:id/stage", inv(pLeads, pDashboard), h.Leads.SetStage)
		leads.POST("/:id/move", inv(pLeads, pDashboard), h.Leads.Move)
		leads.POST("/:id/convert", inv(pLeads, pJobs, pBoard, pDashboard), h.Leads.Convert)
	}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.Jobs.List)
		jobs.GET("/:id", h.Jobs.GetByID)
		jobs.GET("/:id/history", h.Jobs.History)
		jobs.PATCH("/:id", jobRoles, inv(pJobs, pBoard, pDashboard), h.Jobs.Update)
		jobs.POST("/:id/status", jobRoles, inv(pJobs, pBoard, pDashboard), h.Jobs.ChangeStatus)
	}

	quotes := api.Group("/quotes")
	{
		quotes.GET("", h.Quotes.List)
		quotes.GET("/:id", h.Quotes.GetByID)
		quotes.POST("", inv(pQuotes, pDashboard), h.Quotes.Create)
		quotes.PATCH("/:id", inv(pQuotes, pLeads, pDashboard), h.Quotes.Update)
	}

	clients := api.Group("/clients")
	{
		clients.GET("", h.Clients.List)
		clients.GET("/:id", h.Clients.GetByID)
		clients.POST("", inv(pClients), h.Clients.Create)
		clients.PATCH("/:id", inv(pClients, pLeads, pJobs), h.Clients.Update)
		clients.DELETE("/:id", inv(pClients, pLeads, pJobs), h.Clients.Delete)
	}

	users := api.Group("/users")
	{
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.GetByID)
	}

	inventory := api.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.POST("", inv(pInventory, pDashboard), h.Inventory.Create)
		inventory.PATCH("/:id", inv(pInventory, pDashboard), h.Inventory.Update)
	}

	api.GET("/dashboard/stats", h.Dashboard.Stats)

	export := api.Group("/export")
	{
		export.GET("/clients", h.Export.Clients)
		export.GET("/leads", h.Export.Leads)
	}

	return r
}
