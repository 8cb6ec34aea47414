package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"probuild/internal/models"
	"probuild/internal/workflow"
)

// StatusInput creates or updates a job status. Key is ignored on update.
type StatusInput struct {
	Key         string  `json:"key,omitempty"`
	Label       string  `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type StatusDeletion struct {
	Key             string `json:"key"`
	JobsOnStatus    int    `json:"jobsOnStatus"`
	RepairedColumns int    `json:"repairedColumns"`
	Warning         string `json:"warning,omitempty"`
}

type StatusChange struct {
	Job      *models.JobView         `json:"job"`
	Change   *models.JobStatusChange `json:"change"`
	Warnings []string                `json:"warnings"`
}

type ColumnInput struct {
	Title         string   `json:"title"`
	Statuses      []string `json:"statuses"`
	DefaultStatus string   `json:"defaultStatus"`
	Color         string   `json:"color"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type PipelineInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type StageInput struct {
	Name           *string                `json:"name,omitempty"`
	Icon           *string                `json:"icon,omitempty"`
	CompletionType *models.CompletionType `json:"completionType,omitempty"`
	IsActive       *bool                  `json:"isActive,omitempty"`
}

type idsBody struct {
	IDs []int64 `json:"ids"`
}

const (
	statusesPath     = "/api/job-statuses"
	dependenciesPath = "/api/job-status-dependencies"
	columnsPath      = "/api/kanban-columns"
	pipelinesPath    = "/api/job-pipelines"
	leadsPath        = "/api/leads"
	leadBoardPath    = "/api/leads/board"
	jobsPath         = "/api/jobs"
	quotesPath       = "/api/quotes"
	inventoryPath    = "/api/inventory"
	dashboardPath    = "/api/dashboard/stats"
)

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// === Job statuses ===

func (c *Client) Statuses(ctx context.Context) ([]*models.JobStatus, error) {
	var out []*models.JobStatus
	err := c.get(ctx, statusesPath, nil, &out)
	return out, err
}

func (c *Client) CreateStatus(ctx context.Context, in StatusInput) (*models.JobStatus, error) {
	var out models.JobStatus
	err := c.mutate(ctx, CreateStatus, nil, http.MethodPost, statusesPath, in, &out)
	return &out, err
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, in StatusInput) (*models.JobStatus, error) {
	in.Key = ""
	var out models.JobStatus
	err := c.mutate(ctx, UpdateStatus, idParam(id), http.MethodPatch, idPath(statusesPath, id), in, &out)
	return &out, err
}

func (c *Client) DeleteStatus(ctx context.Context, id int64) (*StatusDeletion, error) {
	var out StatusDeletion
	err := c.mutate(ctx, DeleteStatus, idParam(id), http.MethodDelete, idPath(statusesPath, id), nil, &out)
	return &out, err
}

// ReorderStatuses sends the complete ordered id list.
func (c *Client) ReorderStatuses(ctx context.Context, ids []int64) error {
	return c.mutate(ctx, ReorderStatuses, nil, http.MethodPost, statusesPath+"/reorder", idsBody{IDs: ids}, nil)
}

// === Dependencies ===

func (c *Client) Dependencies(ctx context.Context, statusKey string) ([]models.JobStatusDependency, error) {
	var out []models.JobStatusDependency
	err := c.get(ctx, idPath(dependenciesPath, statusKey), nil, &out)
	return out, err
}

// SaveDependencies replaces every prerequisite of statusKey; an empty deps
// clears them.
func (c *Client) SaveDependencies(ctx context.Context, statusKey string, deps []models.JobStatusDependency) ([]models.JobStatusDependency, error) {
	if deps == nil {
		deps = []models.JobStatusDependency{}
	}
	body := map[string]any{"dependencies": deps}
	var out []models.JobStatusDependency
	err := c.mutate(ctx, SaveDependencies, nil, http.MethodPut, idPath(dependenciesPath, statusKey), body, &out)
	return out, err
}

func (c *Client) AvailablePrerequisites(ctx context.Context, statusKey string, selected []string) ([]*models.JobStatus, error) {
	var q url.Values
	if selected != nil {
		q = url.Values{"selected": {strings.Join(selected, ",")}}
	}
	var out []*models.JobStatus
	err := c.get(ctx, idPath(dependenciesPath, statusKey, "available"), q, &out)
	return out, err
}

// === Kanban columns ===

func (c *Client) Columns(ctx context.Context) ([]*models.KanbanColumn, error) {
	var out []*models.KanbanColumn
	err := c.get(ctx, columnsPath, nil, &out)
	return out, err
}

func (c *Client) CreateColumn(ctx context.Context, in ColumnInput) (*models.KanbanColumn, error) {
	var out models.KanbanColumn
	err := c.mutate(ctx, CreateColumn, nil, http.MethodPost, columnsPath, in, &out)
	return &out, err
}

func (c *Client) UpdateColumn(ctx context.Context, id int64, in ColumnInput) (*models.KanbanColumn, error) {
	var out models.KanbanColumn
	err := c.mutate(ctx, UpdateColumn, idParam(id), http.MethodPatch, idPath(columnsPath, id), in, &out)
	return &out, err
}

func (c *Client) DeleteColumn(ctx context.Context, id int64) error {
	return c.mutate(ctx, DeleteColumn, idParam(id), http.MethodDelete, idPath(columnsPath, id), nil, nil)
}

func (c *Client) ReorderColumns(ctx context.Context, ids []int64) error {
	return c.mutate(ctx, ReorderColumns, nil, http.MethodPost, columnsPath+"/reorder", idsBody{IDs: ids}, nil)
}

func (c *Client) Board(ctx context.Context) (*models.KanbanBoard, error) {
	var out models.KanbanBoard
	err := c.get(ctx, columnsPath+"/board", nil, &out)
	return &out, err
}

// === Pipelines ===

func (c *Client) Pipelines(ctx context.Context) ([]*models.JobPipeline, error) {
	var out []*models.JobPipeline
	err := c.get(ctx, pipelinesPath, nil, &out)
	return out, err
}

func (c *Client) CreatePipeline(ctx context.Context, in PipelineInput) (*models.JobPipeline, error) {
	var out models.JobPipeline
	err := c.mutate(ctx, CreatePipeline, nil, http.MethodPost, pipelinesPath, in, &out)
	return &out, err
}

func (c *Client) UpdatePipeline(ctx context.Context, id int64, in PipelineInput) (*models.JobPipeline, error) {
	var out models.JobPipeline
	err := c.mutate(ctx, UpdatePipeline, idParam(id), http.MethodPatch, idPath(pipelinesPath, id), in, &out)
	return &out, err
}

func (c *Client) DeletePipeline(ctx context.Context, id int64) error {
	return c.mutate(ctx, DeletePipeline, idParam(id), http.MethodDelete, idPath(pipelinesPath, id), nil, nil)
}

func stagesPath(pipelineID int64) string {
	return idPath(pipelinesPath, pipelineID, "stages")
}

// Stages are fetched per pipeline, only when asked for.
func (c *Client) Stages(ctx context.Context, pipelineID int64) ([]*models.JobPipelineStage, error) {
	var out []*models.JobPipelineStage
	err := c.get(ctx, stagesPath(pipelineID), nil, &out)
	return out, err
}

func (c *Client) CreateStage(ctx context.Context, pipelineID int64, in StageInput) (*models.JobPipelineStage, error) {
	var out models.JobPipelineStage
	err := c.mutate(ctx, CreateStage, idParam(pipelineID), http.MethodPost, stagesPath(pipelineID), in, &out)
	return &out, err
}

func (c *Client) UpdateStage(ctx context.Context, pipelineID, stageID int64, in StageInput) (*models.JobPipelineStage, error) {
	var out models.JobPipelineStage
	path := idPath(stagesPath(pipelineID), stageID)
	err := c.mutate(ctx, UpdateStage, idParam(pipelineID), http.MethodPatch, path, in, &out)
	return &out, err
}

func (c *Client) DeleteStage(ctx context.Context, pipelineID, stageID int64) error {
	path := idPath(stagesPath(pipelineID), stageID)
	return c.mutate(ctx, DeleteStage, idParam(pipelineID), http.MethodDelete, path, nil, nil)
}

// MoveStage swaps the stage at index with its neighbour in dir and sends the
// full new order. The cached stage list shows the new order at once and is
// restored if the server rejects it.
func (c *Client) MoveStage(ctx context.Context, pipelineID int64, index int, dir workflow.Direction) error {
	stages, err := c.Stages(ctx, pipelineID)
	if err != nil {
		return err
	}
	moved := workflow.MoveAdjacent(stages, index, dir)
	ids := make([]int64, len(moved))
	for i, st := range moved {
		ids[i] = st.ID
	}
	edit := func([]*models.JobPipelineStage) []*models.JobPipelineStage { return moved }
	return Optimistic(c.Cache, Key(stagesPath(pipelineID), nil), edit, func() error {
		return c.mutate(ctx, ReorderStages, idParam(pipelineID), http.MethodPost, stagesPath(pipelineID)+"/reorder", idsBody{IDs: ids}, nil)
	})
}

// === Leads ===

func (c *Client) Leads(ctx context.Context, bucket models.LeadStatus) ([]*models.LeadView, error) {
	var q url.Values
	if bucket != "" {
		q = url.Values{"status": {string(bucket)}}
	}
	var out []*models.LeadView
	err := c.get(ctx, leadsPath, q, &out)
	return out, err
}

func (c *Client) LeadBoard(ctx context.Context) ([]models.LeadBoardColumn, error) {
	var out []models.LeadBoardColumn
	err := c.get(ctx, leadBoardPath, nil, &out)
	return out, err
}

func (c *Client) CreateLead(ctx context.Context, lead *models.Lead) (*models.LeadView, error) {
	var out models.LeadView
	err := c.mutate(ctx, CreateLead, nil, http.MethodPost, leadsPath, lead, &out)
	return &out, err
}

func (c *Client) SetLeadStage(ctx context.Context, id int64, stage models.LeadStage) (*models.LeadView, error) {
	var out models.LeadView
	body := map[string]string{"stage": string(stage)}
	err := c.mutate(ctx, UpdateLead, idParam(id), http.MethodPut, idPath(leadsPath, id, "stage"), body, &out)
	return &out, err
}

// MoveLead drops a lead into another board bucket. The cached board moves
// the card immediately and is restored if the server rejects the move.
func (c *Client) MoveLead(ctx context.Context, id int64, target models.LeadStatus) (*models.LeadView, error) {
	var out models.LeadView
	err := Optimistic(c.Cache, Key(leadBoardPath, nil), func(board []models.LeadBoardColumn) []models.LeadBoardColumn {
		return moveCard(board, id, target)
	}, func() error {
		body := map[string]string{"status": string(target)}
		return c.mutate(ctx, MoveLead, idParam(id), http.MethodPost, idPath(leadsPath, id, "move"), body, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func moveCard(board []models.LeadBoardColumn, id int64, target models.LeadStatus) []models.LeadBoardColumn {
	from, at := -1, -1
	for i := range board {
		for j, l := range board[i].Leads {
			if l.Lead != nil && l.ID == id {
				from, at = i, j
			}
		}
	}
	if from < 0 {
		return board
	}
	card := board[from].Leads[at]
	stage, ok := workflow.MoveLead(card.Stage, target)
	if !ok {
		return board
	}
	card.Stage = stage
	card.Status = target
	board[from].Leads = append(board[from].Leads[:at:at], board[from].Leads[at+1:]...)
	for i := range board {
		if board[i].Status == target {
			board[i].Leads = append(board[i].Leads, card)
			return board
		}
	}
	return append(board, models.LeadBoardColumn{Status: target, Leads: []*models.LeadView{card}})
}

func (c *Client) ConvertLead(ctx context.Context, id int64) (*models.Job, error) {
	var out models.Job
	err := c.mutate(ctx, ConvertLead, idParam(id), http.MethodPost, idPath(leadsPath, id, "convert"), nil, &out)
	return &out, err
}

// === Jobs ===

func (c *Client) Jobs(ctx context.Context) ([]*models.JobView, error) {
	var out []*models.JobView
	err := c.get(ctx, jobsPath, nil, &out)
	return out, err
}

func (c *Client) ChangeJobStatus(ctx context.Context, id int64, status string) (*StatusChange, error) {
	var out StatusChange
	body := map[string]string{"status": status}
	err := c.mutate(ctx, ChangeJobStatus, idParam(id), http.MethodPost, idPath(jobsPath, id, "status"), body, &out)
	return &out, err
}

// === Quotes, inventory ===

func (c *Client) Quotes(ctx context.Context) ([]*models.Quote, error) {
	var out []*models.Quote
	err := c.get(ctx, quotesPath, nil, &out)
	return out, err
}

func (c *Client) SetQuoteStatus(ctx context.Context, id int64, status models.QuoteStatus) (*models.Quote, error) {
	var out models.Quote
	body := map[string]any{"status": status}
	err := c.mutate(ctx, UpdateQuote, idParam(id), http.MethodPatch, idPath(quotesPath, id), body, &out)
	return &out, err
}

func (c *Client) Inventory(ctx context.Context) ([]*models.InventoryItem, error) {
	var out []*models.InventoryItem
	err := c.get(ctx, inventoryPath, nil, &out)
	return out, err
}
