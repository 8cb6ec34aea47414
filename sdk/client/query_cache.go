package client

import (
	"context"
	"net/url"
	"strings"

	"probuild/internal/cache"
)

// Mutation names a write for the invalidation table.
type Mutation string

const (
	CreateStatus     Mutation = "createStatus"
	UpdateStatus     Mutation = "updateStatus"
	DeleteStatus     Mutation = "deleteStatus"
	ReorderStatuses  Mutation = "reorderStatuses"
	SaveDependencies Mutation = "saveDependencies"
	CreateColumn     Mutation = "createColumn"
	UpdateColumn     Mutation = "updateColumn"
	DeleteColumn     Mutation = "deleteColumn"
	ReorderColumns   Mutation = "reorderColumns"
	CreatePipeline   Mutation = "createPipeline"
	UpdatePipeline   Mutation = "updatePipeline"
	DeletePipeline   Mutation = "deletePipeline"
	CreateStage      Mutation = "createStage"
	UpdateStage      Mutation = "updateStage"
	DeleteStage      Mutation = "deleteStage"
	ReorderStages    Mutation = "reorderStages"
	CreateLead       Mutation = "createLead"
	UpdateLead       Mutation = "updateLead"
	MoveLead         Mutation = "moveLead"
	ConvertLead      Mutation = "convertLead"
	ChangeJobStatus  Mutation = "changeJobStatus"
	UpdateQuote      Mutation = "updateQuote"
)

// invalidations lists, per mutation, the query prefixes it makes stale.
var invalidations = map[Mutation][]string{
	CreateStatus:     {"/api/job-statuses", "/api/job-status-dependencies", "/api/jobs"},
	UpdateStatus:     {"/api/job-statuses", "/api/job-status-dependencies", "/api/jobs"},
	DeleteStatus:     {"/api/job-statuses", "/api/job-status-dependencies", "/api/kanban-columns", "/api/jobs", "/api/dashboard"},
	ReorderStatuses:  {"/api/job-statuses", "/api/job-status-dependencies", "/api/jobs"},
	SaveDependencies: {"/api/job-status-dependencies"},
	CreateColumn:     {"/api/kanban-columns"},
	UpdateColumn:     {"/api/kanban-columns"},
	DeleteColumn:     {"/api/kanban-columns"},
	ReorderColumns:   {"/api/kanban-columns"},
	CreatePipeline:   {"/api/job-pipelines"},
	UpdatePipeline:   {"/api/job-pipelines"},
	DeletePipeline:   {"/api/job-pipelines"},
	CreateStage:      {"/api/job-pipelines/:id/stages"},
	UpdateStage:      {"/api/job-pipelines/:id/stages"},
	DeleteStage:      {"/api/job-pipelines/:id/stages"},
	ReorderStages:    {"/api/job-pipelines/:id/stages"},
	CreateLead:       {"/api/leads", "/api/dashboard"},
	UpdateLead:       {"/api/leads", "/api/dashboard"},
	MoveLead:         {"/api/leads", "/api/dashboard"},
	ConvertLead:      {"/api/leads", "/api/jobs", "/api/kanban-columns/board", "/api/dashboard"},
	ChangeJobStatus:  {"/api/jobs", "/api/kanban-columns/board", "/api/dashboard"},
	UpdateQuote:      {"/api/quotes", "/api/leads", "/api/dashboard"},
}

// Key identifies a query; parameters are sorted so equal queries collide.
func Key(path string, query url.Values) string {
	return cache.Key(path, query)
}

// QueryCache holds raw response bodies. Entries live until a mutation
// invalidates them.
type QueryCache struct {
	store *cache.MemoryStore
}

func NewQueryCache() *QueryCache {
	return &QueryCache{store: cache.NewMemoryStore()}
}

func (q *QueryCache) Get(key string) ([]byte, bool) {
	raw, ok, _ := q.store.Get(context.Background(), key)
	return raw, ok
}

func (q *QueryCache) Set(key string, raw []byte) {
	_ = q.store.Set(context.Background(), key, raw, 0)
}

func (q *QueryCache) Len() int { return q.store.Len() }

// Invalidate drops every query under the prefixes listed for m.
func (q *QueryCache) Invalidate(m Mutation, params map[string]string) {
	for _, p := range invalidations[m] {
		_ = q.store.DeletePrefix(context.Background(), expand(p, params))
	}
}

func expand(prefix string, params map[string]string) string {
	if !strings.Contains(prefix, ":") {
		return prefix
	}
	parts := strings.Split(prefix, "/")
	for i, part := range parts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			parts[i] = params[name]
		}
	}
	return strings.Join(parts, "/")
}
