package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"probuild/internal/models"
	"probuild/internal/repositories"
)

type fakeStatuses struct {
	items  []*models.JobStatus
	jobs   map[string]int
	nextID int64

	deletedWith []*models.KanbanColumn
}

func newFakeStatuses(keys ...string) *fakeStatuses {
	f := &fakeStatuses{jobs: map[string]int{}}
	for _, k := range keys {
		f.nextID++
		f.items = append(f.items, &models.JobStatus{ID: f.nextID, Key: k, Label: k, IsActive: true, Position: int(f.nextID)})
	}
	return f
}

func (f *fakeStatuses) List(context.Context) ([]*models.JobStatus, error) {
	out := slices.Clone(f.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStatuses) GetByID(_ context.Context, id int64) (*models.JobStatus, error) {
	for _, s := range f.items {
		if s.ID == id {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStatuses) GetByKey(_ context.Context, key string) (*models.JobStatus, error) {
	for _, s := range f.items {
		if s.Key == key {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStatuses) Create(_ context.Context, s *models.JobStatus) error {
	f.nextID++
	s.ID = f.nextID
	s.Position = len(f.items) + 1
	c := *s
	f.items = append(f.items, &c)
	return nil
}

func (f *fakeStatuses) Update(_ context.Context, s *models.JobStatus) error {
	for i, it := range f.items {
		if it.ID == s.ID {
			c := *s
			f.items[i] = &c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStatuses) Delete(_ context.Context, s *models.JobStatus, repaired []*models.KanbanColumn) error {
	f.deletedWith = repaired
	for i, it := range f.items {
		if it.ID == s.ID {
			f.items = slices.Delete(f.items, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStatuses) Reorder(_ context.Context, ids []int64) error {
	for pos, id := range ids {
		for _, it := range f.items {
			if it.ID == id {
				it.Position = pos + 1
			}
		}
	}
	return nil
}

func (f *fakeStatuses) CountJobs(_ context.Context, key string) (int, error) {
	return f.jobs[key], nil
}

type fakeDeps struct {
	items []models.JobStatusDependency
}

func (f *fakeDeps) List(context.Context) ([]models.JobStatusDependency, error) {
	return slices.Clone(f.items), nil
}

func (f *fakeDeps) ListForStatus(_ context.Context, key string) ([]models.JobStatusDependency, error) {
	out := []models.JobStatusDependency{}
	for _, d := range f.items {
		if d.StatusKey == key {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeps) Replace(_ context.Context, key string, deps []models.JobStatusDependency) error {
	kept := f.items[:0:0]
	for _, d := range f.items {
		if d.StatusKey != key {
			kept = append(kept, d)
		}
	}
	f.items = append(kept, deps...)
	return nil
}

type fakeColumns struct {
	items  []*models.KanbanColumn
	nextID int64
}

func (f *fakeColumns) List(context.Context) ([]*models.KanbanColumn, error) {
	return slices.Clone(f.items), nil
}

func (f *fakeColumns) GetByID(_ context.Context, id int64) (*models.KanbanColumn, error) {
	for _, c := range f.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeColumns) Create(_ context.Context, c *models.KanbanColumn) error {
	f.nextID++
	c.ID = f.nextID
	c.Position = len(f.items) + 1
	cp := *c
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeColumns) Update(_ context.Context, c *models.KanbanColumn) error {
	for i, it := range f.items {
		if it.ID == c.ID {
			cp := *c
			f.items[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeColumns) Delete(_ context.Context, id int64) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeColumns) Reorder(_ context.Context, ids []int64) error {
	byID := map[int64]*models.KanbanColumn{}
	for _, c := range f.items {
		byID[c.ID] = c
	}
	f.items = f.items[:0]
	for i, id := range ids {
		byID[id].Position = i + 1
		f.items = append(f.items, byID[id])
	}
	return nil
}

type fakeJobs struct {
	items   []*models.Job
	history []*models.JobStatusChange
	nextID  int64

	failCreate error
}

func (f *fakeJobs) Create(_ context.Context, j *models.Job) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	j.ID = f.nextID
	j.JobNumber = fmt.Sprintf("JOB-%05d", f.nextID)
	j.CreatedAt = time.Now()
	cp := *j
	f.items = append(f.items, &cp)
	f.history = append(f.history, &models.JobStatusChange{JobID: j.ID, ToStatus: j.Status})
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (*models.Job, error) {
	for _, j := range f.items {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeJobs) GetByLeadID(_ context.Context, leadID int64) (*models.Job, error) {
	for _, j := range f.items {
		if j.LeadID != nil && *j.LeadID == leadID {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeJobs) List(_ context.Context, filter repositories.JobFilter) ([]*models.Job, error) {
	out := []*models.Job{}
	for _, j := range f.items {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeJobs) Update(_ context.Context, j *models.Job) error {
	for i, it := range f.items {
		if it.ID == j.ID {
			cp := *j
			f.items[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeJobs) ChangeStatus(_ context.Context, c *models.JobStatusChange) error {
	for _, it := range f.items {
		if it.ID == c.JobID {
			it.Status = c.ToStatus
			c.ID = int64(len(f.history) + 1)
			c.ChangedAt = time.Now()
			f.history = append(f.history, c)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeJobs) History(_ context.Context, jobID int64) ([]*models.JobStatusChange, error) {
	out := []*models.JobStatusChange{}
	for _, h := range f.history {
		if h.JobID == jobID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeJobs) Delete(_ context.Context, id int64) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeLeads struct {
	items  []*models.Lead
	nextID int64

	failStage error
}

func (f *fakeLeads) add(stage models.LeadStage, clientID *int64) *models.Lead {
	f.nextID++
	l := &models.Lead{ID: f.nextID, Stage: stage, ClientID: clientID, SiteAddress: fmt.Sprintf("%d Fence Rd", f.nextID)}
	f.items = append(f.items, l)
	return l
}

func (f *fakeLeads) Create(_ context.Context, l *models.Lead) error {
	f.nextID++
	l.ID = f.nextID
	cp := *l
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeLeads) Update(_ context.Context, l *models.Lead) error {
	for i, it := range f.items {
		if it.ID == l.ID {
			cp := *l
			f.items[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeLeads) UpdateStage(_ context.Context, id int64, stage models.LeadStage) error {
	if f.failStage != nil {
		return f.failStage
	}
	for _, it := range f.items {
		if it.ID == id {
			it.Stage = stage
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeLeads) GetByID(_ context.Context, id int64) (*models.Lead, error) {
	for _, it := range f.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLeads) Delete(_ context.Context, id int64) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeLeads) List(_ context.Context, filter repositories.LeadFilter) ([]*models.Lead, error) {
	out := []*models.Lead{}
	for _, it := range f.items {
		if len(filter.Stages) > 0 && !slices.Contains(filter.Stages, it.Stage) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

type fakeClients struct {
	items map[int64]*models.Client
}

func newFakeClients(cs ...*models.Client) *fakeClients {
	f := &fakeClients{items: map[int64]*models.Client{}}
	for _, c := range cs {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c *models.Client) error {
	c.ID = int64(len(f.items) + 1)
	f.items[c.ID] = c
	return nil
}

func (f *fakeClients) Update(_ context.Context, c *models.Client) error {
	if _, ok := f.items[c.ID]; !ok {
		return sql.ErrNoRows
	}
	f.items[c.ID] = c
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id int64) (*models.Client, error) {
	return f.items[id], nil
}

func (f *fakeClients) GetMany(_ context.Context, ids []int64) (map[int64]*models.Client, error) {
	out := map[int64]*models.Client{}
	for _, id := range ids {
		if c, ok := f.items[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeClients) List(context.Context, string, int, int) ([]*models.Client, error) {
	out := []*models.Client{}
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClients) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakePipelines struct {
	pipelines []*models.JobPipeline
	stages    []*models.JobPipelineStage
	nextID    int64
}

func (f *fakePipelines) List(context.Context) ([]*models.JobPipeline, error) {
	return slices.Clone(f.pipelines), nil
}

func (f *fakePipelines) GetByID(_ context.Context, id int64) (*models.JobPipeline, error) {
	for _, p := range f.pipelines {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePipelines) Create(_ context.Context, p *models.JobPipeline) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.pipelines = append(f.pipelines, &cp)
	return nil
}

func (f *fakePipelines) Update(_ context.Context, p *models.JobPipeline) error {
	for i, it := range f.pipelines {
		if it.ID == p.ID {
			cp := *p
			f.pipelines[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePipelines) Delete(_ context.Context, id int64) error {
	for i, it := range f.pipelines {
		if it.ID == id {
			f.pipelines = slices.Delete(f.pipelines, i, i+1)
			f.stages = slices.DeleteFunc(f.stages, func(s *models.JobPipelineStage) bool { return s.PipelineID == id })
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePipelines) ListStages(_ context.Context, pipelineID int64) ([]*models.JobPipelineStage, error) {
	out := []*models.JobPipelineStage{}
	for _, s := range f.stages {
		if s.PipelineID == pipelineID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakePipelines) GetStage(_ context.Context, pipelineID, stageID int64) (*models.JobPipelineStage, error) {
	for _, s := range f.stages {
		if s.ID == stageID && s.PipelineID == pipelineID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePipelines) CreateStage(_ context.Context, s *models.JobPipelineStage) error {
	f.nextID++
	s.ID = f.nextID
	existing, _ := f.ListStages(context.Background(), s.PipelineID)
	s.Position = len(existing) + 1
	cp := *s
	f.stages = append(f.stages, &cp)
	return nil
}

func (f *fakePipelines) UpdateStage(_ context.Context, s *models.JobPipelineStage) error {
	for i, it := range f.stages {
		if it.ID == s.ID && it.PipelineID == s.PipelineID {
			cp := *s
			f.stages[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePipelines) DeleteStage(_ context.Context, pipelineID, stageID int64) error {
	for i, it := range f.stages {
		if it.ID == stageID && it.PipelineID == pipelineID {
			f.stages = slices.Delete(f.stages, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePipelines) ReorderStages(_ context.Context, pipelineID int64, ids []int64) error {
	for pos, id := range ids {
		for _, s := range f.stages {
			if s.ID == id && s.PipelineID == pipelineID {
				s.Position = pos + 1
			}
		}
	}
	return nil
}

type fakeQuotes struct {
	items  []*models.Quote
	nextID int64
}

func (f *fakeQuotes) Create(_ context.Context, q *models.Quote) error {
	f.nextID++
	q.ID = f.nextID
	q.QuoteNumber = fmt.Sprintf("Q-%05d", f.nextID)
	cp := *q
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeQuotes) GetByID(_ context.Context, id int64) (*models.Quote, error) {
	for _, q := range f.items {
		if q.ID == id {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeQuotes) List(_ context.Context, status models.QuoteStatus) ([]*models.Quote, error) {
	out := []*models.Quote{}
	for _, q := range f.items {
		if status == "" || q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuotes) Update(_ context.Context, q *models.Quote) error {
	for i, it := range f.items {
		if it.ID == q.ID {
			cp := *q
			f.items[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeInventory struct {
	items []*models.InventoryItem
}

func (f *fakeInventory) Create(_ context.Context, it *models.InventoryItem) error {
	it.ID = int64(len(f.items) + 1)
	f.items = append(f.items, it)
	return nil
}

func (f *fakeInventory) GetByID(_ context.Context, id int64) (*models.InventoryItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInventory) List(_ context.Context, lowOnly bool) ([]*models.InventoryItem, error) {
	out := []*models.InventoryItem{}
	for _, it := range f.items {
		if !lowOnly || it.Quantity <= it.ReorderLevel {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInventory) Update(_ context.Context, it *models.InventoryItem) error {
	for i, x := range f.items {
		if x.ID == it.ID {
			f.items[i] = it
			return nil
		}
	}
	return sql.ErrNoRows
}

type sentMail struct {
	kind string
	to   string
}

type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (n *fakeNotifier) JobStatusChanged(_ context.Context, _ *models.Job, c *models.Client, _, to string) error {
	n.sent = append(n.sent, sentMail{kind: "status:" + to, to: c.Email})
	return n.err
}

func (n *fakeNotifier) LeadConverted(_ context.Context, _ *models.Lead, j *models.Job) error {
	n.sent = append(n.sent, sentMail{kind: "converted:" + j.JobNumber})
	return n.err
}

var errBoom = errors.New("boom")

func int64p(v int64) *int64 { return &v }
func strp(v string) *string { return &v }
