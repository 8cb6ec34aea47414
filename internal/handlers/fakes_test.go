package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"probuild/internal/models"
	"probuild/internal/repositories"
)

type memStatuses struct {
	items []*models.JobStatus
}

func newMemStatuses(keys ...string) *memStatuses {
	m := &memStatuses{}
	for i, k := range keys {
		m.items = append(m.items, &models.JobStatus{ID: int64(i + 1), Key: k, Label: k, IsActive: true, Position: i + 1})
	}
	return m
}

func (m *memStatuses) List(context.Context) ([]*models.JobStatus, error) {
	return slices.Clone(m.items), nil
}

func (m *memStatuses) GetByID(_ context.Context, id int64) (*models.JobStatus, error) {
	for _, s := range m.items {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStatuses) GetByKey(_ context.Context, key string) (*models.JobStatus, error) {
	for _, s := range m.items {
		if s.Key == key {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStatuses) Create(_ context.Context, s *models.JobStatus) error {
	s.ID = int64(len(m.items) + 1)
	s.Position = len(m.items) + 1
	cp := *s
	m.items = append(m.items, &cp)
	return nil
}

func (m *memStatuses) Update(_ context.Context, s *models.JobStatus) error {
	for i, it := range m.items {
		if it.ID == s.ID {
			cp := *s
			m.items[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStatuses) Delete(_ context.Context, s *models.JobStatus, _ []*models.KanbanColumn) error {
	for i, it := range m.items {
		if it.ID == s.ID {
			m.items = slices.Delete(m.items, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStatuses) Reorder(context.Context, []int64) error { return nil }

func (m *memStatuses) CountJobs(context.Context, string) (int, error) { return 0, nil }

type memDeps struct {
	items []models.JobStatusDependency
}

func (m *memDeps) List(context.Context) ([]models.JobStatusDependency, error) {
	return slices.Clone(m.items), nil
}

func (m *memDeps) ListForStatus(_ context.Context, key string) ([]models.JobStatusDependency, error) {
	out := []models.JobStatusDependency{}
	for _, d := range m.items {
		if d.StatusKey == key {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDeps) Replace(_ context.Context, key string, deps []models.JobStatusDependency) error {
	m.items = slices.DeleteFunc(m.items, func(d models.JobStatusDependency) bool { return d.StatusKey == key })
	m.items = append(m.items, deps...)
	return nil
}

type memColumns struct {
	items []*models.KanbanColumn
}

func (m *memColumns) List(context.Context) ([]*models.KanbanColumn, error) {
	return slices.Clone(m.items), nil
}
func (m *memColumns) GetByID(context.Context, int64) (*models.KanbanColumn, error) { return nil, nil }
func (m *memColumns) Create(context.Context, *models.KanbanColumn) error           { return nil }
func (m *memColumns) Update(context.Context, *models.KanbanColumn) error           { return nil }
func (m *memColumns) Delete(context.Context, int64) error                          { return nil }
func (m *memColumns) Reorder(context.Context, []int64) error                       { return nil }

type memLeads struct {
	items []*models.Lead
}

func (m *memLeads) Create(_ context.Context, l *models.Lead) error {
	l.ID = int64(len(m.items) + 1)
	cp := *l
	m.items = append(m.items, &cp)
	return nil
}

func (m *memLeads) Update(context.Context, *models.Lead) error { return nil }

func (m *memLeads) UpdateStage(_ context.Context, id int64, stage models.LeadStage) error {
	for _, l := range m.items {
		if l.ID == id {
			l.Stage = stage
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memLeads) GetByID(_ context.Context, id int64) (*models.Lead, error) {
	for _, l := range m.items {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memLeads) Delete(context.Context, int64) error { return nil }

func (m *memLeads) List(context.Context, repositories.LeadFilter) ([]*models.Lead, error) {
	out := make([]*models.Lead, 0, len(m.items))
	for _, l := range m.items {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type memJobs struct {
	items []*models.Job
}

func (m *memJobs) Create(_ context.Context, j *models.Job) error {
	j.ID = int64(len(m.items) + 1)
	j.JobNumber = fmt.Sprintf("JOB-%05d", j.ID)
	cp := *j
	m.items = append(m.items, &cp)
	return nil
}

func (m *memJobs) GetByID(context.Context, int64) (*models.Job, error) { return nil, nil }

func (m *memJobs) GetByLeadID(_ context.Context, leadID int64) (*models.Job, error) {
	for _, j := range m.items {
		if j.LeadID != nil && *j.LeadID == leadID {
			return j, nil
		}
	}
	return nil, nil
}

func (m *memJobs) List(context.Context, repositories.JobFilter) ([]*models.Job, error) {
	return slices.Clone(m.items), nil
}
func (m *memJobs) Update(context.Context, *models.Job) error                   { return nil }
func (m *memJobs) ChangeStatus(context.Context, *models.JobStatusChange) error { return nil }
func (m *memJobs) History(context.Context, int64) ([]*models.JobStatusChange, error) {
	return nil, nil
}
func (m *memJobs) Delete(context.Context, int64) error { return nil }

type memClients struct{}

func (memClients) Create(context.Context, *models.Client) error           { return nil }
func (memClients) Update(context.Context, *models.Client) error           { return nil }
func (memClients) GetByID(context.Context, int64) (*models.Client, error) { return nil, nil }
func (memClients) Delete(context.Context, int64) error                    { return nil }
func (memClients) GetMany(context.Context, []int64) (map[int64]*models.Client, error) {
	return map[int64]*models.Client{}, nil
}
func (memClients) List(context.Context, string, int, int) ([]*models.Client, error) {
	return nil, nil
}
