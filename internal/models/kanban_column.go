package models

import "time"

// KanbanColumn groups one or more job statuses into a board column.
type KanbanColumn struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Statuses      []string  `json:"statuses"`
	DefaultStatus string    `json:"defaultStatus"`
	Color         string    `json:"color"`
	IsActive      bool      `json:"isActive"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// KanbanBoardColumn is a column with the jobs currently on one of its statuses.
type KanbanBoardColumn struct {
	Column KanbanColumn `json:"column"`
	Jobs   []*Job       `json:"jobs"`
}

type KanbanBoard struct {
	Columns    []KanbanBoardColumn `json:"columns"`
	Unassigned []*Job              `json:"unassigned"`
}
