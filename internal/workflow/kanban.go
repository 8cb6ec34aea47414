package workflow

import (
	"slices"
	"strings"

	"probuild/internal/apperr"
	"probuild/internal/models"
)

// Palette is the fixed set of column colours the board understands.
var Palette = []string{
	"slate", "gray", "red", "orange", "amber",
	"yellow", "green", "teal", "blue", "purple",
}

func ValidColor(c string) bool {
	return slices.Contains(Palette, c)
}

// ColumnForm is the editable state of a kanban column.
type ColumnForm struct {
	Title         string   `json:"title"`
	Statuses      []string `json:"statuses"`
	DefaultStatus string   `json:"defaultStatus"`
	Color         string   `json:"color"`
	IsActive      bool     `json:"isActive"`
}

func FormFromColumn(c *models.KanbanColumn) ColumnForm {
	return ColumnForm{
		Title:         c.Title,
		Statuses:      slices.Clone(c.Statuses),
		DefaultStatus: c.DefaultStatus,
		Color:         c.Color,
		IsActive:      c.IsActive,
	}
}

// ToggleStatus adds key to the selection or removes it. Removing the default
// falls back to the first remaining status, or "" when none remain.
func (f *ColumnForm) ToggleStatus(key string) {
	if i := slices.Index(f.Statuses, key); i >= 0 {
		f.Statuses = slices.Delete(slices.Clone(f.Statuses), i, i+1)
		if f.DefaultStatus == key {
			f.DefaultStatus = ""
			if len(f.Statuses) > 0 {
				f.DefaultStatus = f.Statuses[0]
			}
		}
		return
	}
	f.Statuses = append(slices.Clone(f.Statuses), key)
	if f.DefaultStatus == "" {
		f.DefaultStatus = key
	}
}

// Validate enforces the column invariants before anything is written.
func (f *ColumnForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return apperr.Invalid("title", "is required")
	}
	if len(f.Statuses) == 0 {
		return apperr.Invalid("statuses", "select at least one status")
	}
	seen := make(map[string]bool, len(f.Statuses))
	for _, s := range f.Statuses {
		if seen[s] {
			return apperr.Invalid("statuses", "status %q listed twice", s)
		}
		seen[s] = true
	}
	if f.DefaultStatus == "" {
		return apperr.Invalid("defaultStatus", "is required")
	}
	if !seen[f.DefaultStatus] {
		return apperr.Invalid("defaultStatus", "must be one of the selected statuses")
	}
	if !ValidColor(f.Color) {
		return apperr.Invalid("color", "must be one of %s", strings.Join(Palette, ", "))
	}
	return nil
}

// BuildBoard places each job in the first active column listing its status.
func BuildBoard(columns []*models.KanbanColumn, jobs []*models.Job) models.KanbanBoard {
	board := models.KanbanBoard{Columns: []models.KanbanBoardColumn{}, Unassigned: []*models.Job{}}
	owner := map[string]int{}
	for _, c := range columns {
		if !c.IsActive {
			continue
		}
		board.Columns = append(board.Columns, models.KanbanBoardColumn{Column: *c, Jobs: []*models.Job{}})
		for _, s := range c.Statuses {
			if _, taken := owner[s]; !taken {
				owner[s] = len(board.Columns) - 1
			}
		}
	}
	for _, j := range jobs {
		if i, ok := owner[j.Status]; ok {
			board.Columns[i].Jobs = append(board.Columns[i].Jobs, j)
			continue
		}
		board.Unassigned = append(board.Unassigned, j)
	}
	return board
}
