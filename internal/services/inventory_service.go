package services

import (
	"context"
	"strings"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
)

type InventoryService struct {
	Repo repositories.InventoryRepository
}

func NewInventoryService(repo repositories.InventoryRepository) *InventoryService {
	return &InventoryService{Repo: repo}
}

type InventoryPatch struct {
	Name         *string
	Unit         *string
	Quantity     *int
	ReorderLevel *int
}

func (s *InventoryService) List(ctx context.Context, lowStockOnly bool) ([]*models.InventoryItem, error) {
	return s.Repo.List(ctx, lowStockOnly)
}

func (s *InventoryService) Create(ctx context.Context, it *models.InventoryItem) error {
	it.SKU = strings.TrimSpace(it.SKU)
	it.Name = strings.TrimSpace(it.Name)
	switch {
	case it.SKU == "":
		return apperr.Invalid("sku", "is required")
	case it.Name == "":
		return apperr.Invalid("name", "is required")
	case it.Quantity < 0:
		return apperr.Invalid("quantity", "must not be negative")
	case it.ReorderLevel < 0:
		return apperr.Invalid("reorderLevel", "must not be negative")
	}
	if it.Unit == "" {
		it.Unit = "each"
	}
	return s.Repo.Create(ctx, it)
}

func (s *InventoryService) Update(ctx context.Context, id int64, p InventoryPatch) (*models.InventoryItem, error) {
	it, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("inventory item", id)
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, apperr.Invalid("name", "is required")
		}
		it.Name = strings.TrimSpace(*p.Name)
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			return nil, apperr.Invalid("quantity", "must not be negative")
		}
		it.Quantity = *p.Quantity
	}
	if p.ReorderLevel != nil {
		if *p.ReorderLevel < 0 {
			return nil, apperr.Invalid("reorderLevel", "must not be negative")
		}
		it.ReorderLevel = *p.ReorderLevel
	}
	if err := s.Repo.Update(ctx, it); err != nil {
		return nil, notFound(err, "inventory item", id)
	}
	return it, nil
}
