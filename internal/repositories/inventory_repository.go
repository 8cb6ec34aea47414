package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"probuild/internal/models"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	List(ctx context.Context, lowStockOnly bool) ([]*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
}

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, sku, name, unit, quantity, reorder_level, updated_at`

func scanInventoryItem(row rowScanner) (*models.InventoryItem, error) {
	it := &models.InventoryItem{}
	if err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Unit, &it.Quantity, &it.ReorderLevel, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *inventoryRepository) Create(ctx context.Context, it *models.InventoryItem) error {
	const q = `
		INSERT INTO inventory_items (sku, name, unit, quantity, reorder_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, updated_at
	`
	if err := r.db.QueryRowContext(ctx, q, it.SKU, it.Name, it.Unit, it.Quantity, it.ReorderLevel).Scan(&it.ID, &it.UpdatedAt); err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	it, err := scanInventoryItem(r.db.QueryRowContext(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func (r *inventoryRepository) List(ctx context.Context, lowStockOnly bool) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items`
	if lowStockOnly {
		query += ` WHERE quantity <= reorder_level`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := []*models.InventoryItem{}
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *inventoryRepository) Update(ctx context.Context, it *models.InventoryItem) error {
	const q = `
		UPDATE inventory_items SET sku=$1, name=$2, unit=$3, quantity=$4, reorder_level=$5, updated_at=NOW()
		WHERE id=$6
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, q, it.SKU, it.Name, it.Unit, it.Quantity, it.ReorderLevel, it.ID).Scan(&it.UpdatedAt); err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}
