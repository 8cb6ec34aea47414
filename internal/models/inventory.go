package models

import "time"

type InventoryItem struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorderLevel"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
