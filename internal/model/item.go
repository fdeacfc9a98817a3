package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is a read-only warehouse row; stock mutations belong to the
// warehouse system, this service only serves lookups.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SKU         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Quantity    float64   `gorm:"not null;default:0" json:"quantity"`
	Unit        string    `gorm:"type:varchar(32);not null" json:"unit"`
	Location    string    `gorm:"type:varchar(128)" json:"location"`
	MinStock    float64   `gorm:"not null;default:0" json:"min_stock"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}
