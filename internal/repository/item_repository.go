package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

type ItemListFilter struct {
	Search   *string
	Location *string
	LowStock bool
}

func (r *ItemRepository) List(ctx context.Context, filter ItemListFilter) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	query := r.db.WithContext(ctx).Model(&model.InventoryItem{})

	if filter.Search != nil {
		pattern := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if filter.Location != nil {
		query = query.Where("location = ?", *filter.Location)
	}
	if filter.LowStock {
		query = query.Where("quantity <= min_stock")
	}

	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
