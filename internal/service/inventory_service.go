package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
)

type InventoryService struct {
	itemRepo *repository.ItemRepository
}

func NewInventoryService(itemRepo *repository.ItemRepository) *InventoryService {
	return &InventoryService{itemRepo: itemRepo}
}

func (s *InventoryService) List(ctx context.Context, principal model.Principal, filter repository.ItemListFilter) ([]model.InventoryItem, error) {
	if !principal.Permits(model.ActionViewInventory) {
		return nil, ErrPermissionDenied
	}
	return s.itemRepo.List(ctx, filter)
}

func (s *InventoryService) Get(ctx context.Context, principal model.Principal, id string) (*model.InventoryItem, error) {
	if !principal.Permits(model.ActionViewInventory) {
		return nil, ErrPermissionDenied
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return item, nil
}
