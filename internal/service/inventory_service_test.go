package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
)

func seedItems(t *testing.T, db *gorm.DB) []model.InventoryItem {
	t.Helper()

	items := []model.InventoryItem{
		{SKU: "SEAL-001", Name: "Sello mecánico 25mm", Quantity: 12, Unit: "pz", Location: "A-01", MinStock: 4},
		{SKU: "BELT-010", Name: "Banda trapezoidal B-42", Quantity: 2, Unit: "pz", Location: "A-02", MinStock: 5},
		{SKU: "OIL-100", Name: "Aceite hidráulico ISO 68", Quantity: 60, Unit: "l", Location: "B-01", MinStock: 20},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return items
}

func TestInventoryList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(repository.NewItemRepository(db))
	ctx := context.Background()
	executor := asPrincipal(seedUser(t, db, model.RoleExecutor, true))
	seedItems(t, db)

	t.Run("all items", func(t *testing.T) {
		items, err := svc.List(ctx, executor, repository.ItemListFilter{})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("search matches name and sku", func(t *testing.T) {
		search := "banda"
		items, err := svc.List(ctx, executor, repository.ItemListFilter{Search: &search})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "BELT-010", items[0].SKU)

		search = "oil-1"
		items, err = svc.List(ctx, executor, repository.ItemListFilter{Search: &search})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "OIL-100", items[0].SKU)
	})

	t.Run("location filter", func(t *testing.T) {
		location := "B-01"
		items, err := svc.List(ctx, executor, repository.ItemListFilter{Location: &location})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "OIL-100", items[0].SKU)
	})

	t.Run("low stock filter", func(t *testing.T) {
		items, err := svc.List(ctx, executor, repository.ItemListFilter{LowStock: true})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "BELT-010", items[0].SKU)
		assert.True(t, items[0].IsLowStock())
	})
}

func TestInventoryGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(repository.NewItemRepository(db))
	ctx := context.Background()
	executor := asPrincipal(seedUser(t, db, model.RoleExecutor, true))
	items := seedItems(t, db)

	item, err := svc.Get(ctx, executor, items[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "SEAL-001", item.SKU)

	_, err = svc.Get(ctx, executor, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
