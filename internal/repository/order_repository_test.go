package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

func newTestRepo(t *testing.T) (*OrderRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Order{}, &model.OrderEvidence{}))

	return NewOrderRepository(db), db
}

func pendingOrder(requesterID uuid.UUID) *model.Order {
	return &model.Order{
		Title:          "Bomba 3 con fuga",
		Description:    "Fuga de agua en el sello",
		Type:           model.OrderTypeCorrective,
		Priority:       model.OrderPriorityHigh,
		Status:         model.OrderStatusPending,
		ApprovalStatus: model.ApprovalStatusPending,
		RequesterID:    requesterID,
		Metadata:       model.Metadata{"equipment": "pump-3"},
	}
}

func TestCreateAssignsFolioSequence(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	requester := uuid.New()

	for want := int64(1); want <= 3; want++ {
		order := pendingOrder(requester)
		require.NoError(t, repo.Create(ctx, order))
		assert.Equal(t, want, order.Folio)
	}
}

func TestClaimForExecutorIsSingleWinner(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder(uuid.New())
	require.NoError(t, repo.Create(ctx, order))

	first := uuid.New()
	second := uuid.New()
	now := time.Now()

	claimed, err := repo.ClaimForExecutor(ctx, order.ID, first, now)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimForExecutor(ctx, order.ID, second, now)
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := repo.GetByID(ctx, order.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.ExecutorID)
	assert.Equal(t, first, *got.ExecutorID)
	assert.Equal(t, model.OrderStatusInProcess, got.Status)
	require.NotNil(t, got.StartedAt)
}

func TestCompleteStoresEvidenceAtomically(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder(uuid.New())
	require.NoError(t, repo.Create(ctx, order))

	now := time.Now()
	order.Status = model.OrderStatusCompleted
	order.CompletedAt = &now

	evidence := []model.OrderEvidence{
		{StoragePath: "evidence/a.jpg", Bucket: "evidence", Kind: model.EvidenceKindImage, Filename: "a.jpg"},
		{StoragePath: "evidence/b.pdf", Bucket: "evidence", Kind: model.EvidenceKindDocument, Filename: "b.pdf"},
	}
	require.NoError(t, repo.Complete(ctx, order, evidence))

	stored, err := repo.ListEvidence(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, e := range stored {
		assert.Equal(t, order.ID, e.OrderID)
	}

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Where("status = ?", model.OrderStatusCompleted).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
