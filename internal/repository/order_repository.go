package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create allocates the next folio and inserts the order in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxFolio int64
		if err := tx.Model(&model.Order{}).
			Select("COALESCE(MAX(folio), 0)").
			Scan(&maxFolio).Error; err != nil {
			return err
		}
		order.Folio = maxFolio + 1
		return tx.Create(order).Error
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ClaimForExecutor binds an executor to a pending, unassigned order with a
// conditional update. Returns false when another executor got there first or
// the order already left PENDING.
func (r *OrderRepository) ClaimForExecutor(ctx context.Context, orderID, executorID uuid.UUID, startedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ? AND executor_id IS NULL", orderID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"executor_id": executorID,
			"status":      model.OrderStatusInProcess,
			"started_at":  startedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Complete persists the completed order together with its evidence list
// atomically.
func (r *OrderRepository) Complete(ctx context.Context, order *model.Order, evidence []model.OrderEvidence) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		for i := range evidence {
			evidence[i].OrderID = order.ID
		}
		return tx.Create(&evidence).Error
	})
}

func (r *OrderRepository) ListEvidence(ctx context.Context, orderID uuid.UUID) ([]model.OrderEvidence, error) {
	var evidence []model.OrderEvidence
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&evidence).Error
	return evidence, err
}

type OrderListFilter struct {
	Status         *model.OrderStatus
	ApprovalStatus *model.ApprovalStatus
	Type           *model.OrderType
	Priority       *model.OrderPriority
	RequesterID    *uuid.UUID
	ExecutorID     *uuid.UUID
	SupervisorID   *uuid.UUID
	CollaboratorID *uuid.UUID
	// ClaimableBy scopes the list to orders already bound to this executor
	// plus the pending pool they may still take.
	ClaimableBy *uuid.UUID
}

func (r *OrderRepository) List(ctx context.Context, filter OrderListFilter) ([]model.Order, error) {
	var orders []model.Order
	query := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ApprovalStatus != nil {
		query = query.Where("approval_status = ?", *filter.ApprovalStatus)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.ExecutorID != nil {
		query = query.Where("executor_id = ?", *filter.ExecutorID)
	}
	if filter.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filter.SupervisorID)
	}
	if filter.CollaboratorID != nil {
		query = query.Where("collaborator_id = ?", *filter.CollaboratorID)
	}
	if filter.ClaimableBy != nil {
		query = query.Where("executor_id = ? OR status = ?", *filter.ClaimableBy, model.OrderStatusPending)
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
