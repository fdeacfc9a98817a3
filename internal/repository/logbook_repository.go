package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
)

type LogbookRepository struct {
	db *gorm.DB
}

func NewLogbookRepository(db *gorm.DB) *LogbookRepository {
	return &LogbookRepository{db: db}
}

func (r *LogbookRepository) GetByID(ctx context.Context, id string) (*model.Logbook, error) {
	var logbook model.Logbook
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&logbook).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &logbook, nil
}

func (r *LogbookRepository) List(ctx context.Context) ([]model.Logbook, error) {
	var logbooks []model.Logbook
	err := r.db.WithContext(ctx).Order("name ASC").Find(&logbooks).Error
	return logbooks, err
}

func (r *LogbookRepository) CreateReading(ctx context.Context, reading *model.LogbookReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *LogbookRepository) ListReadings(ctx context.Context, logbookID uuid.UUID) ([]model.LogbookReading, error) {
	var readings []model.LogbookReading
	err := r.db.WithContext(ctx).
		Where("logbook_id = ?", logbookID).
		Order("recorded_at DESC").
		Find(&readings).Error
	return readings, err
}
