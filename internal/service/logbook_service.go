package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
	"maintenance-service/internal/notifier"
	"maintenance-service/internal/repository"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

type LogbookService struct {
	logbookRepo *repository.LogbookRepository
	notifier    notifier.Notifier
}

func NewLogbookService(logbookRepo *repository.LogbookRepository, n notifier.Notifier) *LogbookService {
	return &LogbookService{
		logbookRepo: logbookRepo,
		notifier:    n,
	}
}

func (s *LogbookService) List(ctx context.Context, principal model.Principal) ([]model.Logbook, error) {
	if !principal.Permits(model.ActionViewLogbooks) {
		return nil, ErrPermissionDenied
	}
	return s.logbookRepo.List(ctx)
}

type RecordReadingInput struct {
	Value float64
	Note  string
}

// RecordReading stores the measurement and evaluates it against the logbook
// bounds. An out-of-range value alerts the logbook supervisor; it never
// blocks the write.
func (s *LogbookService) RecordReading(ctx context.Context, principal model.Principal, logbookID string, input RecordReadingInput) (*model.LogbookReading, error) {
	if !principal.Permits(model.ActionRecordReading) {
		return nil, ErrPermissionDenied
	}

	logbook, err := s.logbookRepo.GetByID(ctx, logbookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reading := &model.LogbookReading{
		LogbookID:  logbook.ID,
		RecordedBy: principal.UserID,
		Value:      input.Value,
		Status:     logbook.Evaluate(input.Value),
		RecordedAt: timeNow(),
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		reading.Note = &note
	}

	if err := s.logbookRepo.CreateReading(ctx, reading); err != nil {
		return nil, err
	}

	if reading.Status == model.ReadingStatusOutOfRange {
		value := input.Value
		s.notifier.Publish(ctx, notifier.Event{
			Type:       notifier.EventReadingOutOfRange,
			LogbookID:  &logbook.ID,
			Title:      fmt.Sprintf("%s (%s)", logbook.Name, logbook.Unit),
			Value:      &value,
			Recipients: []uuid.UUID{logbook.SupervisorID},
		})
	}

	return reading, nil
}

func (s *LogbookService) ListReadings(ctx context.Context, principal model.Principal, logbookID string) ([]model.LogbookReading, error) {
	if !principal.Permits(model.ActionViewLogbooks) {
		return nil, ErrPermissionDenied
	}

	logbook, err := s.logbookRepo.GetByID(ctx, logbookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.logbookRepo.ListReadings(ctx, logbook.ID)
}
