package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReadingStatus string

const (
	ReadingStatusNormal     ReadingStatus = "NORMAL"
	ReadingStatusOutOfRange ReadingStatus = "OUT_OF_RANGE"
)

// Logbook (bitácora) is a measurement journal for one piece of equipment,
// with the allowed band for its readings.
type Logbook struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Equipment    string    `gorm:"type:varchar(255);not null" json:"equipment"`
	Unit         string    `gorm:"type:varchar(32);not null" json:"unit"`
	MinValue     float64   `gorm:"not null" json:"min_value"`
	MaxValue     float64   `gorm:"not null" json:"max_value"`
	SupervisorID uuid.UUID `gorm:"type:uuid;not null" json:"supervisor_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Logbook) TableName() string {
	return "logbooks"
}

func (l *Logbook) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Evaluate classifies a reading against the logbook bounds. Both bounds are
// inclusive.
func (l *Logbook) Evaluate(value float64) ReadingStatus {
	if value < l.MinValue || value > l.MaxValue {
		return ReadingStatusOutOfRange
	}
	return ReadingStatusNormal
}

type LogbookReading struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	LogbookID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"logbook_id"`
	RecordedBy uuid.UUID     `gorm:"type:uuid;not null" json:"recorded_by"`
	Value      float64       `gorm:"not null" json:"value"`
	Status     ReadingStatus `gorm:"type:reading_status;not null" json:"status"`
	Note       *string       `gorm:"type:text" json:"note"`
	RecordedAt time.Time     `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (LogbookReading) TableName() string {
	return "logbook_readings"
}

func (r *LogbookReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
