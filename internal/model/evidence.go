package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvidenceKind string

const (
	EvidenceKindImage    EvidenceKind = "IMAGE"
	EvidenceKindDocument EvidenceKind = "DOCUMENT"
)

func (k EvidenceKind) IsValid() bool {
	return k == EvidenceKindImage || k == EvidenceKindDocument
}

// OrderEvidence is a single attachment recorded when the executor closes the
// work. The URL column keeps whatever the client stored; when an evidence
// store is configured a fresh presigned URL is computed on read instead.
type OrderEvidence struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"order_id"`
	URL         string       `gorm:"type:text" json:"url"`
	StoragePath string       `gorm:"type:text;not null" json:"storage_path"`
	Bucket      string       `gorm:"type:varchar(128);not null" json:"bucket"`
	Kind        EvidenceKind `gorm:"type:evidence_kind;not null" json:"kind"`
	Filename    string       `gorm:"type:varchar(255);not null" json:"filename"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (OrderEvidence) TableName() string {
	return "order_evidence"
}

func (e *OrderEvidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
