package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderType string

const (
	OrderTypeCorrective  OrderType = "CORRECTIVE"
	OrderTypePreventive  OrderType = "PREVENTIVE"
	OrderTypeImprovement OrderType = "IMPROVEMENT"
	OrderTypePredictive  OrderType = "PREDICTIVE"
	OrderTypeAutonomous  OrderType = "AUTONOMOUS"
)

type OrderPriority string

const (
	OrderPriorityLow      OrderPriority = "LOW"
	OrderPriorityMedium   OrderPriority = "MEDIUM"
	OrderPriorityHigh     OrderPriority = "HIGH"
	OrderPriorityCritical OrderPriority = "CRITICAL"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInProcess OrderStatus = "IN_PROCESS"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeCorrective, OrderTypePreventive, OrderTypeImprovement, OrderTypePredictive, OrderTypeAutonomous:
		return true
	default:
		return false
	}
}

func (p OrderPriority) IsValid() bool {
	switch p {
	case OrderPriorityLow, OrderPriorityMedium, OrderPriorityHigh, OrderPriorityCritical:
		return true
	default:
		return false
	}
}

// RequiresSupervisor reporta si la orden necesita supervisor al crearse.
// Predictive, improvement y autonomous llevan supervisor obligatorio.
func (t OrderType) RequiresSupervisor() bool {
	switch t {
	case OrderTypePredictive, OrderTypeImprovement, OrderTypeAutonomous:
		return true
	default:
		return false
	}
}

// Solo las preventivas llevan colaborador de área.
func (t OrderType) RequiresCollaborator() bool {
	return t == OrderTypePreventive
}

// RequiredMetadata returns the metadata keys that must be present and
// non-empty when an order of this type is created. Order matters: the first
// missing key is the one reported back to the caller.
func (t OrderType) RequiredMetadata() []string {
	switch t {
	case OrderTypeCorrective:
		return []string{"equipment", "location", "symptom"}
	case OrderTypePreventive:
		return []string{"equipment", "location"}
	case OrderTypePredictive:
		return []string{"equipment", "parameter"}
	case OrderTypeImprovement:
		return []string{"area", "justification"}
	case OrderTypeAutonomous:
		return []string{"equipment"}
	default:
		return nil
	}
}

// AllowsRequesterRating: el ejecutor solo califica al solicitante en
// correctivas y preventivas.
func (t OrderType) AllowsRequesterRating() bool {
	return t == OrderTypeCorrective || t == OrderTypePreventive
}

// Metadata is the type-dependent key-value detail block of an order, stored
// as a single JSON column.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	return json.Unmarshal(data, m)
}

type Order struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Folio             int64          `gorm:"not null;uniqueIndex" json:"folio"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Type              OrderType      `gorm:"type:order_type;not null" json:"type"`
	Priority          OrderPriority  `gorm:"type:order_priority;not null" json:"priority"`
	Status            OrderStatus    `gorm:"type:order_status;not null;default:PENDING" json:"status"`
	ApprovalStatus    ApprovalStatus `gorm:"type:approval_status;not null;default:PENDING" json:"approval_status"`
	RequesterID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"requester_id"`
	ExecutorID        *uuid.UUID     `gorm:"type:uuid;index" json:"executor_id"`
	SupervisorID      *uuid.UUID     `gorm:"type:uuid" json:"supervisor_id"`
	CollaboratorID    *uuid.UUID     `gorm:"type:uuid" json:"collaborator_id"`
	ApproverID        *uuid.UUID     `gorm:"type:uuid" json:"approver_id"`
	Metadata          Metadata       `gorm:"type:jsonb" json:"metadata"`
	WorkPerformed     *string        `gorm:"type:text" json:"work_performed"`
	ResourcesUsed     *string        `gorm:"type:text" json:"resources_used"`
	ExecutionRating   *int           `json:"calificacion_ejecucion"`
	ApprovalComments  *string        `gorm:"type:text" json:"approval_comments"`
	RequesterRating   *int           `json:"calificacion_solicitante"`
	RequesterFeedback *string        `gorm:"type:text" json:"requester_feedback"`
	ScheduledFor      *time.Time     `json:"scheduled_for"`
	StartedAt         *time.Time     `json:"started_at"`
	CompletedAt       *time.Time     `json:"completed_at"`
	ApprovalAt        *time.Time     `json:"approval_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "maintenance_orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ApprovalOwner resolves which user reviews this order once completed.
// Preventivas → colaborador de área (o el solicitante si no hay),
// correctivas → solicitante, el resto con supervisor → supervisor.
func (o *Order) ApprovalOwner() uuid.UUID {
	switch o.Type {
	case OrderTypePreventive:
		if o.CollaboratorID != nil {
			return *o.CollaboratorID
		}
	case OrderTypeCorrective:
		// solicitante
	case OrderTypePredictive, OrderTypeImprovement, OrderTypeAutonomous:
		if o.SupervisorID != nil {
			return *o.SupervisorID
		}
	}
	return o.RequesterID
}
