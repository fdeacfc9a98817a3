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
	"maintenance-service/internal/storage"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

const scheduledDateLayout = "2006-01-02"

type OrderService struct {
	orderRepo *repository.OrderRepository
	userRepo  *repository.UserRepository
	notifier  notifier.Notifier
	evidence  storage.EvidenceStore
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	n notifier.Notifier,
	evidence storage.EvidenceStore,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		notifier:  n,
		evidence:  evidence,
	}
}

type CreateOrderInput struct {
	Title          string
	Description    string
	Type           string
	Priority       string
	ScheduledFor   string
	SupervisorID   string
	CollaboratorID string
	Metadata       map[string]string
}

func (s *OrderService) Create(ctx context.Context, principal model.Principal, input CreateOrderInput) (*model.Order, error) {
	if !principal.Permits(model.ActionCreateOrder) {
		return nil, ErrPermissionDenied
	}

	// El orden de validación está fijado: título, descripción, fecha,
	// metadata obligatoria, supervisor, colaborador.
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	orderType := model.OrderType(strings.ToUpper(strings.TrimSpace(input.Type)))
	if !orderType.IsValid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, input.Type)
	}

	priority := model.OrderPriority(strings.ToUpper(strings.TrimSpace(input.Priority)))
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}

	var scheduledFor *time.Time
	if input.ScheduledFor != "" {
		parsed, err := time.Parse(scheduledDateLayout, input.ScheduledFor)
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled date must be YYYY-MM-DD", ErrInvalidInput)
		}
		scheduledFor = &parsed
	}

	for _, key := range orderType.RequiredMetadata() {
		if strings.TrimSpace(input.Metadata[key]) == "" {
			return nil, fmt.Errorf("%w: metadata field %q is required for %s orders", ErrInvalidInput, key, orderType)
		}
	}

	var supervisorID *uuid.UUID
	if orderType.RequiresSupervisor() {
		if strings.TrimSpace(input.SupervisorID) == "" {
			return nil, fmt.Errorf("%w: supervisor is required for %s orders", ErrInvalidInput, orderType)
		}
		id, err := uuid.Parse(input.SupervisorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid supervisor id", ErrInvalidInput)
		}
		supervisorID = &id
	}

	var collaboratorID *uuid.UUID
	if orderType.RequiresCollaborator() {
		if strings.TrimSpace(input.CollaboratorID) == "" {
			return nil, fmt.Errorf("%w: area collaborator is required for %s orders", ErrInvalidInput, orderType)
		}
		id, err := uuid.Parse(input.CollaboratorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid collaborator id", ErrInvalidInput)
		}
		collaboratorID = &id
	}

	order := &model.Order{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Type:           orderType,
		Priority:       priority,
		Status:         model.OrderStatusPending,
		ApprovalStatus: model.ApprovalStatusPending,
		RequesterID:    principal.UserID,
		SupervisorID:   supervisorID,
		CollaboratorID: collaboratorID,
		Metadata:       input.Metadata,
		ScheduledFor:   scheduledFor,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Las correctivas se anuncian a todos los ejecutores activos.
	if orderType == model.OrderTypeCorrective {
		executors, err := s.userRepo.ListActiveExecutors(ctx)
		if err == nil && len(executors) > 0 {
			recipients := make([]uuid.UUID, 0, len(executors))
			for _, e := range executors {
				recipients = append(recipients, e.ID)
			}
			s.notifier.Publish(ctx, notifier.Event{
				Type:       notifier.EventOrderCreated,
				OrderID:    &order.ID,
				Title:      order.Title,
				Recipients: recipients,
			})
		}
	}

	return order, nil
}

// AssignToExecutor lets an executor take a pending order. The claim is a
// conditional update, so two executors racing for the same order cannot both
// win.
func (s *OrderService) AssignToExecutor(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	if !principal.Permits(model.ActionTakeOrder) {
		return nil, ErrPermissionDenied
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := timeNow()
	claimed, err := s.orderRepo.ClaimForExecutor(ctx, id, principal.UserID, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrConflict
	}

	order.ExecutorID = &principal.UserID
	order.Status = model.OrderStatusInProcess
	order.StartedAt = &now

	s.notifier.Publish(ctx, notifier.Event{
		Type:         notifier.EventOrderAssigned,
		OrderID:      &order.ID,
		ExecutorName: principal.Name,
		Recipients:   []uuid.UUID{order.RequesterID},
	})

	return order, nil
}

type EvidenceInput struct {
	URL         string
	StoragePath string
	Bucket      string
	Kind        string
	Filename    string
}

type CompleteOrderInput struct {
	WorkPerformed string
	ResourcesUsed string
	Evidence      []EvidenceInput
}

func (s *OrderService) MarkCompleted(ctx context.Context, principal model.Principal, orderID string, input CompleteOrderInput) (*model.Order, error) {
	if !principal.Permits(model.ActionCompleteOrder) {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.ExecutorID == nil || *order.ExecutorID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if order.Status != model.OrderStatusInProcess {
		return nil, ErrConflict
	}

	if strings.TrimSpace(input.WorkPerformed) == "" {
		return nil, fmt.Errorf("%w: work notes are required", ErrInvalidInput)
	}
	if len(input.Evidence) == 0 {
		return nil, fmt.Errorf("%w: at least one evidence attachment is required", ErrInvalidInput)
	}

	evidence := make([]model.OrderEvidence, 0, len(input.Evidence))
	for _, e := range input.Evidence {
		kind := model.EvidenceKind(strings.ToUpper(strings.TrimSpace(e.Kind)))
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown evidence kind %q", ErrInvalidInput, e.Kind)
		}
		if strings.TrimSpace(e.StoragePath) == "" {
			return nil, fmt.Errorf("%w: evidence storage path is required", ErrInvalidInput)
		}
		evidence = append(evidence, model.OrderEvidence{
			URL:         e.URL,
			StoragePath: e.StoragePath,
			Bucket:      e.Bucket,
			Kind:        kind,
			Filename:    e.Filename,
		})
	}

	now := timeNow()
	workPerformed := strings.TrimSpace(input.WorkPerformed)
	order.Status = model.OrderStatusCompleted
	order.CompletedAt = &now
	// Cada cierre reinicia la revisión, aunque la orden venga de un rechazo.
	order.ApprovalStatus = model.ApprovalStatusPending
	order.WorkPerformed = &workPerformed
	if strings.TrimSpace(input.ResourcesUsed) != "" {
		resources := strings.TrimSpace(input.ResourcesUsed)
		order.ResourcesUsed = &resources
	}

	if err := s.orderRepo.Complete(ctx, order, evidence); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notifier.Event{
		Type:       notifier.EventOrderCompleted,
		OrderID:    &order.ID,
		Title:      order.Title,
		Recipients: []uuid.UUID{order.RequesterID},
	})

	return order, nil
}

type SubmitApprovalInput struct {
	Approved bool
	Rating   *int
	Comments string
}

func (s *OrderService) SubmitApproval(ctx context.Context, principal model.Principal, orderID string, input SubmitApprovalInput) (*model.Order, error) {
	if !principal.Permits(model.ActionReviewOrder) {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.ApprovalOwner() != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, ErrConflict
	}
	if order.ApprovalStatus != model.ApprovalStatusPending {
		return nil, ErrConflict
	}

	if input.Approved && input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
		}
	}

	now := timeNow()
	order.ApproverID = &principal.UserID
	order.ApprovalAt = &now
	if comments := strings.TrimSpace(input.Comments); comments != "" {
		order.ApprovalComments = &comments
	}
	if input.Approved {
		order.ApprovalStatus = model.ApprovalStatusApproved
		// La calificación solo cuenta cuando se aprueba.
		order.ExecutionRating = input.Rating
	} else {
		order.ApprovalStatus = model.ApprovalStatusRejected
	}
	// El status se queda en COMPLETED; solo Reject lo regresa a ejecución.

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Reject sends a completed order back to execution. The executor binding
// survives, the completion timestamp does not.
func (s *OrderService) Reject(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	if !principal.Permits(model.ActionReviewOrder) {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.ApprovalOwner() != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, ErrConflict
	}

	order.Status = model.OrderStatusInProcess
	order.ApprovalStatus = model.ApprovalStatusPending
	order.CompletedAt = nil

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// RateRequester records the executor's one-time rating of the requester,
// only on completed corrective/preventive orders. A second call conflicts
// instead of overwriting.
func (s *OrderService) RateRequester(ctx context.Context, principal model.Principal, orderID string, rating int, feedback string) (*model.Order, error) {
	if !principal.Permits(model.ActionRateRequester) {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.ExecutorID == nil || *order.ExecutorID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if !order.Type.AllowsRequesterRating() {
		return nil, fmt.Errorf("%w: %s orders do not take a requester rating", ErrInvalidInput, order.Type)
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, ErrConflict
	}
	if order.RequesterRating != nil {
		return nil, ErrConflict
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	order.RequesterRating = &rating
	if fb := strings.TrimSpace(feedback); fb != "" {
		order.RequesterFeedback = &fb
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

type OrderDetails struct {
	Order    *model.Order          `json:"order"`
	Evidence []model.OrderEvidence `json:"evidence"`
}

func (s *OrderService) GetDetails(ctx context.Context, principal model.Principal, orderID string) (*OrderDetails, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.canAccessOrder(principal, order) {
		return nil, ErrPermissionDenied
	}

	evidence, err := s.orderRepo.ListEvidence(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if s.evidence != nil {
		for i := range evidence {
			if evidence[i].Bucket != s.evidence.Bucket() {
				continue
			}
			url, err := s.evidence.PresignDownload(ctx, evidence[i].StoragePath)
			if err == nil {
				evidence[i].URL = url
			}
		}
	}

	return &OrderDetails{Order: order, Evidence: evidence}, nil
}

func (s *OrderService) List(ctx context.Context, principal model.Principal, filter repository.OrderListFilter) ([]model.Order, error) {
	if !principal.Permits(model.ActionViewOrders) {
		return nil, ErrPermissionDenied
	}

	switch principal.Role {
	case model.RoleAdmin:
		// ve todo
	case model.RoleRequester:
		id := principal.UserID
		filter.RequesterID = &id
	case model.RoleExecutor:
		// sus órdenes más el pool pendiente que aún puede tomar
		id := principal.UserID
		filter.ClaimableBy = &id
	case model.RoleSupervisor:
		id := principal.UserID
		filter.SupervisorID = &id
	case model.RoleCollaborator:
		id := principal.UserID
		filter.CollaboratorID = &id
	default:
		return nil, ErrPermissionDenied
	}

	return s.orderRepo.List(ctx, filter)
}

type EvidenceUploadSlot struct {
	UploadURL   string `json:"upload_url"`
	StoragePath string `json:"storage_path"`
	Bucket      string `json:"bucket"`
}

// EvidenceUploadURL hands the bound executor a presigned PUT so the client
// uploads straight to the bucket before calling MarkCompleted.
func (s *OrderService) EvidenceUploadURL(ctx context.Context, principal model.Principal, orderID, filename string) (*EvidenceUploadSlot, error) {
	if !principal.Permits(model.ActionCompleteOrder) {
		return nil, ErrPermissionDenied
	}
	if s.evidence == nil {
		return nil, errors.New("evidence storage is not configured")
	}
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.ExecutorID == nil || *order.ExecutorID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	key := s.evidence.ObjectKey(order.ID, filename)
	url, err := s.evidence.PresignUpload(ctx, key)
	if err != nil {
		return nil, err
	}

	return &EvidenceUploadSlot{
		UploadURL:   url,
		StoragePath: key,
		Bucket:      s.evidence.Bucket(),
	}, nil
}

func (s *OrderService) canAccessOrder(principal model.Principal, order *model.Order) bool {
	if principal.IsAdmin() {
		return true
	}
	if order.RequesterID == principal.UserID {
		return true
	}
	if order.ExecutorID != nil && *order.ExecutorID == principal.UserID {
		return true
	}
	if order.SupervisorID != nil && *order.SupervisorID == principal.UserID {
		return true
	}
	if order.CollaboratorID != nil && *order.CollaboratorID == principal.UserID {
		return true
	}
	// Los ejecutores ven las pendientes para poder tomarlas.
	if principal.Role == model.RoleExecutor && order.Status == model.OrderStatusPending {
		return true
	}
	return false
}
