package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"maintenance-service/internal/http/middleware"
	"maintenance-service/internal/model"
	"maintenance-service/internal/repository"
	"maintenance-service/internal/service"
)

type Handler struct {
	orderService     *service.OrderService
	inventoryService *service.InventoryService
	logbookService   *service.LogbookService
	log              zerolog.Logger
}

func NewHandler(
	orderService *service.OrderService,
	inventoryService *service.InventoryService,
	logbookService *service.LogbookService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		orderService:     orderService,
		inventoryService: inventoryService,
		logbookService:   logbookService,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	orders := protected.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrderDetails)
		orders.PUT("/:id/assign", h.assignOrder)
		orders.PUT("/:id/complete", h.completeOrder)
		orders.POST("/:id/approval", h.submitApproval)
		orders.PUT("/:id/reject", h.rejectOrder)
		orders.POST("/:id/requester-rating", h.rateRequester)
		orders.POST("/:id/evidence-uploads", h.createEvidenceUpload)
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("/items", h.listInventoryItems)
		inventory.GET("/items/:id", h.getInventoryItem)
	}

	logbooks := protected.Group("/logbooks")
	{
		logbooks.GET("", h.listLogbooks)
		logbooks.POST("/:id/readings", h.recordReading)
		logbooks.GET("/:id/readings", h.listReadings)
	}
}

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Title          string            `json:"title" binding:"required"`
		Description    string            `json:"description" binding:"required"`
		Type           string            `json:"type" binding:"required"`
		Priority       string            `json:"priority" binding:"required"`
		ScheduledFor   string            `json:"scheduled_for"`
		SupervisorID   string            `json:"supervisor_id"`
		CollaboratorID string            `json:"collaborator_id"`
		Metadata       map[string]string `json:"metadata"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), principal, service.CreateOrderInput{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Priority:       req.Priority,
		ScheduledFor:   req.ScheduledFor,
		SupervisorID:   req.SupervisorID,
		CollaboratorID: req.CollaboratorID,
		Metadata:       req.Metadata,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.OrderListFilter{}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := model.OrderStatus(strings.ToUpper(status))
		filter.Status = &s
	}
	if approval := strings.TrimSpace(c.Query("approval_status")); approval != "" {
		a := model.ApprovalStatus(strings.ToUpper(approval))
		filter.ApprovalStatus = &a
	}
	if orderType := strings.TrimSpace(c.Query("type")); orderType != "" {
		t := model.OrderType(strings.ToUpper(orderType))
		filter.Type = &t
	}
	if priority := strings.TrimSpace(c.Query("priority")); priority != "" {
		p := model.OrderPriority(strings.ToUpper(priority))
		filter.Priority = &p
	}

	orders, err := h.orderService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(orders))
}

func (h *Handler) getOrderDetails(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	details, err := h.orderService.GetDetails(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

func (h *Handler) assignOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	order, err := h.orderService.AssignToExecutor(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) completeOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		WorkPerformed string `json:"work_performed" binding:"required"`
		ResourcesUsed string `json:"resources_used"`
		Evidence      []struct {
			URL         string `json:"url"`
			StoragePath string `json:"storage_path" binding:"required"`
			Bucket      string `json:"bucket"`
			Kind        string `json:"kind" binding:"required"`
			Filename    string `json:"filename" binding:"required"`
		} `json:"evidence" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CompleteOrderInput{
		WorkPerformed: req.WorkPerformed,
		ResourcesUsed: req.ResourcesUsed,
	}
	for _, e := range req.Evidence {
		input.Evidence = append(input.Evidence, service.EvidenceInput{
			URL:         e.URL,
			StoragePath: e.StoragePath,
			Bucket:      e.Bucket,
			Kind:        e.Kind,
			Filename:    e.Filename,
		})
	}

	order, err := h.orderService.MarkCompleted(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) submitApproval(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		Approved *bool  `json:"approved" binding:"required"`
		Rating   *int   `json:"rating"`
		Comments string `json:"comments"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.SubmitApproval(c.Request.Context(), principal, id, service.SubmitApprovalInput{
		Approved: *req.Approved,
		Rating:   req.Rating,
		Comments: req.Comments,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) rejectOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	order, err := h.orderService.Reject(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) rateRequester(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		Rating   int    `json:"rating" binding:"required"`
		Feedback string `json:"feedback"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.RateRequester(c.Request.Context(), principal, id, req.Rating, req.Feedback)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) createEvidenceUpload(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		Filename string `json:"filename" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	slot, err := h.orderService.EvidenceUploadURL(c.Request.Context(), principal, id, req.Filename)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(slot))
}

func (h *Handler) listInventoryItems(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.ItemListFilter{}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}
	if location := strings.TrimSpace(c.Query("location")); location != "" {
		filter.Location = &location
	}
	if c.Query("low_stock") == "true" {
		filter.LowStock = true
	}

	items, err := h.inventoryService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(items))
}

func (h *Handler) getInventoryItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	item, err := h.inventoryService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(item))
}

func (h *Handler) listLogbooks(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	logbooks, err := h.logbookService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(logbooks))
}

func (h *Handler) recordReading(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		Value *float64 `json:"value" binding:"required"`
		Note  string   `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	reading, err := h.logbookService.RecordReading(c.Request.Context(), principal, id, service.RecordReadingInput{
		Value: *req.Value,
		Note:  req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(reading))
}

func (h *Handler) listReadings(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	readings, err := h.logbookService.ListReadings(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(readings))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
