package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foliogate/internal/domain"
	"foliogate/internal/service"
)

// BatchHandler handles manually entered transaction batches.
type BatchHandler struct {
	batchService service.BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Create handles POST /api/v1/batches
// @Summary Create a batch
// @Description Start an empty batch of manually entered transactions
// @Tags batches
// @Produce json
// @Success 201 {object} Response{data=pipeline.BatchView} "Batch created"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /batches [post]
func (h *BatchHandler) Create(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	view, err := h.batchService.Create(c.Request.Context(), principal.Subject)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// Get handles GET /api/v1/batches/:id
// @Summary Get a batch
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} Response{data=pipeline.BatchView} "Batch"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [get]
func (h *BatchHandler) Get(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	view, err := h.batchService.Get(c.Request.Context(), principal.Subject, batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// AddRow handles POST /api/v1/batches/:id/rows
// @Summary Add a row
// @Description Add a draft transaction. The amount is computed from quantity and price except for Dividends rows.
// @Tags batches
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Param body body AddRowRequest true "Draft transaction"
// @Success 201 {object} Response{data=service.RowEdit} "Row added with its validation errors"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/rows [post]
func (h *BatchHandler) AddRow(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	var req AddRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	edit, err := h.batchService.AddRow(c.Request.Context(), principal.Subject, batchID, req.toDraft())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, edit)
}

// EditRow handles PATCH /api/v1/batches/:id/rows/:row
// @Summary Edit a batch row field
// @Tags batches
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Param row path string true "Row ID"
// @Param body body EditFieldRequest true "Field and new value"
// @Success 200 {object} Response{data=service.RowEdit} "Updated row and its validation errors"
// @Failure 400 {object} ErrorResponseBody "Invalid request or unknown field"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Batch or row not found"
// @Security BearerAuth
// @Router /batches/{id}/rows/{row} [patch]
func (h *BatchHandler) EditRow(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	edit, err := h.batchService.EditRow(c.Request.Context(), principal.Subject, batchID, c.Param("row"), domain.Field(req.Field), req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, edit)
}

// RemoveRow handles DELETE /api/v1/batches/:id/rows/:row
// @Summary Remove a batch row
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID"
// @Param row path string true "Row ID"
// @Success 200 {object} Response "Row removed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Batch or row not found"
// @Security BearerAuth
// @Router /batches/{id}/rows/{row} [delete]
func (h *BatchHandler) RemoveRow(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	if err := h.batchService.RemoveRow(c.Request.Context(), principal.Subject, batchID, c.Param("row")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "row removed"})
}

// Submit handles POST /api/v1/batches/:id/submit
// @Summary Submit a batch
// @Description Send every valid row to the portfolio service. Rows with validation errors stay in the batch.
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} Response{data=pipeline.BatchOutcome} "Rows submitted"
// @Failure 400 {object} ErrorResponseBody "No valid rows"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 404 {object} ErrorResponseBody "Batch not found"
// @Failure 502 {object} ErrorResponseBody "Portfolio service rejected the rows"
// @Security BearerAuth
// @Router /batches/{id}/submit [post]
func (h *BatchHandler) Submit(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	outcome, err := h.batchService.Submit(c.Request.Context(), principal, batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}

// Discard handles DELETE /api/v1/batches/:id
// @Summary Discard a batch
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} Response "Batch discarded"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [delete]
func (h *BatchHandler) Discard(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	if err := h.batchService.Discard(c.Request.Context(), principal.Subject, batchID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "batch discarded"})
}
