package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foliogate/internal/export"
	"foliogate/internal/service"
)

// TransactionHandler passes transaction history calls through to the
// portfolio service.
type TransactionHandler struct {
	transactionService service.TransactionService
	now                func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, now: time.Now}
}

// List handles GET /api/v1/transactions
// @Summary List transactions
// @Description Transaction history from the portfolio service. Query parameters are forwarded unchanged.
// @Tags transactions
// @Produce json
// @Success 200 {object} Response "Transaction history"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 502 {object} ErrorResponseBody "Portfolio service unavailable"
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	data, err := h.transactionService.List(c.Request.Context(), principal.Token, c.Request.URL.Query())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, data)
}

// Update handles PUT /api/v1/transactions/:id
// @Summary Update a transaction
// @Description The body is forwarded to the portfolio service unchanged
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param body body object true "Transaction fields"
// @Success 200 {object} Response "Updated transaction"
// @Failure 400 {object} ErrorResponseBody "Invalid body"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 404 {object} ErrorResponseBody "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	data, err := h.transactionService.Update(c.Request.Context(), principal.Token, c.Param("id"), json.RawMessage(body))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, data)
}

// Delete handles DELETE /api/v1/transactions/:id
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response{data=DeletedResponse} "Deleted IDs"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 404 {object} ErrorResponseBody "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	ids, err := h.transactionService.Delete(c.Request.Context(), principal.Token, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DeletedResponse{DeletedIDs: ids})
}

// DeleteMany handles DELETE /api/v1/transactions
// @Summary Delete several transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body DeleteTransactionsRequest true "IDs to delete"
// @Success 200 {object} Response{data=DeletedResponse} "Deleted IDs"
// @Failure 400 {object} ErrorResponseBody "No IDs provided"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Security BearerAuth
// @Router /transactions [delete]
func (h *TransactionHandler) DeleteMany(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	var req DeleteTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ids, err := h.transactionService.DeleteMany(c.Request.Context(), principal.Token, req.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DeletedResponse{DeletedIDs: ids})
}

// Export handles GET /api/v1/transactions/export
// @Summary Export transactions
// @Description Download the transaction history as CSV or XLSX. Other query parameters are forwarded as history filters.
// @Tags transactions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param name query string false "File name prefix" default(transactions)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Security BearerAuth
// @Router /transactions/export [get]
func (h *TransactionHandler) Export(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		HandleError(c, err)
		return
	}

	query := c.Request.URL.Query()
	name := query.Get("name")
	query.Del("format")
	query.Del("name")

	var buf bytes.Buffer
	if _, err := h.transactionService.Export(c.Request.Context(), principal.Token, format, query, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(name, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
