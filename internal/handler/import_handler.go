package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/service"
)

// multipartMemory is how much of an upload gin keeps in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// ImportHandler handles screenshot upload, review and import endpoints.
type ImportHandler struct {
	importService service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Start handles POST /api/v1/imports
// @Summary Upload broker screenshots
// @Description Register up to 10 files and start extracting transactions from each in parallel
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param files[] formData file true "Screenshots or statements (PDF, JPG, PNG, WEBP)"
// @Param last_modified[] formData int false "Last-modified time of each file in unix milliseconds, in file order"
// @Success 201 {object} Response{data=pipeline.Snapshot} "Import session started"
// @Failure 400 {object} ErrorResponseBody "No files, too many files, unreadable or unsupported file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /imports [post]
func (h *ImportHandler) Start(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "multipart form with files[] is required")
		return
	}
	form := c.Request.MultipartForm
	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required")
		return
	}

	modified := form.Value["last_modified[]"]
	files := make([]pipeline.RawFile, len(headers))
	for i, fh := range headers {
		files[i] = rawFileFromHeader(fh, lastModifiedAt(modified, i))
	}

	snap, err := h.importService.Start(c.Request.Context(), service.StartImportInput{
		Principal: principal,
		Files:     files,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, snap)
}

func rawFileFromHeader(fh *multipart.FileHeader, modified time.Time) pipeline.RawFile {
	return pipeline.RawFile{
		Name:         fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		LastModified: modified,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// lastModifiedAt reads the i-th unix-millisecond timestamp, or zero time.
func lastModifiedAt(values []string, i int) time.Time {
	if i >= len(values) {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(values[i], 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Get handles GET /api/v1/imports/:id
// @Summary Get import session
// @Description Current statuses, drafts and validation errors of every file in the session
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Success 200 {object} Response{data=pipeline.Snapshot} "Session snapshot"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /imports/{id} [get]
func (h *ImportHandler) Get(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	snap, err := h.importService.Get(c.Request.Context(), principal.Subject, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, snap)
}

// Review handles GET /api/v1/imports/:id/files/:index
// @Summary Review one file
// @Description Extracted rows, exclusions and validation errors of one file. An errored file returns no rows and its error message.
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Param index path int true "File index"
// @Success 200 {object} Response{data=pipeline.ReviewView} "Review view"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or index"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session or file not found"
// @Failure 409 {object} ErrorResponseBody "File already imported or discarded"
// @Security BearerAuth
// @Router /imports/{id}/files/{index} [get]
func (h *ImportHandler) Review(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	view, err := h.importService.Review(c.Request.Context(), principal.Subject, sessionID, index)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// EditRow handles PATCH /api/v1/imports/:id/files/:index/rows/:row
// @Summary Edit a row field
// @Description Set one field of an extracted row and re-validate it. Quantity and price edits recompute the amount except for Dividends rows.
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Import session ID"
// @Param index path int true "File index"
// @Param row path string true "Row ID"
// @Param body body EditFieldRequest true "Field and new value"
// @Success 200 {object} Response{data=service.RowEdit} "Updated row and its validation errors"
// @Failure 400 {object} ErrorResponseBody "Invalid request or unknown field"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session, file or row not found"
// @Security BearerAuth
// @Router /imports/{id}/files/{index}/rows/{row} [patch]
func (h *ImportHandler) EditRow(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	edit, err := h.importService.EditRow(c.Request.Context(), service.EditRowInput{
		OwnerID:   principal.Subject,
		SessionID: sessionID,
		FileIndex: index,
		RowID:     c.Param("row"),
		Field:     domain.Field(req.Field),
		Value:     req.Value,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, edit)
}

// ExcludeRow handles DELETE /api/v1/imports/:id/files/:index/rows/:row
// @Summary Exclude a row
// @Description Leave a row out of the import of its file
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Param index path int true "File index"
// @Param row path string true "Row ID"
// @Success 200 {object} Response "Row excluded"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session, file or row not found"
// @Security BearerAuth
// @Router /imports/{id}/files/{index}/rows/{row} [delete]
func (h *ImportHandler) ExcludeRow(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	if err := h.importService.ExcludeRow(c.Request.Context(), principal.Subject, sessionID, index, c.Param("row")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "row excluded"})
}

// Import handles POST /api/v1/imports/:id/files/:index/import
// @Summary Import a reviewed file
// @Description Send the valid, non-excluded rows of one file to the portfolio service. On failure nothing changes and the call can be retried.
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Param index path int true "File index"
// @Success 200 {object} Response{data=pipeline.ImportOutcome} "Rows imported; next file to review"
// @Failure 400 {object} ErrorResponseBody "No valid rows to import"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 404 {object} ErrorResponseBody "Session or file not found"
// @Failure 409 {object} ErrorResponseBody "File not completed, cleared, or import in progress"
// @Failure 502 {object} ErrorResponseBody "Portfolio service rejected the import"
// @Security BearerAuth
// @Router /imports/{id}/files/{index}/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	outcome, err := h.importService.ImportFile(c.Request.Context(), principal, sessionID, index)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}

// DiscardFile handles DELETE /api/v1/imports/:id/files/:index
// @Summary Discard a file
// @Description Drop one file from the session without importing it
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Param index path int true "File index"
// @Success 200 {object} Response "File discarded"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session or file not found"
// @Security BearerAuth
// @Router /imports/{id}/files/{index} [delete]
func (h *ImportHandler) DiscardFile(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	if err := h.importService.DiscardFile(c.Request.Context(), principal.Subject, sessionID, index); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "file discarded"})
}

// Clear handles DELETE /api/v1/imports/:id
// @Summary Clear an import session
// @Description Discard every file of the session. Extractions still running are ignored when they finish.
// @Tags imports
// @Produce json
// @Param id path string true "Import session ID"
// @Success 200 {object} Response "Session cleared"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /imports/{id} [delete]
func (h *ImportHandler) Clear(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}

	if err := h.importService.Clear(c.Request.Context(), principal.Subject, sessionID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "import session cleared"})
}

// History handles GET /api/v1/imports/history
// @Summary List past imports
// @Description Audit log of import submissions made by the caller, newest first
// @Tags imports
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ImportRecord,meta=PagMeta} "Import history"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /imports/history [get]
func (h *ImportHandler) History(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	records, total, err := h.importService.History(c.Request.Context(), principal.Subject, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}
