package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UploadedFile is a registered upload held in serializable form.
// DataURL has the shape "data:<mime>;base64,<payload>".
type UploadedFile struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
	DataURL      string    `json:"-"`
	ArchiveKey   string    `json:"archive_key,omitempty"`
}

// ExtractedTransaction is one row returned by the extraction service.
type ExtractedTransaction struct {
	Symbol    string          `json:"symbol"`
	TradeType TradeType       `json:"trade_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Broker    string          `json:"broker"`
	Currency  string          `json:"currency"`
	Notes     string          `json:"notes"`
	Exchange  string          `json:"exchange"`
}

// ExtractResult is the extraction service output for one file.
type ExtractResult struct {
	TransactionCount int                    `json:"transaction_count"`
	Transactions     []ExtractedTransaction `json:"transactions"`
}

// TransactionDraft is a reviewable row that has not been sent to the
// portfolio service yet.
type TransactionDraft struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	TradeType TradeType       `json:"trade_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Broker    string          `json:"broker"`
	Currency  string          `json:"currency"`
	Notes     string          `json:"notes"`
	Exchange  string          `json:"exchange"`
}

// DraftFromExtracted builds a draft with the given local id.
func DraftFromExtracted(id string, tx ExtractedTransaction) TransactionDraft {
	return TransactionDraft{
		ID:        id,
		Symbol:    tx.Symbol,
		TradeType: tx.TradeType,
		Quantity:  tx.Quantity,
		Price:     tx.Price,
		Amount:    tx.Amount,
		Date:      tx.Date,
		Broker:    tx.Broker,
		Currency:  tx.Currency,
		Notes:     tx.Notes,
		Exchange:  tx.Exchange,
	}
}

// FileProcessingState tracks one uploaded file through extraction and review.
type FileProcessingState struct {
	File     UploadedFile       `json:"file"`
	Status   FileStatus         `json:"status"`
	Progress int                `json:"progress"`
	Result   *ExtractResult     `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
	Cleared  bool               `json:"cleared"`
	Drafts   []TransactionDraft `json:"drafts,omitempty"`
	Excluded map[string]bool    `json:"excluded,omitempty"`
}

// ValidationKey identifies one field of one row of one file. Batch rows use
// FileIndex -1.
type ValidationKey struct {
	FileIndex int    `json:"file_index"`
	RowID     string `json:"row_id"`
	Field     Field  `json:"field"`
}

// ValidationError is the serialized form of a ValidationErrorMap entry.
type ValidationError struct {
	ValidationKey
	Message string `json:"message"`
}

// ImportRecord is one entry of the import audit log.
type ImportRecord struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	SessionID        uuid.UUID    `db:"session_id" json:"session_id"`
	OwnerID          string       `db:"owner_id" json:"owner_id"`
	Source           string       `db:"source" json:"source"`
	FileName         string       `db:"file_name" json:"file_name"`
	TransactionCount int          `db:"transaction_count" json:"transaction_count"`
	Status           ImportStatus `db:"status" json:"status"`
	Error            string       `db:"error" json:"error"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
}

// Event is a pipeline notification delivered to subscribers.
type Event struct {
	Type      EventType  `json:"type"`
	SessionID uuid.UUID  `json:"session_id"`
	FileIndex *int       `json:"file_index,omitempty"`
	Status    FileStatus `json:"status,omitempty"`
	Progress  int        `json:"progress,omitempty"`
	Error     string     `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Principal is the authenticated caller on whose behalf upstream calls are made.
type Principal struct {
	Subject string
	Email   string
	Name    string
	Token   string
}
