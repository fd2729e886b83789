package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWEBP,
}

// FileStatus is the lifecycle of one file inside an import pipeline.
type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusError      FileStatus = "error"
)

// IsTerminal reports whether no further transitions are expected.
func (s FileStatus) IsTerminal() bool {
	return s == FileStatusCompleted || s == FileStatusError
}

// Valid reports whether s is a known status.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusProcessing, FileStatusCompleted, FileStatusError:
		return true
	}
	return false
}

// TradeType is the kind of a transaction as the portfolio API names it.
type TradeType string

const (
	TradeTypeBuy       TradeType = "Buy"
	TradeTypeSell      TradeType = "Sell"
	TradeTypeDividends TradeType = "Dividends"
)

// IsDividends reports whether quantity/price rules are skipped for this type.
func (t TradeType) IsDividends() bool {
	return t == TradeTypeDividends
}

// Field names a user-editable column of a transaction draft.
type Field string

const (
	FieldSymbol    Field = "symbol"
	FieldTradeType Field = "trade_type"
	FieldQuantity  Field = "quantity"
	FieldPrice     Field = "price"
	FieldAmount    Field = "amount"
	FieldDate      Field = "date"
	FieldBroker    Field = "broker"
	FieldCurrency  Field = "currency"
	FieldNotes     Field = "notes"
	FieldExchange  Field = "exchange"
)

// EditableFields lists every field accepted by the edit endpoints.
var EditableFields = map[Field]bool{
	FieldSymbol:    true,
	FieldTradeType: true,
	FieldQuantity:  true,
	FieldPrice:     true,
	FieldAmount:    true,
	FieldDate:      true,
	FieldBroker:    true,
	FieldCurrency:  true,
	FieldNotes:     true,
	FieldExchange:  true,
}

// ImportStatus is the outcome recorded in the import audit log.
type ImportStatus string

const (
	ImportStatusSucceeded ImportStatus = "succeeded"
	ImportStatusFailed    ImportStatus = "failed"
)

// EventType names a pipeline notification.
type EventType string

const (
	EventFileStatus      EventType = "file_status"
	EventReviewReady     EventType = "review_ready"
	EventFileCleared     EventType = "file_cleared"
	EventPipelineCleared EventType = "pipeline_cleared"
)
