package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// ImportSummary describes a completed import for the confirmation message.
type ImportSummary struct {
	FileName         string
	TransactionCount int
	Currency         string
	TotalAmount      decimal.Decimal
}

// ImportNotifier sends import confirmations to the caller.
type ImportNotifier interface {
	SendImportConfirmation(ctx context.Context, toEmail, toName string, summary ImportSummary) error
}
