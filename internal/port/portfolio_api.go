package port

import (
	"context"
	"encoding/json"
	"net/url"

	"foliogate/internal/domain"
)

// ExtractInput carries one file to the extraction endpoint.
type ExtractInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateOutput is the data returned by a batch create.
type CreateOutput struct {
	Message      string          `json:"message"`
	Count        int             `json:"count"`
	Transactions json.RawMessage `json:"transactions"`
}

// PortfolioAPI abstracts the external portfolio API server. Every call is
// made with the caller's bearer token.
type PortfolioAPI interface {
	ExtractTransactions(ctx context.Context, token string, input ExtractInput) (*domain.ExtractResult, error)
	CreateTransactions(ctx context.Context, token string, drafts []domain.TransactionDraft) (*CreateOutput, error)
	UpdateTransaction(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error)
	DeleteTransaction(ctx context.Context, token, id string) ([]string, error)
	DeleteTransactions(ctx context.Context, token string, ids []string) ([]string, error)
	ListTransactions(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	PortfolioSummary(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
}
