package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"

	"foliogate/internal/domain"
	"foliogate/internal/export"
	"foliogate/internal/port"
)

// TransactionService passes transaction history calls through to the
// portfolio API and renders exports.
type TransactionService interface {
	List(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	Update(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, token, id string) ([]string, error)
	DeleteMany(ctx context.Context, token string, ids []string) ([]string, error)
	Export(ctx context.Context, token string, format export.Format, query url.Values, w io.Writer) (int, error)
}

type transactionService struct {
	api port.PortfolioAPI
}

// NewTransactionService creates a new TransactionService implementation.
func NewTransactionService(api port.PortfolioAPI) TransactionService {
	return &transactionService{api: api}
}

func (s *transactionService) List(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return s.api.ListTransactions(ctx, token, query)
}

func (s *transactionService) Update(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, domain.ErrInvalidBody
	}
	return s.api.UpdateTransaction(ctx, token, id, body)
}

func (s *transactionService) Delete(ctx context.Context, token, id string) ([]string, error) {
	return s.api.DeleteTransaction(ctx, token, id)
}

func (s *transactionService) DeleteMany(ctx context.Context, token string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return s.api.DeleteTransactions(ctx, token, ids)
}

// Export fetches the history and writes it in the given format. It returns
// the number of exported transactions.
func (s *transactionService) Export(ctx context.Context, token string, format export.Format, query url.Values, w io.Writer) (int, error) {
	raw, err := s.api.ListTransactions(ctx, token, query)
	if err != nil {
		return 0, err
	}
	rows, err := export.ParseHistory(raw)
	if err != nil {
		return 0, err
	}
	if err := export.Write(w, format, rows); err != nil {
		return 0, fmt.Errorf("writing %s export: %w", format, err)
	}
	log.Printf("transactionService.Export: exported %d transactions as %s", len(rows), format)
	return len(rows), nil
}
