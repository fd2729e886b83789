package service

import (
	"context"
	"encoding/json"
	"net/url"

	"foliogate/internal/port"
)

// PortfolioService exposes the read-only reporting endpoints.
type PortfolioService interface {
	Summary(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
	HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error)
}

type portfolioService struct {
	api port.PortfolioAPI
}

// NewPortfolioService creates a new PortfolioService implementation.
func NewPortfolioService(api port.PortfolioAPI) PortfolioService {
	return &portfolioService{api: api}
}

func (s *portfolioService) Summary(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return s.api.PortfolioSummary(ctx, token, query)
}

func (s *portfolioService) Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return s.api.Holdings(ctx, token, query)
}

func (s *portfolioService) HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return s.api.HistoricalChart(ctx, token, query)
}
