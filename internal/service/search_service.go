package service

import (
	"foliogate/internal/search"
)

// SearchService answers symbol and broker lookups.
type SearchService interface {
	Symbols(query string) []search.Result[search.Symbol]
	Brokers(query string) []search.Result[search.Broker]
}

type searchService struct {
	catalog *search.Catalog
}

// NewSearchService creates a new SearchService over a catalog.
func NewSearchService(catalog *search.Catalog) SearchService {
	if catalog == nil {
		catalog = &search.Catalog{}
	}
	return &searchService{catalog: catalog}
}

func (s *searchService) Symbols(query string) []search.Result[search.Symbol] {
	return s.catalog.SearchSymbols(query)
}

func (s *searchService) Brokers(query string) []search.Result[search.Broker] {
	return s.catalog.SearchBrokers(query)
}
