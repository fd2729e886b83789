package handler

import (
	"github.com/gin-gonic/gin"

	"foliogate/internal/service"
)

// SearchHandler serves symbol and broker lookups for the entry forms.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Symbols handles GET /api/v1/search/symbols
// @Summary Search symbols
// @Description Fuzzy match on ticker and company name. At most 10 results, best first. An empty query returns nothing.
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} Response{data=[]search.Result[search.Symbol]} "Matches"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /search/symbols [get]
func (h *SearchHandler) Symbols(c *gin.Context) {
	if _, ok := extractPrincipal(c); !ok {
		return
	}
	RespondOK(c, h.searchService.Symbols(c.Query("q")))
}

// Brokers handles GET /api/v1/search/brokers
// @Summary Search brokers
// @Description Fuzzy match on broker name and aliases
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} Response{data=[]search.Result[search.Broker]} "Matches"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /search/brokers [get]
func (h *SearchHandler) Brokers(c *gin.Context) {
	if _, ok := extractPrincipal(c); !ok {
		return
	}
	RespondOK(c, h.searchService.Brokers(c.Query("q")))
}
