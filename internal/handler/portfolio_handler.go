package handler

import (
	"github.com/gin-gonic/gin"

	"foliogate/internal/service"
)

// PortfolioHandler passes reporting endpoints through to the portfolio service.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Summary handles GET /api/v1/portfolio/summary
// @Summary Portfolio summary
// @Tags portfolio
// @Produce json
// @Success 200 {object} Response "Summary"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 502 {object} ErrorResponseBody "Portfolio service unavailable"
// @Security BearerAuth
// @Router /portfolio/summary [get]
func (h *PortfolioHandler) Summary(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	data, err := h.portfolioService.Summary(c.Request.Context(), principal.Token, c.Request.URL.Query())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, data)
}

// Holdings handles GET /api/v1/portfolio/holdings
// @Summary Portfolio holdings
// @Tags portfolio
// @Produce json
// @Success 200 {object} Response "Holdings"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 502 {object} ErrorResponseBody "Portfolio service unavailable"
// @Security BearerAuth
// @Router /portfolio/holdings [get]
func (h *PortfolioHandler) Holdings(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	data, err := h.portfolioService.Holdings(c.Request.Context(), principal.Token, c.Request.URL.Query())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, data)
}

// HistoricalChart handles GET /api/v1/portfolio/historical-chart
// @Summary Portfolio value over time
// @Description Query parameters (for example period) are forwarded unchanged
// @Tags portfolio
// @Produce json
// @Success 200 {object} Response "Chart series"
// @Failure 401 {object} ErrorResponseBody "Unauthorized or session expired"
// @Failure 502 {object} ErrorResponseBody "Portfolio service unavailable"
// @Security BearerAuth
// @Router /portfolio/historical-chart [get]
func (h *PortfolioHandler) HistoricalChart(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}

	data, err := h.portfolioService.HistoricalChart(c.Request.Context(), principal.Token, c.Request.URL.Query())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, data)
}
