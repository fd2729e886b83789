package handler

import (
	"github.com/shopspring/decimal"

	"foliogate/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// EditFieldRequest sets one field of a draft row.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required" example:"quantity"`
	Value string `json:"value" example:"12.5"`
}

// AddRowRequest is a manually entered draft transaction. Numbers may be
// sent as JSON numbers or numeric strings.
type AddRowRequest struct {
	Symbol    string          `json:"symbol" example:"AAPL"`
	TradeType string          `json:"trade_type" example:"Buy"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string" example:"10"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"187.25"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"1872.50"`
	Date      string          `json:"date" example:"2026-10-01"`
	Broker    string          `json:"broker" example:"Zerodha"`
	Currency  string          `json:"currency" example:"USD"`
	Notes     string          `json:"notes" example:"Monthly SIP"`
	Exchange  string          `json:"exchange" example:"NASDAQ"`
}

func (r AddRowRequest) toDraft() domain.TransactionDraft {
	return domain.TransactionDraft{
		Symbol:    r.Symbol,
		TradeType: domain.TradeType(r.TradeType),
		Quantity:  r.Quantity,
		Price:     r.Price,
		Amount:    r.Amount,
		Date:      r.Date,
		Broker:    r.Broker,
		Currency:  r.Currency,
		Notes:     r.Notes,
		Exchange:  r.Exchange,
	}
}

// DeleteTransactionsRequest lists transactions to delete.
type DeleteTransactionsRequest struct {
	IDs []string `json:"ids" example:"101,102"`
}

// --- Response Types ---

// DeletedResponse lists the IDs the portfolio service deleted.
type DeletedResponse struct {
	DeletedIDs []string `json:"deleted_ids" example:"101,102"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
