package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"foliogate/internal/domain"
)

// envelope is the response shape of every portfolio API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	var s string
	if len(e.Detail) > 0 && json.Unmarshal(e.Detail, &s) == nil {
		return s
	}
	return ""
}

// flexDecimal accepts JSON numbers, numeric strings, empty strings and null.
type flexDecimal struct {
	decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		f.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", string(b), err)
	}
	f.Decimal = d
	return nil
}

// flexID accepts string or numeric identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(b), err)
	}
	*f = flexID(n.String())
	return nil
}

type extractedRow struct {
	Symbol    string      `json:"symbol"`
	TradeType string      `json:"trade_type"`
	Quantity  flexDecimal `json:"quantity"`
	Price     flexDecimal `json:"price"`
	Amount    flexDecimal `json:"amount"`
	Date      string      `json:"date"`
	Broker    string      `json:"broker"`
	Currency  string      `json:"currency"`
	Notes     string      `json:"notes"`
	Exchange  string      `json:"exchange"`
}

type extractData struct {
	TransactionCount int            `json:"transaction_count"`
	Transactions     []extractedRow `json:"transactions"`
}

func (d extractData) toResult() *domain.ExtractResult {
	out := &domain.ExtractResult{
		TransactionCount: d.TransactionCount,
		Transactions:     make([]domain.ExtractedTransaction, len(d.Transactions)),
	}
	for i, r := range d.Transactions {
		out.Transactions[i] = domain.ExtractedTransaction{
			Symbol:    strings.ToUpper(strings.TrimSpace(r.Symbol)),
			TradeType: normalizeTradeType(r.TradeType),
			Quantity:  r.Quantity.Decimal,
			Price:     r.Price.Decimal,
			Amount:    r.Amount.Decimal,
			Date:      strings.TrimSpace(r.Date),
			Broker:    r.Broker,
			Currency:  strings.ToUpper(strings.TrimSpace(r.Currency)),
			Notes:     r.Notes,
			Exchange:  strings.ToUpper(strings.TrimSpace(r.Exchange)),
		}
	}
	if out.TransactionCount == 0 {
		out.TransactionCount = len(out.Transactions)
	}
	return out
}

func normalizeTradeType(s string) domain.TradeType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sell":
		return domain.TradeTypeSell
	case "dividend", "dividends":
		return domain.TradeTypeDividends
	case "buy", "":
		return domain.TradeTypeBuy
	}
	return domain.TradeType(s)
}

// transactionPayload is the create-request row. The API expects plain JSON
// numbers for quantities and amounts.
type transactionPayload struct {
	Symbol    string  `json:"symbol"`
	TradeType string  `json:"trade_type"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Broker    string  `json:"broker,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	Exchange  string  `json:"exchange,omitempty"`
}

func toPayload(d domain.TransactionDraft) transactionPayload {
	return transactionPayload{
		Symbol:    d.Symbol,
		TradeType: string(d.TradeType),
		Quantity:  d.Quantity.InexactFloat64(),
		Price:     d.Price.InexactFloat64(),
		Amount:    d.Amount.InexactFloat64(),
		Date:      d.Date,
		Broker:    d.Broker,
		Currency:  d.Currency,
		Notes:     d.Notes,
		Exchange:  d.Exchange,
	}
}

type deleteData struct {
	DeletedIDs []flexID `json:"deleted_ids"`
	IDs        []flexID `json:"ids"`
}

func (d deleteData) ids() []string {
	src := d.DeletedIDs
	if len(src) == 0 {
		src = d.IDs
	}
	out := make([]string, len(src))
	for i, id := range src {
		out[i] = string(id)
	}
	return out
}

// numericIDs sends ids as numbers when every id is numeric.
func numericIDs(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			for j, s := range ids {
				out[j] = s
			}
			return out
		}
		out[i] = n
	}
	return out
}
