// Package export writes transaction history as CSV or XLSX.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one transaction of the exported history.
type Row struct {
	ID        string
	Date      string
	Symbol    string
	TradeType string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Amount    decimal.Decimal
	Currency  string
	Broker    string
	Exchange  string
	Notes     string
	CreatedAt string
}

// ParseHistory decodes the transaction list returned by the portfolio API.
// Both a bare array and an object with a "transactions" or "items" array
// are accepted. Numbers may be JSON numbers or numeric strings.
func ParseHistory(raw json.RawMessage) ([]Row, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Row{}, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Transactions []map[string]any `json:"transactions"`
			Items        []map[string]any `json:"items"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("decoding transaction history: %w", err2)
		}
		items = wrapped.Transactions
		if items == nil {
			items = wrapped.Items
		}
	}

	rows := make([]Row, 0, len(items))
	for i, it := range items {
		qty, err := decimalField(it, "quantity")
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		price, err := decimalField(it, "price")
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		amount, err := decimalField(it, "amount")
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		rows = append(rows, Row{
			ID:        stringField(it, "id"),
			Date:      stringField(it, "date"),
			Symbol:    stringField(it, "symbol"),
			TradeType: stringField(it, "trade_type"),
			Quantity:  qty,
			Price:     price,
			Amount:    amount,
			Currency:  stringField(it, "currency"),
			Broker:    stringField(it, "broker"),
			Exchange:  stringField(it, "exchange"),
			Notes:     stringField(it, "notes"),
			CreatedAt: stringField(it, "created_at"),
		})
	}
	return rows, nil
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

func decimalField(m map[string]any, key string) (decimal.Decimal, error) {
	switch v := m[key].(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s %q", key, v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid %s of type %T", key, v)
	}
}
