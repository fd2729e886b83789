package pipeline

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"foliogate/internal/domain"
)

// MaxTransactionAgeYears bounds how far back a transaction date may be.
const MaxTransactionAgeYears = 30

const (
	msgQuantityNaN = "Quantity must be a number"
	msgPriceNaN    = "Price must be a number"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a transaction date in any accepted layout.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateDate accepts dates in [today-30y, today], inclusive.
func ValidateDate(value string, now time.Time) string {
	if strings.TrimSpace(value) == "" {
		return "Date is required"
	}
	t, ok := ParseDate(value)
	if !ok {
		return "Invalid date format"
	}
	today := civilDate(now)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return "Date cannot be in the future"
	}
	if d.Before(today.AddDate(-MaxTransactionAgeYears, 0, 0)) {
		return "Date cannot be more than 30 years ago"
	}
	return ""
}

// ValidateQuantity rejects zero and non-numeric quantities. Dividends rows
// are not checked. Negative quantities are accepted.
func ValidateQuantity(tradeType domain.TradeType, raw string) string {
	if tradeType.IsDividends() {
		return ""
	}
	q, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return msgQuantityNaN
	}
	if q.IsZero() {
		return "Quantity cannot be zero"
	}
	return ""
}

// ValidatePrice rejects non-positive and non-numeric prices. Dividends rows
// are not checked.
func ValidatePrice(tradeType domain.TradeType, raw string) string {
	if tradeType.IsDividends() {
		return ""
	}
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return msgPriceNaN
	}
	if !p.IsPositive() {
		return "Price must be greater than zero"
	}
	return ""
}

// FieldValidator checks one field of a draft given the raw user input.
// It returns an empty string when the value is acceptable.
type FieldValidator func(d *domain.TransactionDraft, raw string, now time.Time) string

// Registry maps fields to their validators.
type Registry struct {
	validators map[domain.Field]FieldValidator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[domain.Field]FieldValidator)}
}

// Register adds a validator for a field, replacing any previous one.
func (r *Registry) Register(field domain.Field, v FieldValidator) {
	r.validators[field] = v
}

// Get returns the validator for a field, or nil.
func (r *Registry) Get(field domain.Field) FieldValidator {
	return r.validators[field]
}

// DefaultRegistry holds the date, quantity and price rules.
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(domain.FieldDate, func(_ *domain.TransactionDraft, raw string, now time.Time) string {
		return ValidateDate(raw, now)
	})
	r.Register(domain.FieldQuantity, func(d *domain.TransactionDraft, raw string, _ time.Time) string {
		return ValidateQuantity(d.TradeType, raw)
	})
	r.Register(domain.FieldPrice, func(d *domain.TransactionDraft, raw string, _ time.Time) string {
		return ValidatePrice(d.TradeType, raw)
	})
	return r
}()

// ValidateDraft re-runs every registered rule on the stored values of d.
func ValidateDraft(d *domain.TransactionDraft, fileIndex int, errs ErrorMap, now time.Time) {
	checks := []struct {
		field domain.Field
		raw   string
	}{
		{domain.FieldDate, d.Date},
		{domain.FieldQuantity, d.Quantity.String()},
		{domain.FieldPrice, d.Price.String()},
	}
	for _, c := range checks {
		key := domain.ValidationKey{FileIndex: fileIndex, RowID: d.ID, Field: c.field}
		errs.Clear(key)
		if v := DefaultRegistry.Get(c.field); v != nil {
			if msg := v(d, c.raw, now); msg != "" {
				errs.Set(key, msg)
			}
		}
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
