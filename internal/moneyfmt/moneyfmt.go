// Package moneyfmt renders decimal amounts with ISO 4217 currency rules.
package moneyfmt

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders amount in the currency's own notation, e.g. "$1,872.50".
// Unknown currencies fall back to "<amount> <code>" with two decimals.
func Format(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Total sums amounts that share one currency. Mixed currencies yield ok=false.
func Total(amounts []decimal.Decimal, currencies []string) (sum decimal.Decimal, currency string, ok bool) {
	sum = decimal.Zero
	for i, a := range amounts {
		c := ""
		if i < len(currencies) {
			c = strings.ToUpper(strings.TrimSpace(currencies[i]))
		}
		switch {
		case currency == "":
			currency = c
		case c != "" && c != currency:
			return decimal.Zero, "", false
		}
		sum = sum.Add(a)
	}
	return sum, currency, true
}
