package notify_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"foliogate/internal/notify"
	"foliogate/internal/port"
)

func TestBuildConfirmation_WithTotal(t *testing.T) {
	msg := notify.BuildConfirmation("Ada", port.ImportSummary{
		FileName:         "robinhood.png",
		TransactionCount: 3,
		Currency:         "USD",
		TotalAmount:      decimal.RequireFromString("1872.5"),
	}, "https://app.example.com/")

	assert.Equal(t, "Import complete: 3 transactions", msg.Subject)
	assert.Contains(t, msg.Text, "Hi Ada,")
	assert.Contains(t, msg.Text, "3 transactions imported from robinhood.png")
	assert.Contains(t, msg.Text, "Total amount: $1,872.50")
	assert.Contains(t, msg.Text, "https://app.example.com/transactions")
	assert.Contains(t, msg.HTML, `href="https://app.example.com/transactions"`)
}

func TestBuildConfirmation_SingleRowNoTotal(t *testing.T) {
	msg := notify.BuildConfirmation("", port.ImportSummary{
		FileName:         "mixed.png",
		TransactionCount: 1,
	}, "http://localhost:3000")

	assert.Equal(t, "Import complete: 1 transaction", msg.Subject)
	assert.Contains(t, msg.Text, "Hi there,")
	assert.NotContains(t, msg.Text, "Total amount")
	assert.NotContains(t, msg.HTML, "Total amount")
}

func TestBuildConfirmation_EscapesHTML(t *testing.T) {
	msg := notify.BuildConfirmation("<b>Eve</b>", port.ImportSummary{
		FileName:         "a<script>.png",
		TransactionCount: 2,
	}, "http://localhost:3000")

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, msg.Text, "a<script>.png")
}

func TestHistoryURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/transactions", notify.HistoryURL("http://localhost:3000"))
	assert.Equal(t, "http://localhost:3000/transactions", notify.HistoryURL("http://localhost:3000/"))
}
