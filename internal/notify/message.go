// Package notify renders import confirmation messages. Delivery lives in the
// ses and noop subpackages.
package notify

import (
	"fmt"
	"html"
	"strings"

	"foliogate/internal/moneyfmt"
	"foliogate/internal/port"
)

// Message is a rendered confirmation.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// HistoryURL is the page the confirmation links to.
func HistoryURL(frontendURL string) string {
	return strings.TrimRight(frontendURL, "/") + "/transactions"
}

// BuildConfirmation renders the confirmation for one import. The total is
// shown only when every row shared a currency.
func BuildConfirmation(toName string, summary port.ImportSummary, frontendURL string) Message {
	if toName == "" {
		toName = "there"
	}
	noun := "transactions"
	if summary.TransactionCount == 1 {
		noun = "transaction"
	}
	headline := fmt.Sprintf("%d %s imported from %s", summary.TransactionCount, noun, summary.FileName)

	total := ""
	if !summary.TotalAmount.IsZero() {
		total = moneyfmt.Format(summary.TotalAmount, summary.Currency)
	}
	link := HistoryURL(frontendURL)

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n%s.\n", toName, headline)
	if total != "" {
		fmt.Fprintf(&text, "Total amount: %s\n", total)
	}
	fmt.Fprintf(&text, "\nReview them in your transaction history:\n%s\n\nFoliogate", link)

	totalHTML := ""
	if total != "" {
		totalHTML = fmt.Sprintf(`<p>Total amount: <strong>%s</strong></p>`, html.EscapeString(total))
	}
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Import complete</h2>
  <p>Hi %s,</p>
  <p>%s.</p>
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View transactions</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Foliogate</p>
</body>
</html>`, html.EscapeString(toName), html.EscapeString(headline), totalHTML, html.EscapeString(link))

	return Message{
		Subject: fmt.Sprintf("Import complete: %d %s", summary.TransactionCount, noun),
		Text:    text.String(),
		HTML:    body,
	}
}
