package noop

import (
	"context"
	"log"

	"foliogate/internal/notify"
	"foliogate/internal/port"
)

type noopNotifier struct {
	frontendURL string
}

// NewNoopNotifier creates an ImportNotifier that only logs the confirmation.
func NewNoopNotifier(frontendURL string) port.ImportNotifier {
	return &noopNotifier{frontendURL: frontendURL}
}

func (n *noopNotifier) SendImportConfirmation(_ context.Context, toEmail, toName string, summary port.ImportSummary) error {
	msg := notify.BuildConfirmation(toName, summary, n.frontendURL)
	log.Printf("[NOOP EMAIL] Import confirmation for %s (%s): %s, %s", toName, toEmail, msg.Subject, notify.HistoryURL(n.frontendURL))
	return nil
}
