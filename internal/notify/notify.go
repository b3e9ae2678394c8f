// Package notify delivers plain-text order confirmations.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier sends one message. Callers treat delivery as best-effort.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogNotifier writes messages to the log instead of delivering them.
type LogNotifier struct{ logger *zap.Logger }

func NewLogNotifier(logger *zap.Logger) *LogNotifier { return &LogNotifier{logger: logger} }

func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.logger.Info("notification (not delivered)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
