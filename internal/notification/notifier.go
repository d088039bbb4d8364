// Package notification publishes challenge lifecycle events.
package notification

import (
	"context"
	"log/slog"
)

// StatusChange describes a challenge moving between lifecycle states.
type StatusChange struct {
	ChallengeID int64
	UserID      int64
	From        string
	To          string
	Equity      float64
}

// Notifier receives challenge lifecycle events.
type Notifier interface {
	ChallengeStatusChanged(ctx context.Context, change StatusChange)
}

// LoggerNotifier writes events to the structured log. It stands in for a
// real delivery channel (email, webhook) in development.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier builds a log-backed notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

func (n *LoggerNotifier) ChallengeStatusChanged(ctx context.Context, change StatusChange) {
	n.logger.Info("challenge status changed",
		"challenge_id", change.ChallengeID,
		"user_id", change.UserID,
		"from", change.From,
		"to", change.To,
		"equity", change.Equity,
	)
}
