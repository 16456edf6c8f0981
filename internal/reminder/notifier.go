package reminder

import (
	"context"

	"go.uber.org/zap"
)

// Reminder is the daily check-in nudge.
type Reminder struct {
	Date    string
	Time    string
	Name    string
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier delivers reminders to the log; there is no push channel on
// a local install.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.logger.Info(r.Message,
		zap.String("date", r.Date),
		zap.String("reminder_time", r.Time),
	)
	return nil
}
