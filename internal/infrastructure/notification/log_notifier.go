package notification

import (
	"context"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
	"fnol_intake/pkg/logger"
)

// LogNotifier writes notifications to the log instead of sending them. Used
// when RABBITMQ_URL is not set.
type LogNotifier struct {
	log *logger.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n entities.Notification) error {
	l.log.Infof("notification to=%s subject=%q body=%q", n.Recipient, n.Subject, n.Body)
	return nil
}
