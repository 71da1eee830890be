// Package notify is the sink user-facing messages go through. The storefront
// UI renders these as toasts; the service writes them to the log.
package notify

import "go.uber.org/zap"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notifier interface {
	Notify(userID, message string, severity Severity)
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{
		logger: logger,
	}
}

func (n *logNotifier) Notify(userID, message string, severity Severity) {
	n.logger.Info("notification",
		zap.String("user_id", userID),
		zap.String("severity", string(severity)),
		zap.String("message", message),
	)
}
