package integrations

import (
	"context"

	"go.uber.org/zap"
)

// LogMessenger is the default Messenger when no outbound channel is
// configured: it writes the alert to the application log and nothing else.
type LogMessenger struct {
	logger *zap.Logger
}

func NewLogMessenger(logger *zap.Logger) *LogMessenger {
	return &LogMessenger{logger: logger.Named("messenger")}
}

func (m *LogMessenger) Name() string { return "log" }

func (m *LogMessenger) SendAlert(_ context.Context, subject, body string) error {
	m.logger.Warn("alert", zap.String("subject", subject), zap.String("body", body))
	return nil
}
