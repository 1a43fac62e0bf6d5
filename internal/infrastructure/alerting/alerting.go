// Package alerting routes operational alerts raised by the shipping
// integrations to the application log. Each alert gets a stable id so a
// log search can correlate follow-ups.
package alerting

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/logger"
)

// LogAlertSink implements shipping.AlertSink on top of zap. Alerts are
// errors an operator should look at but that must not fail the request
// that raised them.
type LogAlertSink struct {
	logger *zap.Logger
}

// NewLogAlertSink creates a new LogAlertSink
func NewLogAlertSink(zapLogger *zap.Logger) *LogAlertSink {
	return &LogAlertSink{logger: zapLogger.Named("alerts")}
}

// Alert records an alert for the given activity
func (s *LogAlertSink) Alert(ctx context.Context, activity string, err error) {
	fields := []zap.Field{
		zap.String("alert_id", uuid.NewString()),
		zap.String("activity", activity),
		zap.Error(err),
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	s.logger.Error("carrier integration alert", fields...)
}

// Ensure LogAlertSink implements AlertSink
var _ shipping.AlertSink = (*LogAlertSink)(nil)
