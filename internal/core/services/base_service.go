package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Recorder
	Clock   func() time.Time
}

// Option configures the BaseService embedded in every service.
type Option func(*BaseService)

// WithMetrics records rejections and postings on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(b *BaseService) {
		b.Metrics = rec
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(opts []Option) BaseService {
	b := BaseService{Clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Reject logs err and counts it against operation, then returns it unchanged.
// Domain failures are logged at Warn, anything else at Error.
func (s *BaseService) Reject(ctx context.Context, operation string, err error, keyvals ...any) error {
	if err == nil {
		return nil
	}
	code := string(apperrors.CodeInternal)
	appErr, ok := apperrors.AsAppError(err)
	if ok {
		code = string(appErr.Code)
	}
	s.Metrics.Rejected(operation, code)

	if !ok || appErr.Kind == apperrors.KindInternal {
		s.LogError(ctx, err, "Operation failed", append([]any{slog.String("operation", operation)}, keyvals...)...)
		return err
	}
	args := make([]any, 0, len(keyvals)+3)
	args = append(args, slog.String("operation", operation), slog.String("code", code), slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn("Operation rejected", args...)
	return err
}
