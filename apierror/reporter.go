package apierror

import (
	"context"

	"github.com/jrsteele09/schoolgest-client/metrics"
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Presentation maps a severity to the notification level that shows it
func Presentation(s Severity) notify.Level {
	switch s {
	case SeverityCritical, SeverityHigh:
		return notify.LevelError
	case SeverityMedium:
		return notify.LevelWarning
	default:
		return notify.LevelInfo
	}
}

// Reporter surfaces classified errors: one log line, one notification and,
// for 403, a redirect to the access denied route. An expired session is not
// notified again.
type Reporter struct {
	notifier  notify.Notifier
	navigator notify.Navigator
	metrics   metrics.Recorder
	logger    zerolog.Logger
}

type ReporterOption func(*Reporter)

func WithReporterMetrics(m metrics.Recorder) ReporterOption {
	return func(r *Reporter) {
		r.metrics = m
	}
}

func WithReporterLogger(logger zerolog.Logger) ReporterOption {
	return func(r *Reporter) {
		r.logger = logger
	}
}

func NewReporter(notifier notify.Notifier, navigator notify.Navigator, options ...ReporterOption) *Reporter {
	r := &Reporter{
		notifier:  notifier,
		navigator: navigator,
		metrics:   metrics.Noop{},
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Report classifies err, surfaces it and returns the classification. op names
// the operation that failed.
func (r *Reporter) Report(ctx context.Context, err any, op string) ErrorDetails {
	d := Classify(err)

	event := r.logger.Error()
	if d.Severity == SeverityMedium || d.Severity == SeverityLow {
		event = r.logger.Warn()
	}
	event = event.Ctx(ctx).
		Str("operation", op).
		Str("code", d.Code).
		Str("category", string(d.Category)).
		Bool("retryable", d.Retryable)
	if d.StatusCode != nil {
		event = event.Int("status", *d.StatusCode)
	}
	if d.Cause != nil {
		event = event.Err(d.Cause)
	}
	event.Msg(d.Message)

	r.metrics.ErrorClassified(string(d.Category))

	// The session teardown has already told the user
	if r.notifier != nil && d.Code != CodeSessionExpired {
		r.notifier.Notify(d.UserMessage, Presentation(d.Severity))
	}
	if d.Status() == 403 && r.navigator != nil {
		r.navigator.Navigate(notify.RouteAccessDenied)
	}
	return d
}
