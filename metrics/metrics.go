// Package metrics counts refresh episodes, retries and classified errors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "schoolgest_client"

// Recorder receives client events
type Recorder interface {
	RefreshFinished(success bool, took time.Duration)
	RefreshWaited()
	RequestRetried()
	ErrorClassified(category string)
}

// Noop discards everything
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) RefreshFinished(bool, time.Duration) {}
func (Noop) RefreshWaited()                      {}
func (Noop) RequestRetried()                     {}
func (Noop) ErrorClassified(string)              {}

// Prometheus records client events as prometheus collectors
type Prometheus struct {
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	refreshWaiters  prometheus.Counter
	retries         prometheus.Counter
	errors          *prometheus.CounterVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates and registers the collectors on reg
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Refresh episodes by result.",
		}, []string{"result"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_refresh_duration_seconds",
			Help:      "Duration of refresh calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		refreshWaiters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refresh_waiters_total",
			Help:      "Requests that waited on a refresh already in flight.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_retried_total",
			Help:      "Requests re-issued after a 401.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Classified errors by category.",
		}, []string{"category"}),
	}

	for _, c := range []prometheus.Collector{p.refreshes, p.refreshDuration, p.refreshWaiters, p.retries, p.errors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("[metrics NewPrometheus] failed to register collector: %w", err)
		}
	}
	return p, nil
}

func (p *Prometheus) RefreshFinished(success bool, took time.Duration) {
	result := "failure"
	if success {
		result = "success"
	}
	p.refreshes.WithLabelValues(result).Inc()
	p.refreshDuration.Observe(took.Seconds())
}

func (p *Prometheus) RefreshWaited() {
	p.refreshWaiters.Inc()
}

func (p *Prometheus) RequestRetried() {
	p.retries.Inc()
}

func (p *Prometheus) ErrorClassified(category string) {
	p.errors.WithLabelValues(category).Inc()
}
