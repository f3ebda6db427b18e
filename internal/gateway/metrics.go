package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type outcome string

const (
	outcomeOK             outcome = "ok"
	outcomeSessionExpired outcome = "session_expired"
	outcomeClipSave       outcome = "clip_save_error"
	outcomeRequestError   outcome = "request_error"
	outcomeDecodeError    outcome = "decode_error"
	outcomeTransportError outcome = "transport_error"
)

// Metrics instruments dispatches. Labels stay bounded: the HTTP verb and
// the classification outcome, never the path.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// already registered by an earlier call are reused, so several gateways can
// share one registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voice_gateway",
			Name:      "requests_total",
			Help:      "Total number of dispatched API requests by outcome.",
		},
		[]string{"method", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := registerOrReuse(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "voice_gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of API round trips in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	))
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("register gateway metrics: %w", err)
}

// observe is a no-op on a nil receiver so the gateway can run without
// metrics.
func (m *Metrics) observe(method string, o outcome, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, string(o)).Inc()
	m.duration.WithLabelValues(method).Observe(took.Seconds())
}
