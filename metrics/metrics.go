// Package metrics exports modem operation outcomes to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"i4.energy/across/sigfoxgw/modem"
)

var (
	registerOnce sync.Once

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigfox",
			Subsystem: "modem",
			Name:      "operations_total",
			Help:      "Modem operations by outcome.",
		},
		[]string{"op", "status"},
	)
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sigfox",
			Subsystem: "modem",
			Name:      "operation_duration_seconds",
			Help:      "Modem operation duration in seconds, embedded waits included.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"op", "status"},
	)
)

// Register adds the collectors to the default registry. It is safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(operations, operationDuration)
	})
}

// Observe records a finished operation. It matches modem.Observer.
func Observe(op string, status modem.Status, elapsed time.Duration) {
	Register()
	statusLabel := status.String()
	operations.WithLabelValues(op, statusLabel).Inc()
	operationDuration.WithLabelValues(op, statusLabel).Observe(elapsed.Seconds())
}

var _ modem.Observer = Observe
