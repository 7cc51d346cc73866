// Package metrics provides Prometheus metrics collection for remote calls.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/message"
	"github.com/stonefield/jiraSOAP/ports"
)

// Call outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeFault     = "fault"
	OutcomeTransport = "transport"
	OutcomeTimeout   = "timeout"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Collector holds all Prometheus metrics for the client.
type Collector struct {
	// Call metrics
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
	LastCall     *prometheus.GaugeVec

	// Session metrics
	Logins *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
	ConfigLastReload   prometheus.Gauge
}

// New creates a new metrics collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jirasoap",
				Name:      "calls_total",
				Help:      "Total number of remote calls by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jirasoap",
				Name:      "call_duration_seconds",
				Help:      "Remote call duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
		LastCall: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "jirasoap",
				Name:      "last_call_timestamp",
				Help:      "Unix timestamp of the last completed call per method",
			},
			[]string{"method"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jirasoap",
				Name:      "logins_total",
				Help:      "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "jirasoap",
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "jirasoap",
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jirasoap",
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// ObserveCall records one completed call.
func (c *Collector) ObserveCall(method string, elapsed time.Duration, err error) {
	outcome := Outcome(err)
	c.CallsTotal.WithLabelValues(method, outcome).Inc()
	c.CallDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	c.LastCall.WithLabelValues(method).SetToCurrentTime()
	if method == "login" {
		if outcome == OutcomeOK {
			c.Logins.WithLabelValues("success").Inc()
		} else {
			c.Logins.WithLabelValues("failure").Inc()
		}
	}
}

// ObserveReload records the result of a config reload.
func (c *Collector) ObserveReload(err error) {
	if err != nil {
		c.ConfigReloadErrors.Inc()
		return
	}
	c.ConfigReloads.Inc()
	c.ConfigLastReload.SetToCurrentTime()
}

// Outcome classifies a call error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case message.IsFault(err):
		return OutcomeFault
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case message.IsTransport(err):
		return OutcomeTransport
	case errors.Is(err, rpc.ErrMalformedResponse):
		return OutcomeMalformed
	default:
		return OutcomeError
	}
}

// Ensure interface compliance.
var _ ports.CallObserver = (*Collector)(nil)
