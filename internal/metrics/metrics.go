// Package metrics holds the relay's Prometheus collectors.
//
// Every recording method is safe on a nil *Metrics, so components can take
// an optional instance without guarding each call.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Send results.
const (
	SendOK            = "ok"
	SendInvalidNumber = "invalid_number"
	SendRejected      = "rejected"
	SendError         = "error"
)

type Metrics struct {
	MessagesSentTotal      *prometheus.CounterVec
	InboxStoredTotal       prometheus.Counter
	SyncRunsTotal          *prometheus.CounterVec
	BalanceCents           prometheus.Gauge
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDurationSec *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		MessagesSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smsdev_messages_sent_total",
				Help: "Send attempts by result",
			},
			[]string{"result"},
		),
		InboxStoredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "smsdev_inbox_stored_total",
				Help: "Received messages stored for the first time",
			},
		),
		SyncRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smsdev_sync_runs_total",
				Help: "Inbox sync runs by result",
			},
			[]string{"result"},
		),
		BalanceCents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "smsdev_balance_cents",
				Help: "Last balance read from the gateway",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smsdev_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSec: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smsdev_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.MessagesSentTotal,
		m.InboxStoredTotal,
		m.SyncRunsTotal,
		m.BalanceCents,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSec,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSend(result string) {
	if m == nil {
		return
	}
	m.MessagesSentTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSync(stored int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SyncRunsTotal.WithLabelValues("error").Inc()
		return
	}
	m.SyncRunsTotal.WithLabelValues("ok").Inc()
	m.InboxStoredTotal.Add(float64(stored))
}

func (m *Metrics) SetBalance(cents int) {
	if m == nil {
		return
	}
	m.BalanceCents.Set(float64(cents))
}

func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDurationSec.WithLabelValues(method, path).Observe(d.Seconds())
}
