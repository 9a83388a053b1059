// Package metrics exposes Prometheus collectors for payments, imports and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	payments         *prometheus.CounterVec
	importedBills    prometheus.Counter
	importFailures   prometheus.Counter
	requestDurations *prometheus.HistogramVec
	pendingBills     *prometheus.GaugeVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagamentos",
			Name:      "bill_payments_total",
			Help:      "Bill payment attempts by outcome.",
		}, []string{"outcome"}),
		importedBills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pagamentos",
			Name:      "imported_bills_total",
			Help:      "Bills created through bulk import.",
		}),
		importFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pagamentos",
			Name:      "import_failures_total",
			Help:      "Bulk imports rejected as a whole.",
		}),
		requestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pagamentos",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		pendingBills: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pagamentos",
			Name:      "pending_bills",
			Help:      "Pending bills by due window, refreshed by the due-date monitor.",
		}, []string{"window"}),
	}
	reg.MustRegister(
		m.payments,
		m.importedBills,
		m.importFailures,
		m.requestDurations,
		m.pendingBills,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// PaymentSettled counts a successful payment.
func (m *Metrics) PaymentSettled() {
	if m == nil {
		return
	}
	m.payments.WithLabelValues("settled").Inc()
}

// PaymentRejected counts a payment refused for the given reason.
func (m *Metrics) PaymentRejected(reason string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(reason).Inc()
}

// BillsImported counts bills created by one import.
func (m *Metrics) BillsImported(n int) {
	if m == nil {
		return
	}
	m.importedBills.Add(float64(n))
}

// ImportFailed counts a rejected import.
func (m *Metrics) ImportFailed() {
	if m == nil {
		return
	}
	m.importFailures.Inc()
}

// PendingBills publishes the overdue and due-soon pending bill counts.
func (m *Metrics) PendingBills(overdue, dueSoon int) {
	if m == nil {
		return
	}
	m.pendingBills.WithLabelValues("overdue").Set(float64(overdue))
	m.pendingBills.WithLabelValues("due_soon").Set(float64(dueSoon))
}

// Middleware observes request latency labelled with the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDurations.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
