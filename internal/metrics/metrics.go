package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced        prometheus.Counter
	PlacementFailures   *prometheus.CounterVec
	PlacementLatencySec prometheus.Histogram
	OrderEventsFailed   prometheus.Counter

	HTTPRequests   *prometheus.CounterVec
	HTTPLatencySec *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercenter_orders_placed_total"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ordercenter_order_placement_failures_total"}, []string{"code"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ordercenter_order_placement_seconds",
		Buckets: prometheus.DefBuckets,
	})
	eventsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercenter_order_events_failed_total"})

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ordercenter_http_requests_total"}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ordercenter_http_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.MustRegister(placed, failures, latency, eventsFailed, httpRequests, httpLatency)
	return &Registry{
		reg:                 r,
		OrdersPlaced:        placed,
		PlacementFailures:   failures,
		PlacementLatencySec: latency,
		OrderEventsFailed:   eventsFailed,
		HTTPRequests:        httpRequests,
		HTTPLatencySec:      httpLatency,
	}
}

// ObservePlacement 紀錄一次下單結果，code 為 0 表示成功
func (r *Registry) ObservePlacement(code int, elapsed time.Duration) {
	r.PlacementLatencySec.Observe(elapsed.Seconds())
	if code == 0 {
		r.OrdersPlaced.Inc()
		return
	}
	r.PlacementFailures.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPLatencySec.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
