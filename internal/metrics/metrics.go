package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	clientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_client_requests_total",
			Help: "Total number of requests made to the backend API.",
		},
		[]string{"code", "method", "path"},
	)
	clientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_client_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	clientRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_client_requests_in_flight",
			Help: "Current number of backend API requests in flight.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

type instrumentedTransport struct {
	next http.RoundTripper
}

// RoundTripper instruments every outbound API request with the counter,
// duration histogram and in-flight gauge.
func RoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &instrumentedTransport{next: next}
}

func (t *instrumentedTransport) RoundTrip(r *http.Request) (*http.Response, error) {

	start := time.Now()

	clientRequestsInFlight.Inc()
	defer clientRequestsInFlight.Dec()

	resp, err := t.next.RoundTrip(r)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	clientRequestsTotal.WithLabelValues(code, r.Method, r.URL.Path).Inc()
	clientRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())

	return resp, err
}

// Handler serves the metrics endpoint of the session process.
func Handler() http.Handler {
	return promhttp.Handler()
}
