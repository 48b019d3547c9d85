package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports request counts and latencies to Prometheus.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the client collectors with reg. Collectors
// already registered by another client are reused.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console_client",
		Name:      "requests_total",
		Help:      "Console API requests by method and response status.",
	}, []string{"method", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "console_client",
		Name:      "request_duration_seconds",
		Help:      "Console API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	var err error

	requests, err = registerCollector(reg, requests)
	if err != nil {
		return nil, err
	}

	duration, err = registerCollector(reg, duration)
	if err != nil {
		return nil, err
	}

	return &PrometheusMetrics{requests: requests, duration: duration}, nil
}

func registerCollector[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

// Install adds the metrics interceptors to chain.
func (m *PrometheusMetrics) Install(chain *InterceptorChain) {
	chain.AddRequestInterceptor(m.RequestInterceptor())
	chain.AddResponseInterceptor(m.ResponseInterceptor())
}

// RequestInterceptor records the request start time.
func (m *PrometheusMetrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		markStart(req)

		return nil
	}
}

// ResponseInterceptor observes the outcome of a request. Transport failures
// are counted with status "0".
func (m *PrometheusMetrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		m.requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
		m.duration.WithLabelValues(req.Method).Observe(elapsed(req).Seconds())

		return nil
	}
}
