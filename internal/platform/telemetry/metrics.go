// Package telemetry collects request-level metrics and exposes them in
// Prometheus text format. It deliberately avoids the OpenTelemetry SDK;
// counters and histograms are plain atomics behind a registry.
package telemetry

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// durationBuckets are the request duration boundaries in seconds. The upper
// buckets are generous because pipeline runs block on language-model calls.
var durationBuckets = []float64{
	0.010, 0.050, 0.100, 0.250, 0.500, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0,
}

// Registry holds all metric state for the process.
type Registry struct {
	service string

	mu         sync.RWMutex
	counters   map[string]*int64
	histograms map[string]*histogram
}

func NewRegistry(service string) *Registry {
	return &Registry{
		service:    service,
		counters:   make(map[string]*int64),
		histograms: make(map[string]*histogram),
	}
}

// Inc increments the request counter for one (method, route, status) series.
func (r *Registry) Inc(method, route string, status int) {
	key := seriesKey(method, route, status)
	r.mu.RLock()
	p, ok := r.counters[key]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		if p, ok = r.counters[key]; !ok {
			p = new(int64)
			r.counters[key] = p
		}
		r.mu.Unlock()
	}
	atomic.AddInt64(p, 1)
}

// Observe records one request duration for a (method, route, status) series.
func (r *Registry) Observe(method, route string, status int, seconds float64) {
	key := seriesKey(method, route, status)
	r.mu.RLock()
	h, ok := r.histograms[key]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		if h, ok = r.histograms[key]; !ok {
			h = newHistogram(durationBuckets)
			r.histograms[key] = h
		}
		r.mu.Unlock()
	}
	h.observe(seconds)
}

// Count returns the request count for one series. Intended for tests.
func (r *Registry) Count(method, route string, status int) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.counters[seriesKey(method, route, status)]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(p)
}

func seriesKey(method, route string, status int) string {
	return method + "|" + route + "|" + strconv.Itoa(status)
}

func seriesLabels(key string) string {
	parts := strings.SplitN(key, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return fmt.Sprintf(`method=%q,route=%q,status=%q`, parts[0], parts[1], parts[2])
}

// Handler serves the registry in Prometheus text exposition format.
func (r *Registry) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		r.mu.RLock()
		counterKeys := make([]string, 0, len(r.counters))
		for k := range r.counters {
			counterKeys = append(counterKeys, k)
		}
		histKeys := make([]string, 0, len(r.histograms))
		for k := range r.histograms {
			histKeys = append(histKeys, k)
		}
		r.mu.RUnlock()
		sort.Strings(counterKeys)
		sort.Strings(histKeys)

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
		for _, key := range counterKeys {
			r.mu.RLock()
			count := atomic.LoadInt64(r.counters[key])
			r.mu.RUnlock()
			fmt.Fprintf(w, "http_requests_total{service=%q,%s} %d\n", r.service, seriesLabels(key), count)
		}

		fmt.Fprintf(w, "# TYPE http_request_duration_seconds histogram\n")
		for _, key := range histKeys {
			r.mu.RLock()
			h := r.histograms[key]
			r.mu.RUnlock()
			labels := seriesLabels(key)

			running := int64(0)
			for i, bound := range h.boundaries {
				running += atomic.LoadInt64(&h.bucketCounts[i])
				fmt.Fprintf(w, "http_request_duration_seconds_bucket{service=%q,%s,le=%q} %d\n",
					r.service, labels, strconv.FormatFloat(bound, 'g', -1, 64), running)
			}
			fmt.Fprintf(w, "http_request_duration_seconds_bucket{service=%q,%s,le=\"+Inf\"} %d\n",
				r.service, labels, h.count())
			fmt.Fprintf(w, "http_request_duration_seconds_sum{service=%q,%s} %g\n", r.service, labels, h.sum())
			fmt.Fprintf(w, "http_request_duration_seconds_count{service=%q,%s} %d\n", r.service, labels, h.count())
		}
		return nil
	}
}

// Middleware instruments every request with a counter and a duration
// observation, labeled by the matched route rather than the raw path so
// series cardinality stays bounded.
func Middleware(registry *Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			method := c.Request().Method
			registry.Inc(method, route, status)
			registry.Observe(method, route, status, time.Since(start).Seconds())
			return err
		}
	}
}

// histogram is a fixed-boundary histogram safe for concurrent observation.
type histogram struct {
	boundaries   []float64
	bucketCounts []int64 // non-cumulative, one per boundary
	total        int64
	sumBits      uint64 // float64 bits, updated by CAS
}

func newHistogram(boundaries []float64) *histogram {
	return &histogram{
		boundaries:   boundaries,
		bucketCounts: make([]int64, len(boundaries)),
	}
}

func (h *histogram) observe(v float64) {
	atomic.AddInt64(&h.total, 1)
	for {
		old := atomic.LoadUint64(&h.sumBits)
		next := math.Float64bits(math.Float64frombits(old) + v)
		if atomic.CompareAndSwapUint64(&h.sumBits, old, next) {
			break
		}
	}
	for i, bound := range h.boundaries {
		if v <= bound {
			atomic.AddInt64(&h.bucketCounts[i], 1)
			return
		}
	}
	// Above every boundary: captured by the +Inf bucket at export.
}

func (h *histogram) count() int64 { return atomic.LoadInt64(&h.total) }

func (h *histogram) sum() float64 {
	return math.Float64frombits(atomic.LoadUint64(&h.sumBits))
}
