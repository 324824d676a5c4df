package objectstore

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for object-store instrumentation.
type Metrics struct {
	ops     *prometheus.CounterVec
	bytes   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetrics registers storage metrics on reg. It panics if they are
// already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bucketcms",
		Subsystem: "objectstore",
		Name:      "ops_total",
		Help:      "Total number of object store operations by result.",
	}, []string{"op", "result"}) // result = "ok" | "not_found" | "precondition_failed" | "error"
	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bucketcms",
		Subsystem: "objectstore",
		Name:      "bytes_total",
		Help:      "Total bytes read from or written to the object store.",
	}, []string{"op"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bucketcms",
		Subsystem: "objectstore",
		Name:      "op_duration_seconds",
		Help:      "Histogram of object store operation durations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	reg.MustRegister(ops, bytes, latency)

	return &Metrics{ops: ops, bytes: bytes, latency: latency}
}

// Observe records one operation.
func (m *Metrics) Observe(op string, n int, err error, dur time.Duration) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, result(err)).Inc()
	if n > 0 {
		m.bytes.WithLabelValues(op).Add(float64(n))
	}
	m.latency.WithLabelValues(op).Observe(dur.Seconds())
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPreconditionFailed):
		return "precondition_failed"
	default:
		return "error"
	}
}

// Instrumented decorates a Store with metrics.
type Instrumented struct {
	Store
	metrics *Metrics
}

// Instrument wraps s so every call is observed by m.
func Instrument(s Store, m *Metrics) *Instrumented {
	return &Instrumented{Store: s, metrics: m}
}

func (i *Instrumented) CreateBucket(ctx context.Context) error {
	start := time.Now()
	err := i.Store.CreateBucket(ctx)
	i.metrics.Observe("create_bucket", 0, err, time.Since(start))
	return err
}

func (i *Instrumented) SetBucketPolicy(ctx context.Context, policy string) error {
	start := time.Now()
	err := i.Store.SetBucketPolicy(ctx, policy)
	i.metrics.Observe("set_bucket_policy", 0, err, time.Since(start))
	return err
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := i.Store.Get(ctx, key)
	i.metrics.Observe("get", len(data), err, time.Since(start))
	return data, err
}

func (i *Instrumented) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := i.Store.Exists(ctx, key)
	i.metrics.Observe("exists", 0, err, time.Since(start))
	return ok, err
}

func (i *Instrumented) Put(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := i.Store.Put(ctx, key, data)
	i.metrics.Observe("put", len(data), err, time.Since(start))
	return err
}

func (i *Instrumented) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := i.Store.PutIfAbsent(ctx, key, data)
	i.metrics.Observe("put_if_absent", len(data), err, time.Since(start))
	return err
}

func (i *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.Store.Delete(ctx, key)
	i.metrics.Observe("delete", 0, err, time.Since(start))
	return err
}

func (i *Instrumented) List(ctx context.Context, opts ListOptions) (Page, error) {
	start := time.Now()
	page, err := i.Store.List(ctx, opts)
	i.metrics.Observe("list", 0, err, time.Since(start))
	return page, err
}
