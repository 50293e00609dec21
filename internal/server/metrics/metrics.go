// Package metrics holds the Prometheus collectors of the server and the
// worker. Each Metrics owns its registry so tests can create many.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "files_manager"

type Metrics struct {
	registry *prometheus.Registry

	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	EnqueueFailures prometheus.Counter

	jobCounter       *prometheus.CounterVec
	jobDuration      prometheus.Histogram
	thumbnailCounter *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path"},
		),
		EnqueueFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "enqueue_failures_total",
			Help:      "Thumbnail jobs that could not be enqueued after an image upload",
		}),
		jobCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "worker",
				Name:      "jobs_total",
				Help:      "Thumbnail jobs processed by outcome",
			},
			[]string{"status"},
		),
		jobDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "job_duration_seconds",
			Help:      "Thumbnail job duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		thumbnailCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "worker",
				Name:      "thumbnails_total",
				Help:      "Thumbnail renditions by width and outcome",
			},
			[]string{"width", "status"},
		),
	}
}

// ObserveRequest records one finished HTTP request. path must be the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	m.requestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveJob records one finished thumbnail job.
func (m *Metrics) ObserveJob(failed bool, d time.Duration) {
	status := "completed"
	if failed {
		status = "failed"
	}
	m.jobCounter.WithLabelValues(status).Inc()
	m.jobDuration.Observe(d.Seconds())
}

// ObserveThumbnail records the outcome of one width.
func (m *Metrics) ObserveThumbnail(width int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.thumbnailCounter.WithLabelValues(strconv.Itoa(width), status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve runs a standalone /metrics endpoint until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
