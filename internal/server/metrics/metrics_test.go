package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/files/:id", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/files/:id", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/files/:id", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/files/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/files/:id", "404")))
}

func TestObserveJobAndThumbnail(t *testing.T) {
	m := New()
	m.ObserveJob(false, time.Second)
	m.ObserveJob(true, time.Second)
	m.ObserveThumbnail(500, nil)
	m.ObserveThumbnail(100, errors.New("x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobCounter.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobCounter.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.thumbnailCounter.WithLabelValues("500", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.thumbnailCounter.WithLabelValues("100", "error")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.EnqueueFailures.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "files_manager_queue_enqueue_failures_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.EnqueueFailures.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EnqueueFailures))
}
