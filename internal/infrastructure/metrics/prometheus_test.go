package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SwapTransition(t *testing.T) {
	r := NewRegistry()

	r.SwapTransition("pending", "accepted", "transition")
	r.SwapTransition("pending", "accepted", "transition")
	r.SwapTransition("accepted", "completed", "confirmation")

	assert.Equal(t, 2.0, counterValue(t, r.swapTransitions.WithLabelValues("pending", "accepted", "transition")))
	assert.Equal(t, 1.0, counterValue(t, r.swapTransitions.WithLabelValues("accepted", "completed", "confirmation")))
}

func TestRegistry_RatingRecomputeFailed(t *testing.T) {
	r := NewRegistry()
	r.RatingRecomputeFailed()
	assert.Equal(t, 1.0, counterValue(t, r.ratingRecomputeFailure))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest(http.MethodGet, "/api/swaps/:id", http.StatusOK, 20*time.Millisecond)
	r.SwapTransition("pending", "rejected", "transition")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "swapskillz_swap_transitions_total")
	assert.Contains(t, body, `swapskillz_http_request_duration_seconds_count{method="GET",route="/api/swaps/:id",status="200"} 1`)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
