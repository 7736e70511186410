package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncTick("focus")
	pr.IncTick("focus")
	pr.IncTransition("focus", "shortBreak")
	pr.IncStoreFailure("save")
	pr.IncNotifyFailure()
	pr.SetCycles(3)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.ticks.WithLabelValues("focus")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.transitions.WithLabelValues("focus", "shortBreak")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pr.cycles))
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncTick("focus")
		pr.IncTransition("focus", "longBreak")
		pr.IncStoreFailure("load")
		pr.IncNotifyFailure()
		pr.SetCycles(1)
	})
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncTransition("shortBreak", "focus")

	recorder := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "pomodoro_transitions_total"))
}
