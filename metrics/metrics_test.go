package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostStats(t *testing.T) {
	if total, ok := MemTotal(); ok {
		assert.Greater(t, total, uint64(0))
	}
	if percent, ok := MemUsedPercent(); ok {
		assert.GreaterOrEqual(t, percent, 0.0)
		assert.LessOrEqual(t, percent, 100.0)
	}
	if avg, ok := LoadAvg1(); ok {
		assert.GreaterOrEqual(t, avg, 0.0)
	}
}

func TestServePrometheus(t *testing.T) {
	registerHostMetrics()
	registerInfoMetric()

	w := httptest.NewRecorder()
	servePrometheus(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "randbase_info")
	assert.Contains(t, w.Body.String(), "randbase_host_mem_total")
}
