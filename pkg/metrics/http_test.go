package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/menu", "200", 25*time.Millisecond)
	m.Observe("GET", "/api/v1/menu", "200", 10*time.Millisecond)
	m.Observe("POST", "", "400", time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "http_requests_total", "http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", "200", time.Second)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/", "200", time.Second)
}
