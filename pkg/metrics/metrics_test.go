package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

var testGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "postfeed_metrics_test_gauge",
	Help: "Gauge registered by the metrics package tests",
})

func TestHandler(t *testing.T) {
	testGauge.Set(42)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "postfeed_metrics_test_gauge 42") {
		t.Error("Expected handler output to contain the registered gauge")
	}
}
