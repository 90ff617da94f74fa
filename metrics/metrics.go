// Package metrics exposes operational metrics in prometheus format.
package metrics

import (
	"net/http"

	vm "github.com/VictoriaMetrics/metrics"

	"github.com/randbase/randbase/api"
	"github.com/randbase/randbase/modules"
)

func init() {
	modules.Register("metrics", prep, nil, nil, "api")
}

func prep() error {
	registerHostMetrics()
	registerInfoMetric()

	api.RegisterHandler("/metrics", http.HandlerFunc(servePrometheus))
	return nil
}

func servePrometheus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	vm.WritePrometheus(w, true)
}
