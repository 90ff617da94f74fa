package metrics

import (
	"fmt"
	"runtime"

	vm "github.com/VictoriaMetrics/metrics"

	"github.com/randbase/randbase/info"
)

func registerInfoMetric() {
	meta := info.GetInfo()
	vm.NewGauge(
		fmt.Sprintf(
			`randbase_info{version=%q, commit=%q, go_os=%q, go_arch=%q, go_version=%q}`,
			meta.Version,
			meta.Commit,
			runtime.GOOS,
			runtime.GOARCH,
			runtime.Version(),
		),
		func() float64 {
			return 1
		},
	)
}
