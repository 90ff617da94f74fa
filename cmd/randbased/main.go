package main

import (
	"os"

	"github.com/randbase/randbase/info"
	"github.com/randbase/randbase/run"

	// include packages
	_ "github.com/randbase/randbase/generate"
	_ "github.com/randbase/randbase/metrics"
	_ "github.com/randbase/randbase/ui"
)

func main() {
	info.Set("randbased", "0.1.0", "AGPL")
	os.Exit(run.Run())
}
