// Package info holds the program metadata and handles the -version flag.
package info

import (
	"flag"
	"fmt"

	"github.com/randbase/randbase/modules"
)

var showVersion bool

func init() {
	modules.Register("info", prep, nil, nil)

	flag.BoolVar(&showVersion, "version", false, "show version and exit")
}

func prep() error {
	if showVersion {
		fmt.Println(FullVersion())
		return modules.ErrCleanExit
	}
	return nil
}
