package api

import (
	"github.com/randbase/randbase/modules"
)

var module *modules.Module

func init() {
	module = modules.Register("api", prep, start, stop, "config")
}

func prep() error {
	if err := registerConfig(); err != nil {
		return err
	}
	return registerMetaEndpoints()
}

func start() error {
	startServer()
	return nil
}

func stop() error {
	return stopServer()
}
