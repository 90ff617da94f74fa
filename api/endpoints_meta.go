package api

import (
	"encoding/json"

	"github.com/randbase/randbase/config"
)

func registerMetaEndpoints() error {
	if err := RegisterEndpoint(Endpoint{
		Path:        "ping",
		ActionFunc:  ping,
		Name:        "Ping",
		Description: "Pings the service to check if it is active.",
	}); err != nil {
		return err
	}

	if err := RegisterEndpoint(Endpoint{
		Path:        "endpoints",
		MimeType:    MimeTypeJSON,
		DataFunc:    listEndpoints,
		Name:        "Export API Endpoints",
		Description: "Returns a list of all registered endpoints.",
	}); err != nil {
		return err
	}

	if err := RegisterEndpoint(Endpoint{
		Path:        "config/options",
		MimeType:    MimeTypeJSON,
		DataFunc:    listConfig,
		Name:        "Export Configuration Options",
		Description: "Returns a list of all registered configuration options.",
	}); err != nil {
		return err
	}

	return nil
}

func ping(ar *Request) (msg string, err error) {
	return "Pong.", nil
}

func listEndpoints(ar *Request) (data []byte, err error) {
	return json.Marshal(ExportEndpoints())
}

func listConfig(ar *Request) (data []byte, err error) {
	return json.Marshal(config.ExportOptions())
}
