// Package ui serves the embedded visualization page.
package ui

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/randbase/randbase/api"
	"github.com/randbase/randbase/modules"
)

//go:embed index.html
var indexPage []byte

func init() {
	modules.Register("ui", prep, nil, nil, "api")
}

func prep() error {
	api.RegisterHandler("/", http.HandlerFunc(serveIndex))
	return nil
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", api.MimeTypeHTML+"; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(indexPage)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}
