package api

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/randbase/randbase/log"
)

// Middleware is a function that can be added as a middleware to the API endpoint.
type Middleware func(next http.Handler) http.Handler

type mwHandler struct {
	handlers []Middleware
	final    http.Handler
}

func (mwh *mwHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// final handler
	handler := mwh.final

	// build middleware chain
	// loop in reverse to build the handler chain in the correct order
	for i := len(mwh.handlers) - 1; i >= 0; i-- {
		handler = mwh.handlers[i](handler)
	}

	// start
	handler.ServeHTTP(w, r)
}

// ModuleWorker is an http middleware that wraps the request in a module worker.
func ModuleWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = module.RunWorker("http request", func(_ context.Context) error {
			next.ServeHTTP(w, r)
			return nil
		})
	})
}

// RequestLogger is an http middleware that logs every request with its resulting status code.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ew := NewEnrichedResponseWriter(w)
		next.ServeHTTP(ew, r)
		log.Infof("api: request %s %s %d %s", r.RemoteAddr, r.Method, ew.Status, r.RequestURI)
	})
}

// RequestID is an http middleware that attaches an ID to the request and echoes it in the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewV4()
		if err != nil {
			// without an ID the request is still serveable
			next.ServeHTTP(w, r)
			return
		}

		ar := &Request{
			Request:   r,
			RequestID: id.String(),
		}
		ctx := context.WithValue(r.Context(), requestContextKey, ar)

		w.Header().Set("X-Request-ID", id.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
