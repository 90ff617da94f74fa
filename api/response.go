package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// EnrichedResponseWriter is a wrapper around http.ResponseWriter that remembers the written status code.
type EnrichedResponseWriter struct {
	http.ResponseWriter
	Status int
}

// NewEnrichedResponseWriter wraps an http.ResponseWriter.
func NewEnrichedResponseWriter(w http.ResponseWriter) *EnrichedResponseWriter {
	return &EnrichedResponseWriter{
		ResponseWriter: w,
	}
}

// WriteHeader wraps the original WriteHeader and remembers the status code.
func (ew *EnrichedResponseWriter) WriteHeader(code int) {
	ew.Status = code
	ew.ResponseWriter.WriteHeader(code)
}

// Write wraps the original Write and defaults the status code to 200.
func (ew *EnrichedResponseWriter) Write(b []byte) (int, error) {
	if ew.Status == 0 {
		ew.Status = http.StatusOK
	}
	return ew.ResponseWriter.Write(b)
}

// Hijack hands over the underlying connection, if supported. Required for websocket upgrades.
func (ew *EnrichedResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := ew.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response does not implement http.Hijacker")
	}
	ew.Status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
