package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/randbase/randbase/log"
)

// Endpoint describes an API Endpoint. Path is required, as is exactly one function.
type Endpoint struct {
	Path     string
	MimeType string

	// ActionFunc is for simple actions with a return message for the user.
	ActionFunc ActionFunc `json:"-"`

	// DataFunc is for returning raw data that the caller processes further.
	DataFunc DataFunc `json:"-"`

	// StructFunc is for returning any kind of struct, marshalled as json.
	StructFunc StructFunc `json:"-"`

	// HandlerFunc is the raw http handler.
	HandlerFunc http.HandlerFunc `json:"-"`

	// Documentation Metadata.

	Name        string
	Description string
}

type (
	// ActionFunc is for simple actions with a return message for the user.
	ActionFunc func(ar *Request) (msg string, err error)

	// DataFunc is for returning raw data that the caller processes further.
	DataFunc func(ar *Request) (data []byte, err error)

	// StructFunc is for returning any kind of struct, marshalled as json.
	StructFunc func(ar *Request) (i interface{}, err error)
)

// MIME Types.
const (
	MimeTypeJSON string = "application/json"
	MimeTypeText string = "text/plain"
	MimeTypeHTML string = "text/html"
)

var (
	endpoints     = make(map[string]*Endpoint)
	endpointsLock sync.RWMutex

	// ErrInvalidEndpoint is returned when an invalid endpoint is registered.
	ErrInvalidEndpoint = errors.New("endpoint is invalid")

	// ErrAlreadyRegistered is returned when there already is an endpoint with the same path registered.
	ErrAlreadyRegistered = errors.New("an endpoint for this path is already registered")
)

// RegisterEndpoint registers a new endpoint. An error will be returned if it does not pass the sanity checks.
func RegisterEndpoint(e Endpoint) error {
	if err := e.check(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEndpoint, err)
	}

	endpointsLock.Lock()
	defer endpointsLock.Unlock()

	_, ok := endpoints[e.Path]
	if ok {
		return ErrAlreadyRegistered
	}

	endpoints[e.Path] = &e
	return nil
}

func (e *Endpoint) check() error {
	// Check path.
	if strings.TrimSpace(e.Path) == "" {
		return errors.New("path is missing")
	}

	// Check functions.
	var defaultMimeType string
	fnCnt := 0
	if e.ActionFunc != nil {
		fnCnt++
		defaultMimeType = MimeTypeText
	}
	if e.DataFunc != nil {
		fnCnt++
		defaultMimeType = MimeTypeText
	}
	if e.StructFunc != nil {
		fnCnt++
		defaultMimeType = MimeTypeJSON
	}
	if e.HandlerFunc != nil {
		fnCnt++
		defaultMimeType = MimeTypeText
	}
	if fnCnt != 1 {
		return errors.New("exactly one function must be set")
	}

	// Set default mime type.
	if e.MimeType == "" {
		e.MimeType = defaultMimeType
	}

	return nil
}

// ExportEndpoints exports the registered endpoints. The returned data must be treated as immutable.
func ExportEndpoints() []*Endpoint {
	endpointsLock.RLock()
	defer endpointsLock.RUnlock()

	// copy the map into a slice
	eps := make([]*Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		eps = append(eps, ep)
	}

	sort.Slice(eps, func(i, j int) bool {
		return eps[i].Path < eps[j].Path
	})
	return eps
}

// ServeHTTP handles the http request.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	apiRequest := GetAPIRequest(r)
	if apiRequest == nil {
		apiRequest = &Request{Request: r}
	}

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost, http.MethodPut:
		// Read body data.
		inputData, ok := readBody(w, r)
		if !ok {
			return
		}
		apiRequest.InputData = inputData
	case http.MethodGet:
		// Nothing special to do here.
	default:
		writeErrorResponse(w, r, ErrorWithStatus(errors.New("unsupported method"), http.StatusMethodNotAllowed))
		return
	}

	// Execute endpoint function and get response data.
	var responseData []byte
	var err error

	switch {
	case e.ActionFunc != nil:
		var msg string
		msg, err = e.ActionFunc(apiRequest)
		if err == nil {
			if !strings.HasSuffix(msg, "\n") {
				msg += "\n"
			}
			responseData = []byte(msg)
		}

	case e.DataFunc != nil:
		responseData, err = e.DataFunc(apiRequest)

	case e.StructFunc != nil:
		var v interface{}
		v, err = e.StructFunc(apiRequest)
		if err == nil && v != nil {
			responseData, err = json.Marshal(v)
		}

	case e.HandlerFunc != nil:
		e.HandlerFunc(w, r)
		return

	default:
		writeErrorResponse(w, r, errors.New("missing endpoint function"))
		return
	}

	// Check for handler error.
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}

	// Write response.
	w.Header().Set("Content-Type", e.MimeType+"; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(responseData)
	if err != nil {
		log.Warningf("api: failed to write response to %s: %s", r.RemoteAddr, err)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) (inputData []byte, ok bool) {
	// Check for too long content in order to prevent death.
	if r.ContentLength > 20000000 { // 20MB
		writeErrorResponse(w, r, ErrorWithStatus(errors.New("too much input data"), http.StatusRequestEntityTooLarge))
		return nil, false
	}

	// Read and close body.
	inputData, err := io.ReadAll(io.LimitReader(r.Body, 20000001))
	if err != nil {
		writeErrorResponse(w, r, fmt.Errorf("failed to read body: %w", err))
		return nil, false
	}
	return inputData, true
}
