package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	// missing path
	assert.Error(t, RegisterEndpoint(Endpoint{
		ActionFunc: func(ar *Request) (string, error) { return "", nil },
	}))

	// missing function
	assert.Error(t, RegisterEndpoint(Endpoint{
		Path: "test/missing-func",
	}))

	// more than one function
	assert.Error(t, RegisterEndpoint(Endpoint{
		Path:       "test/two-funcs",
		ActionFunc: func(ar *Request) (string, error) { return "", nil },
		DataFunc:   func(ar *Request) ([]byte, error) { return nil, nil },
	}))

	// valid
	require.NoError(t, RegisterEndpoint(Endpoint{
		Path:       "test/valid",
		ActionFunc: func(ar *Request) (string, error) { return "ok", nil },
	}))

	// duplicate path
	assert.ErrorIs(t, RegisterEndpoint(Endpoint{
		Path:       "test/valid",
		ActionFunc: func(ar *Request) (string, error) { return "ok", nil },
	}), ErrAlreadyRegistered)
}

func TestEndpointServing(t *testing.T) {
	actionEP := &Endpoint{
		Path:       "test/action",
		ActionFunc: func(ar *Request) (string, error) { return "action successful", nil },
	}
	require.NoError(t, actionEP.check())

	dataEP := &Endpoint{
		Path:     "test/data",
		MimeType: MimeTypeJSON,
		DataFunc: func(ar *Request) ([]byte, error) { return []byte(`{"a":1}`), nil },
	}
	require.NoError(t, dataEP.check())

	structEP := &Endpoint{
		Path: "test/struct",
		StructFunc: func(ar *Request) (interface{}, error) {
			return struct {
				Value int `json:"value"`
			}{Value: 7}, nil
		},
	}
	require.NoError(t, structEP.check())

	failingEP := &Endpoint{
		Path: "test/fail",
		ActionFunc: func(ar *Request) (string, error) {
			return "", ErrorWithStatus(errors.New("nope"), http.StatusBadRequest)
		},
	}
	require.NoError(t, failingEP.check())

	// action
	w := httptest.NewRecorder()
	actionEP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/action", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "action successful\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), MimeTypeText)

	// data
	w = httptest.NewRecorder()
	dataEP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/data", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":1}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), MimeTypeJSON)

	// struct
	w = httptest.NewRecorder()
	structEP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/struct", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":7}`, w.Body.String())

	// error rendering
	w = httptest.NewRecorder()
	failingEP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/fail", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())

	// head and options
	w = httptest.NewRecorder()
	actionEP.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/test/action", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = httptest.NewRecorder()
	actionEP.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test/action", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// unsupported method
	w = httptest.NewRecorder()
	actionEP.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/test/action", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEndpointInputData(t *testing.T) {
	echoEP := &Endpoint{
		Path: "test/echo",
		DataFunc: func(ar *Request) ([]byte, error) {
			return ar.InputData, nil
		},
	}
	require.NoError(t, echoEP.check())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test/echo", strings.NewReader(`{"length":16}`))
	echoEP.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"length":16}`, w.Body.String())
}

func TestStatusError(t *testing.T) {
	err := ErrorWithStatus(errors.New("bad input"), http.StatusBadRequest)
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, TextStatusCode(err))
	assert.Equal(t, http.StatusInternalServerError, TextStatusCode(errors.New("plain")))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ar := GetAPIRequest(r)
		require.NotNil(t, ar)
		seenID = ar.RequestID
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, w.Header().Get("X-Request-ID"))
}

func TestEnrichedResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	ew := NewEnrichedResponseWriter(w)
	_, err := ew.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ew.Status)

	w = httptest.NewRecorder()
	ew = NewEnrichedResponseWriter(w)
	ew.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, ew.Status)
}
