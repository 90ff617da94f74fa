package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/randbase/randbase/log"
)

var (
	server     *http.Server
	serverLock sync.Mutex

	listenAddress string

	handlers     = make(map[string]http.Handler)
	handlersLock sync.RWMutex
)

// RegisterHandler registers a raw http handler with the API endpoint. Must be called before the api module starts.
func RegisterHandler(path string, handler http.Handler) {
	handlersLock.Lock()
	defer handlersLock.Unlock()
	handlers[path] = handler
}

func buildRouter() http.Handler {
	router := mux.NewRouter()

	// mount registered endpoints
	endpointsLock.RLock()
	for path, endpoint := range endpoints {
		router.Handle("/"+path, endpoint)
	}
	endpointsLock.RUnlock()

	// mount raw handlers
	handlersLock.RLock()
	for path, handler := range handlers {
		router.Handle(path, handler)
	}
	handlersLock.RUnlock()

	return &mwHandler{
		final: router,
		handlers: []Middleware{
			ModuleWorker,
			RequestLogger,
			RequestID,
		},
	}
}

func startServer() {
	module.StartServiceWorker("http server", 0, serve)
}

func serve(ctx context.Context) error {
	address := listenAddressConfig()
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	serverLock.Lock()
	listenAddress = ln.Addr().String()
	server = &http.Server{
		Handler:           buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverLock.Unlock()

	// release the listener when the module context is canceled, Serve blocks until then
	go func() {
		<-ctx.Done()
		_ = stopServer()
	}()

	log.Infof("api: starting to listen on %s", listenAddress)
	err = server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func stopServer() error {
	serverLock.Lock()
	defer serverLock.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// ListenAddress returns the address the API server is listening on. It returns an empty string if the server has not been started.
func ListenAddress() string {
	serverLock.Lock()
	defer serverLock.Unlock()
	return listenAddress
}
