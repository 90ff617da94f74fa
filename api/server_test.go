package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServeReturnsOnCancel(t *testing.T) {
	SetDefaultListenAddress("127.0.0.1:0")
	require.NoError(t, registerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx)
	}()

	// wait for the server to bind
	for i := 0; i < 100; i++ {
		if ListenAddress() != "" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotEmpty(t, ListenAddress())

	// canceling the context must release the listener and let serve return
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
