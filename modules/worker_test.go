package modules

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var errTest = errors.New("test error")

func TestRunWorker(t *testing.T) {
	m := Register("worker-test", nil, nil, nil)
	defer resetTestEnvironment()

	// clean finish
	err := m.RunWorker("test worker", func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("worker failed: %s", err)
	}

	// error
	err = m.RunWorker("test worker", func(ctx context.Context) error {
		return errTest
	})
	if !errors.Is(err, errTest) {
		t.Errorf("unexpected error: %s", err)
	}

	// panic recovery
	err = m.RunWorker("test worker", func(ctx context.Context) error {
		panic("boom")
	})
	panicked, moduleErr := IsPanic(err)
	if !panicked {
		t.Errorf("expected wrapped panic, got: %s", err)
	} else if moduleErr.TaskType != "worker" {
		t.Errorf("unexpected task type: %s", moduleErr.TaskType)
	}
}

func TestServiceWorker(t *testing.T) {
	m := Register("service-worker-test", nil, nil, nil)
	defer resetTestEnvironment()

	var runs int32
	m.StartServiceWorker("test service-worker", 2*time.Millisecond, func(ctx context.Context) error {
		if atomic.AddInt32(&runs, 1) < 3 {
			return errTest
		}
		return nil
	})

	// wait for retries to happen
	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&runs) != 3 {
		t.Errorf("service worker should have run 3 times, ran %d times", atomic.LoadInt32(&runs))
	}
}
