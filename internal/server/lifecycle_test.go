package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockService struct {
	started atomic.Bool
	stopped atomic.Bool
	startFn func(ctx context.Context) error
}

func (m *mockService) Start(ctx context.Context) error {
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn(ctx)
	}
	// Block until stopped
	for !m.stopped.Load() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (m *mockService) Stop() {
	m.stopped.Store(true)
}

func waitStarted(t *testing.T, svcs ...*mockService) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		all := true
		for _, s := range svcs {
			all = all && s.started.Load()
		}
		if all {
			return
		}
		select {
		case <-deadline:
			t.Fatal("services did not start in time")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestLifecycleStartsAndStopsServices(t *testing.T) {
	logger := zaptest.NewLogger(t)
	lc := NewLifecycle(logger)

	svc1 := &mockService{}
	svc2 := &mockService{}
	var mu sync.Mutex
	var closed []string
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)
	lc.AddCloser("postgres", func() error { mu.Lock(); closed = append(closed, "postgres"); mu.Unlock(); return nil })
	lc.AddCloser("redis", func() error { mu.Lock(); closed = append(closed, "redis"); mu.Unlock(); return nil })

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- lc.Run(ctx)
	}()

	waitStarted(t, svc1, svc2)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}

	assert.True(t, svc1.stopped.Load())
	assert.True(t, svc2.stopped.Load())
	assert.Equal(t, []string{"redis", "postgres"}, closed)
}

func TestLifecycleReturnsServiceFailure(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	boom := errors.New("listen tcp :4000: address already in use")
	failing := &mockService{startFn: func(context.Context) error { return boom }}
	healthy := &mockService{}
	lc.Add("telnet", failing)
	lc.Add("other", healthy)

	err := lc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service telnet")
	assert.True(t, failing.stopped.Load())
	assert.True(t, healthy.stopped.Load())
}

func TestLifecycleCancelsServiceContext(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	sawCancel := make(chan struct{})
	svc := &mockService{startFn: func(ctx context.Context) error {
		<-ctx.Done()
		close(sawCancel)
		return nil
	}}
	lc.Add("sessions", svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	waitStarted(t, svc)
	cancel()

	select {
	case <-sawCancel:
	case <-time.After(2 * time.Second):
		t.Fatal("service context was not cancelled")
	}
	assert.NoError(t, <-done)
}

func TestLifecycleCloserErrorIsNotFatal(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	lc.AddCloser("redis", func() error { return errors.New("already closed") })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, lc.Run(ctx))
}

func TestFuncService(t *testing.T) {
	started := false
	stopped := false

	svc := &FuncService{
		StartFn: func(context.Context) error {
			started = true
			return nil
		},
		StopFn: func() {
			stopped = true
		},
	}

	err := svc.Start(context.Background())
	assert.NoError(t, err)
	assert.True(t, started)

	svc.Stop()
	assert.True(t, stopped)
}
