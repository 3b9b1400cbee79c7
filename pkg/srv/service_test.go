package srv

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubService struct {
	started  atomic.Bool
	stopped  atomic.Bool
	stopErr  error
	startErr error
}

func (s *stubService) Start(ctx context.Context) error {
	s.started.Store(true)
	return s.startErr
}

func (s *stubService) Shutdown(ctx context.Context) error {
	s.stopped.Store(true)
	return s.stopErr
}

func TestShutdownServices_StopsAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	a, b := &stubService{}, &stubService{stopErr: errors.New("boom")}
	services := []Service{a, b}

	StartServices(ctx, services)
	require.Eventually(t, func() bool {
		return a.started.Load() && b.started.Load()
	}, time.Second, 5*time.Millisecond)

	cancel()
	err := ShutdownServices(ctx, services)

	assert.EqualError(t, err, "boom")
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
}

func TestCleanupService(t *testing.T) {
	calls := 0
	svc := NewCleanup(func() error {
		calls++
		return errors.New("already closed")
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.Zero(t, calls)
	assert.EqualError(t, svc.Shutdown(context.Background()), "already closed")
	assert.EqualError(t, svc.Shutdown(context.Background()), "already closed")
	assert.Equal(t, 1, calls)
}
