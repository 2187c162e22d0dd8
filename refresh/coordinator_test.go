package refresh_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/refresh"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type waitCounter struct {
	waited   atomic.Int32
	finished atomic.Int32
}

func (c *waitCounter) RefreshFinished(bool, time.Duration) { c.finished.Add(1) }
func (c *waitCounter) RefreshWaited()                      { c.waited.Add(1) }
func (c *waitCounter) RequestRetried()                     {}
func (c *waitCounter) ErrorClassified(string)              {}

type fixture struct {
	coord      *refresh.Coordinator
	calls      atomic.Int32
	failures   atomic.Int32
	release    chan struct{}
	counter    *waitCounter
	token      string
	refreshErr error
}

func setupTestFixture(token string, refreshErr error) *fixture {
	f := &fixture{
		release:    make(chan struct{}),
		counter:    &waitCounter{},
		token:      token,
		refreshErr: refreshErr,
	}
	f.coord = refresh.NewCoordinator(
		func(ctx context.Context) (string, error) {
			f.calls.Add(1)
			<-f.release
			return f.token, f.refreshErr
		},
		refresh.WithFailureHandler(func(error) { f.failures.Add(1) }),
		refresh.WithMetrics(f.counter),
		refresh.WithLogger(zerolog.Nop()),
	)
	return f
}

type result struct {
	token string
	err   error
}

// awaitAll starts n concurrent Await calls and releases the refresher once
// n-1 of them are waiting on the leader.
func (f *fixture) awaitAll(t *testing.T, n int) []result {
	t.Helper()
	results := make([]result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := f.coord.Await(context.Background())
			results[i] = result{token: token, err: err}
		}(i)
	}

	require.Eventually(t, func() bool {
		return f.calls.Load() == 1 && f.counter.waited.Load() == int32(n-1)
	}, 2*time.Second, time.Millisecond)
	require.Equal(t, refresh.Refreshing, f.coord.State())

	close(f.release)
	wg.Wait()
	return results
}

func TestConcurrentAwaitRefreshesOnce(t *testing.T) {
	f := setupTestFixture("T2", nil)

	results := f.awaitAll(t, 8)

	require.Equal(t, int32(1), f.calls.Load())
	require.Equal(t, int32(0), f.failures.Load())
	for _, r := range results {
		require.NoError(t, r.err)
		require.Equal(t, "T2", r.token)
	}
	require.Equal(t, refresh.Idle, f.coord.State())
}

func TestFailedRefreshTearsDownOnce(t *testing.T) {
	backendErr := errors.New("refresh rejected")
	f := setupTestFixture("", backendErr)

	results := f.awaitAll(t, 5)

	require.Equal(t, int32(1), f.calls.Load())
	require.Equal(t, int32(1), f.failures.Load())
	for _, r := range results {
		require.Empty(t, r.token)
		require.ErrorIs(t, r.err, apperrors.ErrRefreshFailed)
		require.ErrorIs(t, r.err, backendErr)
	}
	require.Equal(t, refresh.Idle, f.coord.State())
}

func TestEpisodesAreIndependent(t *testing.T) {
	var calls atomic.Int32
	coord := refresh.NewCoordinator(func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		if n == 1 {
			return "", apperrors.ErrNoRefreshToken
		}
		return "T3", nil
	}, refresh.WithLogger(zerolog.Nop()))

	_, err := coord.Await(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoRefreshToken)

	token, err := coord.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T3", token)
	require.Equal(t, int32(2), calls.Load())
}

func TestEmptyTokenIsAFailure(t *testing.T) {
	var failures atomic.Int32
	coord := refresh.NewCoordinator(
		func(ctx context.Context) (string, error) { return "", nil },
		refresh.WithFailureHandler(func(error) { failures.Add(1) }),
		refresh.WithLogger(zerolog.Nop()),
	)

	_, err := coord.Await(context.Background())
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
	require.Equal(t, int32(1), failures.Load())
}

func TestLeaderCancellationDoesNotCancelRefresh(t *testing.T) {
	coord := refresh.NewCoordinator(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "T2", nil
	}, refresh.WithTimeout(time.Second), refresh.WithLogger(zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	token, err := coord.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", token)
}

func TestWaiterContextEndsWait(t *testing.T) {
	f := setupTestFixture("T2", nil)

	leaderDone := make(chan result)
	go func() {
		token, err := f.coord.Await(context.Background())
		leaderDone <- result{token, err}
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, 2*time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.coord.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(f.release)
	r := <-leaderDone
	require.NoError(t, r.err)
	require.Equal(t, "T2", r.token)
}

func TestMissingRefresher(t *testing.T) {
	coord := refresh.NewCoordinator(nil, refresh.WithLogger(zerolog.Nop()))
	_, err := coord.Await(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoRefreshToken)

	coord.SetRefresher(func(context.Context) (string, error) { return "T1", nil })
	token, err := coord.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", token)
}
