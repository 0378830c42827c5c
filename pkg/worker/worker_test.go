package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/worker"
)

func TestFailFastGroup_CancelsOthersOnError(t *testing.T) {
	expectedErr := errors.New("unexpected")
	_, group := worker.NewFailFastGroup(context.Background())

	group.Do(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	group.Do(func(context.Context) error {
		return expectedErr
	})

	assert.ErrorIs(t, group.Wait(), expectedErr)
}

func TestPeriodicalJob_RunsUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	job := worker.PeriodicalJob(func(context.Context) error {
		calls.Add(1)
		return errors.New("logged and ignored")
	}, 5*time.Millisecond, log.NewStub())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := job(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, calls.Load(), int32(1))
}

func TestPool_LimitsConcurrentJobs(t *testing.T) {
	const maxWorkers = 2
	pool := worker.NewPool(maxWorkers)

	var running, peak, done atomic.Int32
	for range 10 {
		pool.Do(func() {
			current := running.Add(1)
			for {
				prev := peak.Load()
				if current <= prev || peak.CompareAndSwap(prev, current) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			done.Add(1)
		})
	}
	pool.Wait()

	assert.Equal(t, int32(10), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(maxWorkers))
}
