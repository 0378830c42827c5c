package worker

import (
	"context"
	"sync"
)

type ErrorJob func(context.Context) error

type Group interface {
	Do(ErrorJob)
	Wait() error
}

type group struct {
	ctx       context.Context
	ctxCancel context.CancelFunc

	errOnce   sync.Once
	errResult error
	pool      Pool
}

// NewFailFastGroup cancels the shared context as soon as any job returns an error.
func NewFailFastGroup(ctx context.Context) (context.Context, Group) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &group{
		ctx:       ctx,
		ctxCancel: cancel,
		pool:      NewPool(MaxWorkersCountUnlimited),
	}
}

func (g *group) Do(job ErrorJob) {
	g.pool.Do(func() {
		err := job(g.ctx)
		if err == nil {
			return
		}

		g.errOnce.Do(func() {
			g.errResult = err
			g.ctxCancel()
		})
	})
}

func (g *group) Wait() error {
	g.pool.Wait()
	g.ctxCancel()
	return g.errResult
}
