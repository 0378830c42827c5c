package time

import (
	"context"
	"time"
)

const nowContextKey contextKey = iota

type (
	Clock interface {
		Now(context.Context) time.Time
	}

	AdjustableClock interface {
		Clock
		Set(context.Context, time.Time) context.Context
	}

	clockImpl  struct{}
	fixedClock time.Time
	contextKey int
)

func NewAdjustableClock() AdjustableClock {
	return clockImpl{}
}

// NewFixedClock always reports t, whatever the context says.
func NewFixedClock(t time.Time) Clock {
	return fixedClock(t)
}

func (c clockImpl) Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return t
	}

	return time.Now()
}

func (c clockImpl) Set(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowContextKey, t)
}

func (c fixedClock) Now(context.Context) time.Time {
	return time.Time(c)
}
