package storage

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	pkgtime "github.com/neuraops/dashboard/pkg/time"
)

var ErrEmptyScope = errors.New("storage scope is empty")

// Backend keeps string values grouped by scope. A scope is one visitor's durable storage or session cache.
type Backend interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope string, keys ...string) error
	DeleteScope(ctx context.Context, scope string) error
	PurgeIdle(ctx context.Context, idleSince time.Time) (int, error)
}

type scopeRecord struct {
	Values    map[string]string `json:"values"`
	TouchedAt time.Time         `json:"touched_at"`
}

type memoryBackend struct {
	mu      sync.RWMutex
	clock   pkgtime.Clock
	scopes  map[string]*scopeRecord
	persist func(map[string]*scopeRecord) error
}

func NewMemoryBackend(clock pkgtime.Clock) Backend {
	return newMemoryBackend(clock, nil, nil)
}

func newMemoryBackend(
	clock pkgtime.Clock,
	scopes map[string]*scopeRecord,
	persist func(map[string]*scopeRecord) error,
) *memoryBackend {
	if scopes == nil {
		scopes = make(map[string]*scopeRecord)
	}

	return &memoryBackend{
		clock:   clock,
		scopes:  scopes,
		persist: persist,
	}
}

func (b *memoryBackend) Get(_ context.Context, scope, key string) (string, bool, error) {
	if scope == "" {
		return "", false, ErrEmptyScope
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	record, ok := b.scopes[scope]
	if !ok {
		return "", false, nil
	}

	value, ok := record.Values[key]
	return value, ok, nil
}

func (b *memoryBackend) Set(ctx context.Context, scope, key, value string) error {
	if scope == "" {
		return ErrEmptyScope
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	record, ok := b.scopes[scope]
	if !ok {
		record = &scopeRecord{Values: make(map[string]string)}
		b.scopes[scope] = record
	}

	record.Values[key] = value
	record.TouchedAt = b.clock.Now(ctx)
	return b.flush()
}

func (b *memoryBackend) Delete(ctx context.Context, scope string, keys ...string) error {
	if scope == "" {
		return ErrEmptyScope
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	record, ok := b.scopes[scope]
	if !ok {
		return nil
	}

	for _, key := range keys {
		delete(record.Values, key)
	}
	if len(record.Values) == 0 {
		delete(b.scopes, scope)
	} else {
		record.TouchedAt = b.clock.Now(ctx)
	}

	return b.flush()
}

func (b *memoryBackend) DeleteScope(_ context.Context, scope string) error {
	if scope == "" {
		return ErrEmptyScope
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.scopes[scope]; !ok {
		return nil
	}

	delete(b.scopes, scope)
	return b.flush()
}

func (b *memoryBackend) PurgeIdle(_ context.Context, idleSince time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	purged := 0
	for scope, record := range b.scopes {
		if record.TouchedAt.Before(idleSince) {
			delete(b.scopes, scope)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}

	return purged, b.flush()
}

func (b *memoryBackend) flush() error {
	if b.persist == nil {
		return nil
	}

	return b.persist(maps.Clone(b.scopes))
}
