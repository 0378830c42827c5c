package storage

import (
	"context"
	"fmt"
)

const (
	durableScopePrefix = "local"
	sessionScopePrefix = "session"
)

// Scope is a key-value view over one scope of a Backend.
type Scope struct {
	backend Backend
	name    string
}

func Scoped(backend Backend, name string) *Scope {
	return &Scope{
		backend: backend,
		name:    name,
	}
}

func DurableScopeName(visitorID string) string {
	return fmt.Sprintf("%s:%s", durableScopePrefix, visitorID)
}

func SessionScopeName(visitorID string) string {
	return fmt.Sprintf("%s:%s", sessionScopePrefix, visitorID)
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.backend.Get(ctx, s.name, key)
	if err != nil {
		return "", false, fmt.Errorf("get %s from %s: %w", key, s.name, err)
	}

	return value, ok, nil
}

func (s *Scope) Set(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, s.name, key, value); err != nil {
		return fmt.Errorf("set %s in %s: %w", key, s.name, err)
	}

	return nil
}

func (s *Scope) Delete(ctx context.Context, keys ...string) error {
	if err := s.backend.Delete(ctx, s.name, keys...); err != nil {
		return fmt.Errorf("delete from %s: %w", s.name, err)
	}

	return nil
}

func (s *Scope) Clear(ctx context.Context) error {
	if err := s.backend.DeleteScope(ctx, s.name); err != nil {
		return fmt.Errorf("clear %s: %w", s.name, err)
	}

	return nil
}
