package http

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	pkgtime "github.com/neuraops/dashboard/pkg/time"
)

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginThrottle limits login attempts per remote address.
type LoginThrottle struct {
	mu      sync.Mutex
	clock   pkgtime.Clock
	limit   rate.Limit
	burst   int
	entries map[string]*throttleEntry
}

func NewLoginThrottle(perSecond float64, burst int, clock pkgtime.Clock) *LoginThrottle {
	if burst < 1 {
		burst = 1
	}

	return &LoginThrottle{
		clock:   clock,
		limit:   rate.Limit(perSecond),
		burst:   burst,
		entries: make(map[string]*throttleEntry),
	}
}

func (t *LoginThrottle) Allow(ctx context.Context, key string) bool {
	now := t.clock.Now(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.entries[key] = entry
	}

	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Purge forgets addresses not seen since idleSince.
func (t *LoginThrottle) Purge(idleSince time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	purged := 0
	for key, entry := range t.entries {
		if entry.lastSeen.Before(idleSince) {
			delete(t.entries, key)
			purged++
		}
	}

	return purged
}

func remoteAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
