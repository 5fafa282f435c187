package bot

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Suraj89011/discord-bot-template/internal/metrics"
)

type cooldownKey struct {
	command string
	userID  string
}

// CooldownLedger tracks per-(command, user) cooldown expiries in
// memory. State is ephemeral and per-process.
//
// Entries remove themselves once their expiry elapses via a timer
// scheduled on the injected clock, so stale keys do not accumulate.
type CooldownLedger struct {
	mu      sync.Mutex
	entries map[cooldownKey]time.Time
	clock   clockwork.Clock
}

func NewCooldownLedger(clock clockwork.Clock) *CooldownLedger {
	return &CooldownLedger{
		entries: make(map[cooldownKey]time.Time),
		clock:   clock,
	}
}

// TryConsume checks and, if allowed, starts the cooldown window for the
// key. It returns (true, 0) when no live entry exists, after setting
// the expiry to now+cooldown and scheduling its removal. It returns
// (false, remaining) without mutation when the key is still cooling
// down.
//
// The check-then-set runs under one lock, so concurrent calls for the
// same key at the same instant yield exactly one allowed result.
func (l *CooldownLedger) TryConsume(command, userID string, cooldown time.Duration) (bool, time.Duration) {
	key := cooldownKey{command: command, userID: userID}
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.entries[key]; ok && expiry.After(now) {
		return false, expiry.Sub(now)
	}

	expiry := now.Add(cooldown)
	l.entries[key] = expiry
	metrics.CooldownEntriesActive.Set(float64(len(l.entries)))

	l.clock.AfterFunc(cooldown, func() {
		l.expire(key, expiry)
	})

	return true, 0
}

// expire removes the entry only if it still carries the scheduled
// expiry. A timer firing for an entry that was overwritten by a newer
// TryConsume must not delete the newer window.
func (l *CooldownLedger) expire(key cooldownKey, scheduled time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if current, ok := l.entries[key]; ok && current.Equal(scheduled) {
		delete(l.entries, key)
		metrics.CooldownEntriesActive.Set(float64(len(l.entries)))
	}
}

// Len returns the number of live entries.
func (l *CooldownLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
