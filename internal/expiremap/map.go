package expiremap

import (
	"context"
	"sync"
	"time"
)

// Map is a concurrency-safe in-memory key–value map with a fixed TTL.
//
// Every entry carries an absolute expiry time. An entry is reclaimed either
// lazily, when a Get finds it past its expiry, or in bulk by the background
// vacuum goroutine that sweeps the whole map once per TTL period.
//
// Ownership model:
// Map owns its vacuum goroutine. Call Close to stop it; a Map that is
// dropped without Close leaks the goroutine, which keeps ticking (and keeps
// the map reachable) forever.
type Map[K comparable, V any] struct {
	mu sync.RWMutex

	ttl   time.Duration
	items map[K]entry[V]

	// Goroutine ownership.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closed bool
}

// entry pairs a stored value with the absolute point in time after which
// it is stale. expiresBy is set to now+ttl when the key's expiry window is
// (re)established; see Set for when that happens.
type entry[V any] struct {
	value     V
	expiresBy time.Time
}

// New constructs an empty map and starts its background vacuum, which
// sweeps expired entries once per ttl period for the life of the map.
//
// ttl must be positive. This is a precondition, not a validated input:
// a zero or negative ttl makes every entry stale on arrival and panics the
// vacuum ticker.
func New[K comparable, V any](ttl time.Duration) *Map[K, V] {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Map[K, V]{
		ttl:    ttl,
		items:  make(map[K]entry[V]),
		ctx:    ctx,
		cancel: cancel,
	}

	m.wg.Add(1)
	go m.vacuumLoop()

	return m
}

// Close stops the background vacuum and waits for it to exit.
//
// Close is safe to call multiple times. The map remains usable afterward:
// Get/Set/Delete keep working and lazy expiry on Get still applies, but no
// periodic sweep reclaims stale entries anymore.
func (m *Map[K, V]) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	cancel := m.cancel
	m.mu.Unlock()

	// Cancel outside the lock so shutdown doesn't block readers/writers.
	cancel()
	m.wg.Wait()
	return nil
}

// Get reads a key. The second return reports whether a live entry was found.
//
// It performs lazy expiry: an entry found past its expiresBy is removed as
// a side effect and reported as absent, whether or not the vacuum has run.
func (m *Map[K, V]) Get(key K) (V, bool) {
	now := time.Now()

	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if now.After(e.expiresBy) {
		// Stale: upgrade to a write lock to delete.
		m.mu.Lock()
		// Re-check; Set may have opened a fresh window between locks.
		if e2, ok := m.items[key]; ok && now.After(e2.expiresBy) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set writes/overwrites a key and returns the map for chaining.
//
// Refresh policy:
//   - Overwriting a key whose entry is still live keeps the existing
//     expiresBy. Repeated writes do not extend an entry's life.
//   - A write to an absent key, or to one whose expiry has already passed,
//     starts a fresh window: expiresBy = now + ttl.
//
// Consequently expiresBy never moves backward while an entry stays live.
func (m *Map[K, V]) Set(key K, value V) *Map[K, V] {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	expiresBy := now.Add(m.ttl)
	if e, ok := m.items[key]; ok && now.Before(e.expiresBy) {
		expiresBy = e.expiresBy
	}
	m.items[key] = entry[V]{value: value, expiresBy: expiresBy}

	return m
}

// Delete removes a key unconditionally, with no expiry check, and reports
// whether an entry was physically present (stale or not).
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.items[key]
	delete(m.items, key)
	return ok
}

// Len returns the number of entries physically present.
//
// Note: Len includes entries that have expired but haven't been reclaimed
// yet. Lazy expiry removes them when read; the vacuum removes them on its
// next sweep. Callers must not treat Len as an exact live-entry count.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Keys returns a snapshot of the physically present keys, stale entries
// included, in no particular order.
//
// This is a debug/teaching helper used by the demo.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]K, 0, len(m.items))
	for k := range m.items {
		out = append(out, k)
	}
	return out
}

// TTL returns the time-to-live the map was constructed with.
func (m *Map[K, V]) TTL() time.Duration { return m.ttl }
