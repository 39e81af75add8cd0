package expiremap

import "time"

// vacuumLoop periodically sweeps expired entries.
//
// Why a ticker-based full scan?
//   - It's easy to reason about (correctness-first)
//   - It avoids per-entry goroutines/timers (which are expensive and hard to own)
//   - The period equals the TTL, so an unrefreshed entry is physically gone
//     at most one TTL after it goes stale, even if it is never read
func (m *Map[K, V]) vacuumLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			m.vacuum(now)
		}
	}
}

// vacuum removes every entry whose expiresBy lies before now and reports
// how many were removed. The timestamp is captured once by the caller so a
// single consistent "now" applies to the whole scan.
func (m *Map[K, V]) vacuum(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.items {
		if now.After(e.expiresBy) {
			delete(m.items, key)
			removed++
		}
	}
	return removed
}
