// Package expiremap implements a single-process, in-memory key–value map
// whose entries expire a fixed time-to-live after their expiry window was
// last established.
//
// Goals for this package:
//   - Keep the core data structure explicit (a map of key to value+expiry)
//   - Expire entries through two independent paths: lazily on Get, and in
//     bulk via a background vacuum that sweeps once per TTL period
//   - Be concurrency-safe (RWMutex) between the owner and the vacuum
//   - Own and cleanly stop the vacuum goroutine (no leaks on shutdown)
package expiremap
