package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expiremap/internal/expiremap"
)

func main() {
	// Signal-aware context is the root of ownership for long-lived background work.
	// When SIGINT/SIGTERM arrives, ctx is canceled and we initiate a clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ttl := 200 * time.Millisecond
	m := expiremap.New[string, int](ttl)
	defer func() {
		// Close is idempotent; safe to call in defer.
		if err := m.Close(); err != nil {
			log.Printf("map close: %v", err)
		}
	}()

	log.Println("expiremap demo starting")
	log.Printf("config: ttl=%s (vacuum sweeps once per ttl)", m.TTL())

	// -------------------------------------------------------------------
	// 1) Refresh policy demo: overwriting a live key keeps its expiry
	// -------------------------------------------------------------------
	m.Set("a", 1)
	log.Println(`SET a=1 (expiry window opens: now+ttl)`)

	if err := sleep(ctx, ttl/2); err != nil {
		return
	}

	if v, ok := m.Get("a"); ok {
		log.Printf("GET a = %d (halfway through the window)", v)
	}
	m.Set("a", 2)
	log.Println("SET a=2 (live overwrite: value replaced, expiry NOT extended)")

	if err := sleep(ctx, ttl/2+50*time.Millisecond); err != nil {
		return
	}

	// The original window has closed, so the overwrite is gone with it.
	if _, ok := m.Get("a"); !ok {
		log.Println("GET a: missing (expired on the original window)")
	}

	// -------------------------------------------------------------------
	// 2) Vacuum demo: stale entries vanish without ever being read
	// -------------------------------------------------------------------
	m.Set("b", 10).Set("c", 20)
	log.Printf("SET b, c; keys: %v len=%d", m.Keys(), m.Len())

	// Wait past expiry plus at least one sweep tick. No Get calls here;
	// only the vacuum can reclaim the entries.
	if err := sleep(ctx, 2*ttl+50*time.Millisecond); err != nil {
		return
	}

	log.Printf("after ttl + vacuum sweep; keys: %v len=%d", m.Keys(), m.Len())

	fmt.Println("Done. Remember: a Map dropped without Close leaks its vacuum goroutine.")
}

// sleep waits for d unless the context is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		log.Println("received shutdown signal")
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
