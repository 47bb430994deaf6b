package main

// Notes:
// - notifyContext: we test context creation, stop(), parent propagation and
//   the platform signal list.
//   Real signal delivery is not tested: it is non-deterministic and
//   platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"slices"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("live until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatalf("fresh context already done: %v", ctx.Err())
		}

		stop()
		<-ctx.Done()
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		if ctx.Err() != context.Canceled {
			t.Errorf("Err() = %v, want context.Canceled", ctx.Err())
		}
	})

	t.Run("interrupt on every platform", func(t *testing.T) {
		t.Parallel()

		if !slices.Contains(shutdownSignals, os.Interrupt) {
			t.Errorf("shutdownSignals = %v, want os.Interrupt", shutdownSignals)
		}
	})
}
