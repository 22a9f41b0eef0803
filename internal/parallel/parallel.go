// SPDX-License-Identifier: MPL-2.0

// Package parallel provides the process-wide bounded-parallelism cap used
// by per-file compiler-header extraction and per-file format/tidy tasks.
package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Cap is an explicit, passed-around replacement for the teacher's
// singleton ParallelismState: a bounded worker count for one invocation's
// per-file fan-out.
type Cap struct {
	n int
}

// WarnFunc receives a warning message; the caller wires it to
// internal/logging (or a no-op in tests).
type WarnFunc func(msg string)

// NewCap returns a Cap of n workers. n <= 0 is clamped to 1 with a call to
// warn, per §4.H ("setting the cap to 0 is clamped to 1 with a warning").
func NewCap(n int, warn WarnFunc) Cap {
	if n <= 0 {
		if warn != nil {
			warn("parallelism clamped to 1 (requested 0 or less)")
		}
		return Cap{n: 1}
	}
	return Cap{n: n}
}

// Default returns a Cap sized to the host's hardware concurrency (minimum
// 1), the default when no explicit cap is configured.
func Default() Cap {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return Cap{n: n}
}

// N returns the worker count.
func (c Cap) N() int { return c.n }

// Group runs fn once per item in items, bounded to c.N() concurrent calls.
// The first nonzero error stops new work from starting, but goroutines
// already running are allowed to finish, per §5's cancellation model
// ("siblings already running are allowed to finish; no forced kill").
func Group[T any](ctx context.Context, c Cap, items []T, fn func(context.Context, T) error) error {
	g := new(errgroup.Group)
	g.SetLimit(c.N())

	var failed atomic.Bool
	for _, item := range items {
		item := item
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := fn(ctx, item); err != nil {
				failed.Store(true)
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
