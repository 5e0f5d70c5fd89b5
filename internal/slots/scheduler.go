// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// DefaultRotationInterval is the tick period between rotation advances.
const DefaultRotationInterval = 10 * time.Second

// Window sizes per rotating slot type.
const (
	premiumVisible   = 2
	destacadoVisible = 4
)

// # Window Computation

// VisibleCount returns how many slots of the given type are shown at once.
// Standard never rotates, so it has no window bound and returns -1.
//
// An unknown slot type is a caller bug and panics.
func VisibleCount(slotType publish.Tier) int {
	switch slotType {
	case publish.TierPremium:
		return premiumVisible
	case publish.TierDestacado:
		return destacadoVisible
	case publish.TierStandard:
		return -1
	}
	panic(fmt.Sprintf("slots: unknown slot type %q", slotType))
}

// Rotate computes the visible window of a slot pool at a rotation index.
//
// The pool is sorted ascending by rotation order, then a window of
// VisibleCount slots starting at index mod len wraps around it. The window
// slides by exactly one pool position per index increment. Standard pools
// are returned whole and unrotated. An empty pool yields an empty window.
//
// Rotate never mutates its input; the pool snapshot is the caller's.
func Rotate(pool []Slot, slotType publish.Tier, rotationIndex uint64) []Slot {
	visible := VisibleCount(slotType)

	ordered := make([]Slot, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RotationOrder < ordered[j].RotationOrder
	})

	if visible < 0 || len(ordered) == 0 {
		return ordered
	}

	if visible > len(ordered) {
		visible = len(ordered)
	}

	start := int(rotationIndex % uint64(len(ordered)))
	window := make([]Slot, 0, visible)
	for i := 0; i < visible; i++ {
		window = append(window, ordered[(start+i)%len(ordered)])
	}
	return window
}

// # Rotation Scheduler

// Scheduler owns the process-wide rotation index and advances it on a
// fixed tick.
//
// # Concurrency
//
// The index is the only mutable state and is read/written atomically, so
// concurrent readers during a tick observe either the pre- or post-advance
// value, never a torn one. Advance calls are serialized by the single
// ticker goroutine; tests may call Advance directly instead of running
// the ticker.
type Scheduler struct {
	index    atomic.Uint64
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler constructs a scheduler starting at the given rotation index.
//
// A non-positive interval falls back to [DefaultRotationInterval]. The
// scheduler is inert until [Scheduler.Run] is started or [Scheduler.Advance]
// is called manually.
func NewScheduler(startIndex uint64, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	scheduler := &Scheduler{interval: interval, logger: logger}
	scheduler.index.Store(startIndex)
	return scheduler
}

// Index returns the current rotation index.
func (s *Scheduler) Index() uint64 {
	return s.index.Load()
}

// Advance moves the rotation forward by one pool position and returns the
// new index.
func (s *Scheduler) Advance() uint64 {
	return s.index.Add(1)
}

// Run advances the rotation on every tick until the context is cancelled.
//
// The loop is process-scoped: it is started once from main and stops only
// on shutdown.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("slot_rotation_started",
		slog.Duration("interval", s.interval),
		slog.Uint64("start_index", s.Index()),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("slot_rotation_stopped", slog.Uint64("final_index", s.Index()))
			return
		case <-ticker.C:
			s.Advance()
		}
	}
}
