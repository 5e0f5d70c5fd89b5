// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/internal/slots"
)

// makePool builds a pool of named slots with sequential rotation order.
func makePool(slotType publish.Tier, ids ...string) []slots.Slot {
	pool := make([]slots.Slot, 0, len(ids))
	for i, id := range ids {
		pool = append(pool, slots.Slot{
			ID:            id,
			SlotType:      slotType,
			RotationOrder: i,
			IsActive:      true,
		})
	}
	return pool
}

// idsOf extracts slot IDs in window order.
func idsOf(window []slots.Slot) []string {
	ids := make([]string, 0, len(window))
	for _, s := range window {
		ids = append(ids, s.ID)
	}
	return ids
}

/*
TestVisibleCount checks the per-type window sizes.
*/
func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 2, slots.VisibleCount(publish.TierPremium))
	assert.Equal(t, 4, slots.VisibleCount(publish.TierDestacado))
	assert.Equal(t, -1, slots.VisibleCount(publish.TierStandard))

	assert.Panics(t, func() {
		slots.VisibleCount(publish.Tier("sponsored"))
	})
}

/*
TestRotate_PremiumWrapAround replays the canonical wrap-around sequence for
a 3-slot premium pool: [A,B],[B,C],[C,A],[A,B],[B,C].
*/
func TestRotate_PremiumWrapAround(t *testing.T) {
	pool := makePool(publish.TierPremium, "A", "B", "C")

	expected := [][]string{
		{"A", "B"},
		{"B", "C"},
		{"C", "A"},
		{"A", "B"},
		{"B", "C"},
	}

	for idx, want := range expected {
		window := slots.Rotate(pool, publish.TierPremium, uint64(idx))
		assert.Equal(t, want, idsOf(window), "rotation index %d", idx)
	}
}

/*
TestRotate_WindowSizes verifies min(visibleCount, poolSize) for every type.
*/
func TestRotate_WindowSizes(t *testing.T) {
	tests := []struct {
		name     string
		slotType publish.Tier
		poolSize int
		wantLen  int
	}{
		{"premium_large_pool", publish.TierPremium, 5, 2},
		{"premium_pool_of_one", publish.TierPremium, 1, 1},
		{"destacado_large_pool", publish.TierDestacado, 7, 4},
		{"destacado_small_pool", publish.TierDestacado, 3, 3},
		{"standard_returns_whole_pool", publish.TierStandard, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.poolSize)
			for i := range ids {
				ids[i] = string(rune('A' + i))
			}
			pool := makePool(tt.slotType, ids...)

			window := slots.Rotate(pool, tt.slotType, 3)
			assert.Len(t, window, tt.wantLen)
		})
	}
}

/*
TestRotate_StandardNeverRotates checks that the standard bucket is
rotation-invariant and ordered by rotation order.
*/
func TestRotate_StandardNeverRotates(t *testing.T) {
	pool := makePool(publish.TierStandard, "A", "B", "C")

	for idx := uint64(0); idx < 7; idx++ {
		window := slots.Rotate(pool, publish.TierStandard, idx)
		assert.Equal(t, []string{"A", "B", "C"}, idsOf(window))
	}
}

/*
TestRotate_SortsByRotationOrder feeds an unsorted pool snapshot and expects
the window to follow rotation order, not input order.
*/
func TestRotate_SortsByRotationOrder(t *testing.T) {
	pool := []slots.Slot{
		{ID: "C", SlotType: publish.TierPremium, RotationOrder: 30, IsActive: true},
		{ID: "A", SlotType: publish.TierPremium, RotationOrder: 10, IsActive: true},
		{ID: "B", SlotType: publish.TierPremium, RotationOrder: 20, IsActive: true},
	}

	window := slots.Rotate(pool, publish.TierPremium, 0)
	assert.Equal(t, []string{"A", "B"}, idsOf(window))
}

/*
TestRotate_EmptyPool asserts an empty pool is a valid state, not an error.
*/
func TestRotate_EmptyPool(t *testing.T) {
	window := slots.Rotate(nil, publish.TierPremium, 42)
	assert.Empty(t, window)
}

/*
TestRotate_DoesNotMutateInput guards the snapshot discipline: the caller's
pool slice must come back untouched.
*/
func TestRotate_DoesNotMutateInput(t *testing.T) {
	pool := []slots.Slot{
		{ID: "B", RotationOrder: 2, SlotType: publish.TierPremium},
		{ID: "A", RotationOrder: 1, SlotType: publish.TierPremium},
	}

	_ = slots.Rotate(pool, publish.TierPremium, 0)

	assert.Equal(t, "B", pool[0].ID)
	assert.Equal(t, "A", pool[1].ID)
}

/*
TestScheduler_AdvanceIsSequential drives the scheduler manually from a
fixed starting index.
*/
func TestScheduler_AdvanceIsSequential(t *testing.T) {
	scheduler := slots.NewScheduler(7, time.Minute, slog.Default())

	require.Equal(t, uint64(7), scheduler.Index())
	assert.Equal(t, uint64(8), scheduler.Advance())
	assert.Equal(t, uint64(9), scheduler.Advance())
	assert.Equal(t, uint64(9), scheduler.Index())
}

/*
TestScheduler_RunAdvancesOnTick runs the ticker loop briefly and checks the
index moved, then stops it via context cancellation.
*/
func TestScheduler_RunAdvancesOnTick(t *testing.T) {
	scheduler := slots.NewScheduler(0, 5*time.Millisecond, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return scheduler.Index() > 0
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

/*
TestScheduler_ConcurrentReads hammers Index while advancing to make the
race detector prove the atomic counter discipline.
*/
func TestScheduler_ConcurrentReads(t *testing.T) {
	scheduler := slots.NewScheduler(0, time.Minute, slog.Default())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			scheduler.Advance()
		}
		close(done)
	}()

	for i := 0; i < 1000; i++ {
		_ = scheduler.Index()
	}
	<-done

	assert.Equal(t, uint64(1000), scheduler.Index())
}
