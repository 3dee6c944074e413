package fixtures

import (
	"context"
	"testing"

	"github.com/aretehq/arete/internal/storage/sqlite"
	"github.com/aretehq/arete/internal/types"
)

func TestPopulateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Days = 30

	counts := make([]int, 2)
	for i := range counts {
		store, err := sqlite.New(t.TempDir() + "/test.db")
		if err != nil {
			t.Fatalf("failed to create storage: %v", err)
		}

		got, err := Populate(ctx, store, opts)
		if err != nil {
			t.Fatalf("Populate failed: %v", err)
		}
		counts[i] = got.LogCount

		if len(got.PillarIDs) != len(pillarSeeds) {
			t.Errorf("pillar count = %d, want %d", len(got.PillarIDs), len(pillarSeeds))
		}
		if len(got.HabitIDs) != len(habitSeeds) {
			t.Errorf("habit count = %d, want %d", len(got.HabitIDs), len(habitSeeds))
		}

		store.Close()
	}

	if counts[0] != counts[1] {
		t.Errorf("same seed produced different log counts: %d vs %d", counts[0], counts[1])
	}
}

func TestPopulateWritesReadableData(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer store.Close()

	opts := DefaultOptions()
	opts.Days = 14
	populated, err := Populate(ctx, store, opts)
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	identity, err := store.GetIdentity(ctx)
	if err != nil || identity == nil {
		t.Fatalf("expected fixture identity, got %v, err %v", identity, err)
	}

	logs, err := store.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &populated.HabitIDs[0]})
	if err != nil {
		t.Fatalf("ListHabitLogs: %v", err)
	}
	if len(logs) == 0 {
		t.Error("expected log history for the first habit")
	}
	for _, l := range logs {
		if err := l.Validate(); err != nil {
			t.Errorf("fixture log invalid: %v", err)
		}
	}
}
