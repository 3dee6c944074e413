// Package fixtures generates deterministic life-management data for
// tests and benchmarks: an identity, a handful of pillars with standards,
// habits attached to them, and months of log history with realistic
// streaks and gaps.
package fixtures

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

// pillar blueprints shared by all fixture sizes
var pillarSeeds = []struct {
	name  string
	color string
}{
	{"Health", "#2e7d32"},
	{"Craft", "#1565c0"},
	{"Relationships", "#ad1457"},
	{"Finances", "#ef6c00"},
	{"Mind", "#6a1b9a"},
}

var habitSeeds = []struct {
	title     string
	frequency types.HabitFrequency
	target    int
}{
	{"Morning run", types.FrequencyDaily, 5},
	{"Strength training", types.FrequencyWeekly, 3},
	{"Read 30 minutes", types.FrequencyDaily, 7},
	{"Deep work block", types.FrequencyDaily, 5},
	{"Call a friend", types.FrequencyWeekly, 2},
	{"Review budget", types.FrequencyWeekly, 1},
	{"Meditate", types.FrequencyDaily, 7},
	{"Journal", types.FrequencyDaily, 6},
}

var standardSeeds = []struct {
	label  string
	target float64
	unit   string
}{
	{"Workouts per week", 4, "sessions"},
	{"Sleep hours", 7.5, "hours"},
	{"Deep work hours", 20, "hours/week"},
	{"Savings rate", 25, "percent"},
}

// Options controls the shape of the generated history.
type Options struct {
	// Days of log history ending at EndDate, inclusive.
	Days int
	// EndDate anchors the history. Tests pin this for reproducibility.
	EndDate types.Day
	// Seed feeds the PRNG so runs are repeatable.
	Seed int64
	// CompletionRate is the per-day chance a habit gets a completed log.
	CompletionRate float64
}

// DefaultOptions is three months of history at an 80% completion rate.
func DefaultOptions() Options {
	return Options{
		Days:           90,
		EndDate:        types.Day("2024-03-31"),
		Seed:           1,
		CompletionRate: 0.8,
	}
}

// Populated describes what Populate wrote, so tests can reference IDs
// without re-querying.
type Populated struct {
	PillarIDs []int64
	HabitIDs  []int64
	LogCount  int
}

// Populate writes the fixture data set through the given store. The
// same Options always produce the same data.
func Populate(ctx context.Context, store storage.Storage, opts Options) (*Populated, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	out := &Populated{}

	if _, err := store.SaveIdentity(ctx, identityFixture()); err != nil {
		return nil, fmt.Errorf("fixture identity: %w", err)
	}

	for _, ps := range pillarSeeds {
		id, err := store.CreatePillar(ctx, &types.Pillar{
			Name:        ps.name,
			Description: fmt.Sprintf("The %s pillar", ps.name),
			Color:       ps.color,
			Order:       len(out.PillarIDs),
		})
		if err != nil {
			return nil, fmt.Errorf("fixture pillar %s: %w", ps.name, err)
		}
		out.PillarIDs = append(out.PillarIDs, id)
	}

	for i, ss := range standardSeeds {
		pillarID := out.PillarIDs[i%len(out.PillarIDs)]
		if _, err := store.AddStandard(ctx, &types.Standard{
			PillarID: pillarID,
			Label:    ss.label,
			Target:   ss.target,
			Unit:     ss.unit,
		}); err != nil {
			return nil, fmt.Errorf("fixture standard %s: %w", ss.label, err)
		}
	}

	for i, hs := range habitSeeds {
		pillarID := out.PillarIDs[i%len(out.PillarIDs)]
		id, err := store.CreateHabit(ctx, &types.Habit{
			PillarID:          &pillarID,
			Title:             hs.title,
			Frequency:         hs.frequency,
			TargetDaysPerWeek: hs.target,
		})
		if err != nil {
			return nil, fmt.Errorf("fixture habit %s: %w", hs.title, err)
		}
		out.HabitIDs = append(out.HabitIDs, id)
	}

	for _, habitID := range out.HabitIDs {
		for d := opts.Days - 1; d >= 0; d-- {
			if rng.Float64() > opts.CompletionRate {
				continue
			}
			_, err := store.LogHabit(ctx, &types.HabitLog{
				HabitID:   habitID,
				Date:      opts.EndDate.AddDays(-d),
				Completed: true,
			})
			if err != nil {
				return nil, fmt.Errorf("fixture log: %w", err)
			}
			out.LogCount++
		}
	}

	return out, nil
}

func identityFixture() types.IdentityUpdate {
	vision := "Live deliberately across every pillar."
	mission := "Build systems that make the right thing the easy thing."
	values := []string{"honesty", "craft", "health", "curiosity"}
	return types.IdentityUpdate{
		Vision:     &vision,
		Mission:    &mission,
		CoreValues: &values,
	}
}
