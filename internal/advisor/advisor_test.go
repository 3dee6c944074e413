package advisor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aretehq/arete/internal/types"
)

func ptr(v int64) *int64 { return &v }

func streakLogs(habitID int64, end types.Day, days int) []types.HabitLog {
	logs := make([]types.HabitLog, 0, days)
	for i := 0; i < days; i++ {
		logs = append(logs, types.HabitLog{
			HabitID:   habitID,
			Date:      end.AddDays(-i),
			Completed: true,
		})
	}
	return logs
}

func alertIDs(alerts []types.AdvisoryAlert) []string {
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestEvaluateEmptyInput(t *testing.T) {
	if got := Evaluate(Input{Today: "2024-03-10"}); len(got) != 0 {
		t.Errorf("expected no alerts for empty input, got %v", alertIDs(got))
	}
}

func TestEvaluateStreakMilestones(t *testing.T) {
	today := types.Day("2024-03-10")
	in := Input{
		Today: today,
		Habits: []types.Habit{
			{ID: 1, PillarID: ptr(5), Title: "Meditate", TargetDaysPerWeek: 7},
		},
		Logs: streakLogs(1, today, 21),
	}

	got := alertIDs(Evaluate(in))
	want := []string{"streak-1-21", "streak-1-7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alert IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateBrokenStreak(t *testing.T) {
	today := types.Day("2024-03-10")
	in := Input{
		Today: today,
		Habits: []types.Habit{
			{ID: 1, Title: "Run", TargetDaysPerWeek: 0},
		},
		// 10 day run that ended a week ago.
		Logs: streakLogs(1, today.AddDays(-7), 10),
	}

	got := Evaluate(in)
	ids := alertIDs(got)
	want := []string{"broken-streak-1-10"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("alert IDs mismatch (-want +got):\n%s", diff)
	}
	if got[0].Severity != types.SeverityChallenge {
		t.Errorf("broken streak severity = %s, want %s", got[0].Severity, types.SeverityChallenge)
	}
	if !got[0].CreatedAt.IsZero() {
		t.Errorf("advisor must not stamp CreatedAt, got %v", got[0].CreatedAt)
	}
}

func TestEvaluateLowConsistency(t *testing.T) {
	today := types.Day("2024-03-28")
	in := Input{
		Today: today,
		Habits: []types.Habit{
			// Target 5/week, only 2 completions in the window.
			{ID: 3, Title: "Write", TargetDaysPerWeek: 5},
		},
		Logs: []types.HabitLog{
			{HabitID: 3, Date: "2024-03-20", Completed: true},
			{HabitID: 3, Date: "2024-03-25", Completed: true},
		},
	}

	got := alertIDs(Evaluate(in))
	want := []string{"low-consistency-3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alert IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluatePillarWithoutHabits(t *testing.T) {
	in := Input{
		Today: "2024-03-10",
		Pillars: []types.Pillar{
			{ID: 1, Name: "Health"},
			{ID: 2, Name: "Craft"},
		},
		Habits: []types.Habit{
			{ID: 1, PillarID: ptr(1), Title: "Sleep by 11"},
		},
	}

	got := alertIDs(Evaluate(in))
	want := []string{"pillar-no-habits-2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alert IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateArchivedHabitDoesNotBackPillar(t *testing.T) {
	archived := types.Habit{ID: 1, PillarID: ptr(1), Title: "Old habit"}
	now := archived.CreatedAt
	archived.ArchivedAt = &now

	in := Input{
		Today:   "2024-03-10",
		Pillars: []types.Pillar{{ID: 1, Name: "Health"}},
		Habits:  []types.Habit{archived},
	}

	got := alertIDs(Evaluate(in))
	want := []string{"pillar-no-habits-1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alert IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateAlignmentWarnings(t *testing.T) {
	in := Input{
		Today: "2024-03-10",
		Snapshots: []types.PerformanceSnapshot{
			{PillarID: 1, Period: "2024-02", AlignmentState: types.Aligned},
			{PillarID: 2, Period: "2024-02", AlignmentState: types.Drifting},
			{PillarID: 3, Period: "2024-02", AlignmentState: types.Regressing},
		},
	}

	got := alertIDs(Evaluate(in))
	want := []string{"alignment-2-2024-02", "alignment-3-2024-02"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alert IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	today := types.Day("2024-03-10")
	in := Input{
		Today:   today,
		Pillars: []types.Pillar{{ID: 1, Name: "Health"}, {ID: 2, Name: "Craft"}},
		Habits: []types.Habit{
			{ID: 1, PillarID: ptr(1), Title: "Meditate", TargetDaysPerWeek: 7},
			{ID: 2, PillarID: ptr(2), Title: "Write", TargetDaysPerWeek: 5},
		},
		Logs: streakLogs(1, today, 8),
		Snapshots: []types.PerformanceSnapshot{
			{PillarID: 2, Period: "2024-02", AlignmentState: types.Avoiding},
		},
	}

	first := Evaluate(in)
	second := Evaluate(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated evaluation differs (-first +second):\n%s", diff)
	}
}
