package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreatePillar(t *testing.T, store *SQLiteStorage, name string) int64 {
	t.Helper()
	id, err := store.CreatePillar(context.Background(), &types.Pillar{Name: name})
	if err != nil {
		t.Fatalf("failed to create pillar %s: %v", name, err)
	}
	return id
}

func mustCreateHabit(t *testing.T, store *SQLiteStorage, title string, pillarID *int64) int64 {
	t.Helper()
	id, err := store.CreateHabit(context.Background(), &types.Habit{
		Title:             title,
		PillarID:          pillarID,
		TargetDaysPerWeek: 5,
	})
	if err != nil {
		t.Fatalf("failed to create habit %s: %v", title, err)
	}
	return id
}

func strPtr(s string) *string { return &s }

func TestIdentitySingleton(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Empty store: no identity, no error.
	identity, err := store.GetIdentity(ctx)
	if err != nil {
		t.Fatalf("GetIdentity: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected nil identity on empty store, got %+v", identity)
	}

	// Update before create fails.
	if err := store.UpdateIdentity(ctx, types.IdentityUpdate{Vision: strPtr("v")}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("UpdateIdentity on missing identity = %v, want ErrNotFound", err)
	}

	// First save creates.
	saved, err := store.SaveIdentity(ctx, types.IdentityUpdate{
		Vision:     strPtr("see clearly"),
		CoreValues: &[]string{"honesty", "craft"},
	})
	if err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if saved.ID != 1 {
		t.Errorf("identity id = %d, want the singleton row 1", saved.ID)
	}

	// Second save merges, still one row.
	if _, err := store.SaveIdentity(ctx, types.IdentityUpdate{Mission: strPtr("build")}); err != nil {
		t.Fatalf("second SaveIdentity: %v", err)
	}
	identity, err = store.GetIdentity(ctx)
	if err != nil {
		t.Fatalf("GetIdentity: %v", err)
	}
	if identity.Vision != "see clearly" || identity.Mission != "build" {
		t.Errorf("merge lost fields: %+v", identity)
	}
	if diff := cmp.Diff([]string{"honesty", "craft"}, identity.CoreValues); diff != "" {
		t.Errorf("core values mismatch (-want +got):\n%s", diff)
	}
}

func TestPillarCascadeDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keep := mustCreatePillar(t, store, "Health")
	doomed := mustCreatePillar(t, store, "Craft")

	for _, pillarID := range []int64{keep, doomed} {
		if _, err := store.AddStandard(ctx, &types.Standard{
			PillarID: pillarID, Label: "Workouts per week", Target: 4,
		}); err != nil {
			t.Fatalf("AddStandard: %v", err)
		}
	}

	if err := store.DeletePillar(ctx, doomed); err != nil {
		t.Fatalf("DeletePillar: %v", err)
	}

	// The doomed pillar and exactly its standards are gone.
	if p, err := store.GetPillar(ctx, doomed); err != nil || p != nil {
		t.Errorf("deleted pillar still readable: %+v, %v", p, err)
	}
	gone, err := store.ListStandards(ctx, doomed)
	if err != nil {
		t.Fatalf("ListStandards: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("cascade left %d standards behind", len(gone))
	}
	kept, err := store.ListStandards(ctx, keep)
	if err != nil {
		t.Fatalf("ListStandards: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("cascade removed the surviving pillar's standards: %d left", len(kept))
	}

	// Deleting again reports not found.
	if err := store.DeletePillar(ctx, doomed); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestStandardMetricSlug(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pillarID := mustCreatePillar(t, store, "Health")

	id, err := store.AddStandard(ctx, &types.Standard{
		PillarID: pillarID, Label: "4 Workouts / week!", Target: 4,
	})
	if err != nil {
		t.Fatalf("AddStandard: %v", err)
	}

	std, err := store.GetStandard(ctx, id)
	if err != nil {
		t.Fatalf("GetStandard: %v", err)
	}
	if std.Metric != "4_workouts_week" {
		t.Errorf("metric = %q, want 4_workouts_week", std.Metric)
	}

	// Changing the label re-derives the slug.
	if err := store.UpdateStandard(ctx, id, types.StandardUpdate{Label: strPtr("Sleep Hours")}); err != nil {
		t.Fatalf("UpdateStandard: %v", err)
	}
	std, _ = store.GetStandard(ctx, id)
	if std.Metric != "sleep_hours" {
		t.Errorf("metric after relabel = %q, want sleep_hours", std.Metric)
	}
}

func TestStandardValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pillarID := mustCreatePillar(t, store, "Health")

	if _, err := store.AddStandard(ctx, &types.Standard{PillarID: pillarID, Label: "", Target: 4}); err == nil {
		t.Error("empty label accepted")
	}
	if _, err := store.AddStandard(ctx, &types.Standard{PillarID: pillarID, Label: "X", Target: 0}); err == nil {
		t.Error("zero target accepted")
	}
	if _, err := store.AddStandard(ctx, &types.Standard{PillarID: 9999, Label: "X", Target: 1}); err == nil {
		t.Error("standard on missing pillar accepted")
	}
}

func TestGoalLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pillarID := mustCreatePillar(t, store, "Craft")

	due := types.Day("2024-12-31")
	id, err := store.CreateGoal(ctx, &types.Goal{
		Title:      "Ship the project",
		PillarID:   &pillarID,
		TargetDate: &due,
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	g, err := store.GetGoal(ctx, id)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if g.Status != types.GoalActive {
		t.Errorf("new goal status = %s, want active", g.Status)
	}

	// Clear the pillar and target date with explicit nulls.
	var noPillar *int64
	var noDate *types.Day
	err = store.UpdateGoal(ctx, id, types.GoalUpdate{PillarID: &noPillar, TargetDate: &noDate})
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	g, _ = store.GetGoal(ctx, id)
	if g.PillarID != nil || g.TargetDate != nil {
		t.Errorf("clearing nullables failed: %+v", g)
	}

	// Filters.
	active := types.GoalActive
	goals, err := store.ListGoals(ctx, types.GoalFilter{Status: &active})
	if err != nil || len(goals) != 1 {
		t.Errorf("ListGoals active = %d goals, err %v", len(goals), err)
	}
}

func TestMilestoneCompletionStamps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	goalID, err := store.CreateGoal(ctx, &types.Goal{Title: "Learn piano"})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	msID, err := store.AddMilestone(ctx, &types.Milestone{GoalID: goalID, Title: "First scale"})
	if err != nil {
		t.Fatalf("AddMilestone: %v", err)
	}

	// Complete stamps CompletedAt.
	if err := store.SetMilestoneCompleted(ctx, msID, true); err != nil {
		t.Fatalf("SetMilestoneCompleted(true): %v", err)
	}
	milestones, _ := store.ListMilestones(ctx, goalID)
	if len(milestones) != 1 || !milestones[0].Completed || milestones[0].CompletedAt == nil {
		t.Fatalf("completion not stamped: %+v", milestones)
	}
	stamped := *milestones[0].CompletedAt

	// Completing again leaves the stamp alone.
	time.Sleep(10 * time.Millisecond)
	if err := store.SetMilestoneCompleted(ctx, msID, true); err != nil {
		t.Fatalf("idempotent complete: %v", err)
	}
	milestones, _ = store.ListMilestones(ctx, goalID)
	if !milestones[0].CompletedAt.Equal(stamped) {
		t.Errorf("re-completing moved the stamp: %v -> %v", stamped, milestones[0].CompletedAt)
	}

	// Reopening clears it.
	if err := store.SetMilestoneCompleted(ctx, msID, false); err != nil {
		t.Fatalf("SetMilestoneCompleted(false): %v", err)
	}
	milestones, _ = store.ListMilestones(ctx, goalID)
	if milestones[0].Completed || milestones[0].CompletedAt != nil {
		t.Errorf("reopen did not clear the stamp: %+v", milestones[0])
	}

	// Goal delete cascades milestones.
	if err := store.DeleteGoal(ctx, goalID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	milestones, _ = store.ListMilestones(ctx, goalID)
	if len(milestones) != 0 {
		t.Errorf("goal delete left %d milestones", len(milestones))
	}
}

func TestHabitArchive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	habitID := mustCreateHabit(t, store, "Run", nil)

	if err := store.ArchiveHabit(ctx, habitID); err != nil {
		t.Fatalf("ArchiveHabit: %v", err)
	}

	// Archived habits drop out of default listings but Get still works.
	habits, _ := store.ListHabits(ctx, types.HabitFilter{})
	if len(habits) != 0 {
		t.Errorf("archived habit still listed: %+v", habits)
	}
	habits, _ = store.ListHabits(ctx, types.HabitFilter{IncludeArchived: true})
	if len(habits) != 1 || habits[0].ArchivedAt == nil {
		t.Fatalf("IncludeArchived listing wrong: %+v", habits)
	}
	stamped := *habits[0].ArchivedAt

	// Archiving again does not move the stamp.
	time.Sleep(10 * time.Millisecond)
	if err := store.ArchiveHabit(ctx, habitID); err != nil {
		t.Fatalf("second archive: %v", err)
	}
	habits, _ = store.ListHabits(ctx, types.HabitFilter{IncludeArchived: true})
	if !habits[0].ArchivedAt.Equal(stamped) {
		t.Errorf("re-archiving moved the stamp")
	}

	if err := store.ArchiveHabit(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("archive missing habit = %v, want ErrNotFound", err)
	}
}

func TestHabitLogUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	habitID := mustCreateHabit(t, store, "Meditate", nil)
	day := types.Day("2024-03-10")

	first, err := store.LogHabit(ctx, &types.HabitLog{HabitID: habitID, Date: day, Completed: true})
	if err != nil {
		t.Fatalf("LogHabit: %v", err)
	}

	// Same day again: updates in place, same row ID, no duplicate.
	second, err := store.LogHabit(ctx, &types.HabitLog{
		HabitID: habitID, Date: day, Completed: false, Note: "skipped",
	})
	if err != nil {
		t.Fatalf("second LogHabit: %v", err)
	}
	if first != second {
		t.Errorf("upsert created a new row: %d then %d", first, second)
	}

	logs, err := store.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &habitID})
	if err != nil {
		t.Fatalf("ListHabitLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after upsert, got %d", len(logs))
	}
	if logs[0].Completed || logs[0].Note != "skipped" {
		t.Errorf("second write did not win: %+v", logs[0])
	}

	// Habit delete cascades logs.
	if err := store.DeleteHabit(ctx, habitID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	logs, _ = store.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &habitID})
	if len(logs) != 0 {
		t.Errorf("habit delete left %d logs", len(logs))
	}
}

func TestHabitLogDateRangeFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	habitID := mustCreateHabit(t, store, "Read", nil)

	for _, d := range []types.Day{"2024-03-01", "2024-03-05", "2024-03-10"} {
		if _, err := store.LogHabit(ctx, &types.HabitLog{HabitID: habitID, Date: d, Completed: true}); err != nil {
			t.Fatalf("LogHabit %s: %v", d, err)
		}
	}

	from, to := types.Day("2024-03-02"), types.Day("2024-03-10")
	logs, err := store.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &habitID, From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListHabitLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("range filter returned %d logs, want 2 (bounds inclusive)", len(logs))
	}
}

func TestReflectionUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := types.Day("2024-03-10")

	first, err := store.SaveReflection(ctx, &types.Reflection{
		Type: types.ReflectionDailyPM, Date: day,
		Answers:     map[string]string{"win": "shipped"},
		EnergyLevel: 7, Mood: 8,
	})
	if err != nil {
		t.Fatalf("SaveReflection: %v", err)
	}

	r, _ := store.GetReflection(ctx, types.ReflectionDailyPM, day)
	created := r.CreatedAt

	second, err := store.SaveReflection(ctx, &types.Reflection{
		Type: types.ReflectionDailyPM, Date: day,
		Answers:     map[string]string{"win": "rested"},
		EnergyLevel: 5, Mood: 6,
	})
	if err != nil {
		t.Fatalf("second SaveReflection: %v", err)
	}
	if first != second {
		t.Errorf("upsert created a new row: %d then %d", first, second)
	}

	r, err = store.GetReflection(ctx, types.ReflectionDailyPM, day)
	if err != nil {
		t.Fatalf("GetReflection: %v", err)
	}
	if r.Answers["win"] != "rested" || r.EnergyLevel != 5 {
		t.Errorf("second write did not win: %+v", r)
	}
	if !r.CreatedAt.Equal(created) {
		t.Errorf("update moved CreatedAt: %v -> %v", created, r.CreatedAt)
	}

	// A different slot on the same day is a separate row.
	if _, err := store.SaveReflection(ctx, &types.Reflection{
		Type: types.ReflectionDailyAM, Date: day, EnergyLevel: 6, Mood: 6,
	}); err != nil {
		t.Fatalf("SaveReflection other slot: %v", err)
	}
	all, _ := store.ListReflections(ctx, types.ReflectionFilter{})
	if len(all) != 2 {
		t.Errorf("expected 2 reflections, got %d", len(all))
	}
}

func TestSnapshotUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pillarID := mustCreatePillar(t, store, "Health")
	period := types.Month("2024-03")

	first, err := store.SaveSnapshot(ctx, &types.PerformanceSnapshot{
		PillarID: pillarID, Period: period,
		AlignmentState: types.Drifting, Score: 40,
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	second, err := store.SaveSnapshot(ctx, &types.PerformanceSnapshot{
		PillarID: pillarID, Period: period,
		AlignmentState: types.Improving, Score: 65,
	})
	if err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}
	if first != second {
		t.Errorf("upsert created a new row: %d then %d", first, second)
	}

	snapshots, err := store.ListSnapshots(ctx, types.SnapshotFilter{PillarID: &pillarID})
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected one row per (pillar, period), got %d", len(snapshots))
	}
	if snapshots[0].AlignmentState != types.Improving || snapshots[0].Score != 65 {
		t.Errorf("second write did not win: %+v", snapshots[0])
	}
}

func TestAlertDismissAndBulkSync(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedAlert := types.AdvisoryAlert{
		ID: "streak-1-7", Severity: types.SeverityInsight, Title: "7-day streak",
	}
	if err := store.AddAlert(ctx, &seedAlert); err != nil {
		t.Fatalf("AddAlert: %v", err)
	}

	if err := store.DismissAlert(ctx, "streak-1-7"); err != nil {
		t.Fatalf("DismissAlert: %v", err)
	}
	dismissed, _ := store.GetAlert(ctx, "streak-1-7")
	if dismissed.DismissedAt == nil {
		t.Fatal("dismissal not stamped")
	}
	stamp := *dismissed.DismissedAt

	// Dismissing again keeps the original timestamp.
	time.Sleep(10 * time.Millisecond)
	if err := store.DismissAlert(ctx, "streak-1-7"); err != nil {
		t.Fatalf("second dismiss: %v", err)
	}
	dismissed, _ = store.GetAlert(ctx, "streak-1-7")
	if !dismissed.DismissedAt.Equal(stamp) {
		t.Error("re-dismissing moved the timestamp")
	}

	// BulkSync: existing (dismissed) alert untouched, new one inserted.
	inserted, err := store.BulkSyncAlerts(ctx, []types.AdvisoryAlert{
		{ID: "streak-1-7", Severity: types.SeverityInsight, Title: "7-day streak"},
		{ID: "low-consistency-2", Severity: types.SeverityWarning, Title: "Slipping"},
	})
	if err != nil {
		t.Fatalf("BulkSyncAlerts: %v", err)
	}
	if inserted != 1 {
		t.Errorf("inserted = %d, want 1", inserted)
	}
	dismissed, _ = store.GetAlert(ctx, "streak-1-7")
	if dismissed.DismissedAt == nil {
		t.Error("bulk sync resurrected a dismissed alert")
	}

	// Default listing hides dismissed alerts.
	visible, _ := store.ListAlerts(ctx, types.AlertFilter{})
	if len(visible) != 1 || visible[0].ID != "low-consistency-2" {
		t.Errorf("default listing wrong: %+v", visible)
	}

	// ClearDismissed removes only dismissed rows.
	removed, err := store.ClearDismissed(ctx)
	if err != nil {
		t.Fatalf("ClearDismissed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if a, _ := store.GetAlert(ctx, "low-consistency-2"); a == nil {
		t.Error("ClearDismissed removed an active alert")
	}

	if err := store.DismissAlert(ctx, "no-such-alert"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("dismissing missing alert = %v, want ErrNotFound", err)
	}
}

func TestResourceSeedAndUnlock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	defaults := []types.Resource{
		{Title: "Atomic Habits", Author: "James Clear", Type: types.ResourceBook},
		{Title: "Deep Work", Author: "Cal Newport", Type: types.ResourceBook},
	}

	inserted, err := store.SeedResources(ctx, defaults)
	if err != nil {
		t.Fatalf("SeedResources: %v", err)
	}
	if inserted != 2 {
		t.Errorf("first seed inserted %d, want 2", inserted)
	}

	// Seeding again is a no-op even with different defaults.
	inserted, err = store.SeedResources(ctx, []types.Resource{
		{Title: "Another Book", Type: types.ResourceBook},
	})
	if err != nil {
		t.Fatalf("second SeedResources: %v", err)
	}
	if inserted != 0 {
		t.Errorf("second seed inserted %d, want 0", inserted)
	}
	resources, _ := store.ListResources(ctx)
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources after re-seed, got %d", len(resources))
	}

	id := resources[0].ID
	if err := store.UnlockResource(ctx, id); err != nil {
		t.Fatalf("UnlockResource: %v", err)
	}
	r, _ := store.GetResource(ctx, id)
	if r.UnlockedAt == nil {
		t.Error("unlock not stamped")
	}

	if err := store.UnlockResource(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unlock missing resource = %v, want ErrNotFound", err)
	}
}

func TestGetMissingReturnsNilNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if p, err := store.GetPillar(ctx, 42); p != nil || err != nil {
		t.Errorf("GetPillar missing = (%v, %v), want (nil, nil)", p, err)
	}
	if g, err := store.GetGoal(ctx, 42); g != nil || err != nil {
		t.Errorf("GetGoal missing = (%v, %v), want (nil, nil)", g, err)
	}
	if h, err := store.GetHabit(ctx, 42); h != nil || err != nil {
		t.Errorf("GetHabit missing = (%v, %v), want (nil, nil)", h, err)
	}
	if a, err := store.GetAlert(ctx, "nope"); a != nil || err != nil {
		t.Errorf("GetAlert missing = (%v, %v), want (nil, nil)", a, err)
	}
	if r, err := store.GetReflection(ctx, types.ReflectionWeekly, "2024-03-10"); r != nil || err != nil {
		t.Errorf("GetReflection missing = (%v, %v), want (nil, nil)", r, err)
	}
}

func TestUpdateAndDeleteMissingReturnErrNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := map[string]error{
		"UpdatePillar":   store.UpdatePillar(ctx, 42, types.PillarUpdate{Name: strPtr("x")}),
		"DeletePillar":   store.DeletePillar(ctx, 42),
		"UpdateGoal":     store.UpdateGoal(ctx, 42, types.GoalUpdate{Title: strPtr("x")}),
		"DeleteGoal":     store.DeleteGoal(ctx, 42),
		"UpdateHabit":    store.UpdateHabit(ctx, 42, types.HabitUpdate{Title: strPtr("x")}),
		"DeleteHabit":    store.DeleteHabit(ctx, 42),
		"DeleteMilestone": store.DeleteMilestone(ctx, 42),
		"DeleteResource": store.DeleteResource(ctx, 42),
		"DeleteAlert":    store.DeleteAlert(ctx, "nope"),
	}
	for name, err := range cases {
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("%s on missing row = %v, want ErrNotFound", name, err)
		}
	}
}

func TestWritesPublishTableChanges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sub := store.ChangeBus().Subscribe(storage.TableHabits)
	defer sub.Close()

	habitID := mustCreateHabit(t, store, "Run", nil)

	select {
	case <-sub.C():
	default:
		t.Fatal("CreateHabit did not publish a habits change")
	}

	// A log write publishes habit_logs, not habits.
	logSub := store.ChangeBus().Subscribe(storage.TableHabitLogs)
	defer logSub.Close()
	if _, err := store.LogHabit(ctx, &types.HabitLog{HabitID: habitID, Date: "2024-03-10", Completed: true}); err != nil {
		t.Fatalf("LogHabit: %v", err)
	}
	select {
	case <-logSub.C():
	default:
		t.Fatal("LogHabit did not publish a habit_logs change")
	}
	select {
	case <-sub.C():
		t.Fatal("LogHabit published to habits")
	default:
	}

	// Cascade deletes publish every touched table.
	pillarSub := store.ChangeBus().Subscribe(storage.TablePillars, storage.TableStandards)
	defer pillarSub.Close()
	pillarID := mustCreatePillar(t, store, "Health")
	<-pillarSub.C()
	if err := store.DeletePillar(ctx, pillarID); err != nil {
		t.Fatalf("DeletePillar: %v", err)
	}
	select {
	case <-pillarSub.C():
	default:
		t.Fatal("DeletePillar did not publish")
	}
}
