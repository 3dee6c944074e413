// Package storage defines the repository surface of the arete store.
package storage

import (
	"context"
	"errors"

	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/types"
)

// ErrNotFound is returned by updates and deletes that target a missing
// row. Point lookups return (nil, nil) instead.
var ErrNotFound = errors.New("not found")

// Table names, used as change-bus topics and by live query tracking.
const (
	TableIdentity    = "identity"
	TablePillars     = "pillars"
	TableStandards   = "standards"
	TableGoals       = "goals"
	TableMilestones  = "milestones"
	TableHabits      = "habits"
	TableHabitLogs   = "habit_logs"
	TableReflections = "reflections"
	TableSnapshots   = "performance_snapshots"
	TableAlerts      = "advisory_alerts"
	TableResources   = "resources"
)

// Storage is the full repository surface consumed by presentation code.
// Reads participate in live-query tracking when the context carries a
// reactive recorder; writes publish table-change events after commit.
type Storage interface {
	// Identity (singleton, at most one row)
	GetIdentity(ctx context.Context) (*types.Identity, error)
	SaveIdentity(ctx context.Context, upd types.IdentityUpdate) (*types.Identity, error)
	UpdateIdentity(ctx context.Context, upd types.IdentityUpdate) error

	// Pillars
	CreatePillar(ctx context.Context, p *types.Pillar) (int64, error)
	GetPillar(ctx context.Context, id int64) (*types.Pillar, error)
	ListPillars(ctx context.Context, identityID int64) ([]types.Pillar, error)
	UpdatePillar(ctx context.Context, id int64, upd types.PillarUpdate) error
	// DeletePillar removes the pillar and every standard referencing it in
	// one transaction.
	DeletePillar(ctx context.Context, id int64) error

	// Standards
	AddStandard(ctx context.Context, s *types.Standard) (int64, error)
	GetStandard(ctx context.Context, id int64) (*types.Standard, error)
	ListStandards(ctx context.Context, pillarID int64) ([]types.Standard, error)
	UpdateStandard(ctx context.Context, id int64, upd types.StandardUpdate) error
	DeleteStandard(ctx context.Context, id int64) error

	// Goals and milestones
	CreateGoal(ctx context.Context, g *types.Goal) (int64, error)
	GetGoal(ctx context.Context, id int64) (*types.Goal, error)
	ListGoals(ctx context.Context, filter types.GoalFilter) ([]types.Goal, error)
	UpdateGoal(ctx context.Context, id int64, upd types.GoalUpdate) error
	// DeleteGoal removes the goal and its milestones in one transaction.
	DeleteGoal(ctx context.Context, id int64) error
	AddMilestone(ctx context.Context, m *types.Milestone) (int64, error)
	ListMilestones(ctx context.Context, goalID int64) ([]types.Milestone, error)
	// SetMilestoneCompleted stamps CompletedAt when completed flips true
	// and clears it when it flips false.
	SetMilestoneCompleted(ctx context.Context, id int64, completed bool) error
	DeleteMilestone(ctx context.Context, id int64) error

	// Habits and habit logs
	CreateHabit(ctx context.Context, h *types.Habit) (int64, error)
	GetHabit(ctx context.Context, id int64) (*types.Habit, error)
	ListHabits(ctx context.Context, filter types.HabitFilter) ([]types.Habit, error)
	UpdateHabit(ctx context.Context, id int64, upd types.HabitUpdate) error
	// ArchiveHabit soft-deletes: stamps ArchivedAt once, no-op if already
	// archived.
	ArchiveHabit(ctx context.Context, id int64) error
	// DeleteHabit removes the habit and its logs in one transaction.
	DeleteHabit(ctx context.Context, id int64) error
	// LogHabit upserts by (habitID, date): a second log for the same day
	// updates in place.
	LogHabit(ctx context.Context, log *types.HabitLog) (int64, error)
	GetHabitLog(ctx context.Context, habitID int64, date types.Day) (*types.HabitLog, error)
	ListHabitLogs(ctx context.Context, filter types.HabitLogFilter) ([]types.HabitLog, error)
	DeleteHabitLog(ctx context.Context, id int64) error

	// Reflections
	// SaveReflection upserts by (type, date).
	SaveReflection(ctx context.Context, r *types.Reflection) (int64, error)
	GetReflection(ctx context.Context, typ types.ReflectionType, date types.Day) (*types.Reflection, error)
	ListReflections(ctx context.Context, filter types.ReflectionFilter) ([]types.Reflection, error)
	DeleteReflection(ctx context.Context, id int64) error

	// Performance snapshots
	// SaveSnapshot upserts by (pillarID, period), preserving the row ID on
	// update.
	SaveSnapshot(ctx context.Context, s *types.PerformanceSnapshot) (int64, error)
	GetSnapshot(ctx context.Context, pillarID int64, period types.Month) (*types.PerformanceSnapshot, error)
	ListSnapshots(ctx context.Context, filter types.SnapshotFilter) ([]types.PerformanceSnapshot, error)
	DeleteSnapshot(ctx context.Context, id int64) error

	// Advisory alerts
	AddAlert(ctx context.Context, a *types.AdvisoryAlert) error
	GetAlert(ctx context.Context, id string) (*types.AdvisoryAlert, error)
	ListAlerts(ctx context.Context, filter types.AlertFilter) ([]types.AdvisoryAlert, error)
	// DismissAlert stamps DismissedAt; dismissing twice is a no-op.
	DismissAlert(ctx context.Context, id string) error
	// BulkSyncAlerts inserts only alerts whose ID is absent, in one
	// transaction. Existing rows, dismissed ones included, are untouched.
	// Returns the number inserted.
	BulkSyncAlerts(ctx context.Context, alerts []types.AdvisoryAlert) (int, error)
	// ClearDismissed removes every alert with a non-nil DismissedAt and
	// returns the number removed.
	ClearDismissed(ctx context.Context) (int, error)
	DeleteAlert(ctx context.Context, id string) error

	// Resources
	// SeedResources bulk-inserts defaults only when the table is empty.
	// Safe to call on every start. Returns the number inserted.
	SeedResources(ctx context.Context, defaults []types.Resource) (int, error)
	CreateResource(ctx context.Context, r *types.Resource) (int64, error)
	GetResource(ctx context.Context, id int64) (*types.Resource, error)
	ListResources(ctx context.Context) ([]types.Resource, error)
	// UnlockResource stamps UnlockedAt; unlocking twice re-stamps, which is
	// acceptable.
	UnlockResource(ctx context.Context, id int64) error
	DeleteResource(ctx context.Context, id int64) error

	// ChangeBus exposes the table-change bus live queries subscribe to.
	ChangeBus() *reactive.Bus

	Close() error
}
