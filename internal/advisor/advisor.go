// Package advisor evaluates the current state of pillars, habits and
// snapshots and produces advisory alerts. It is a pure rule engine: it
// reads the Input it is given, writes nothing, and stamps no timestamps.
// Persisting the output (and deciding which alerts are new) is the
// store's job via BulkSyncAlerts.
package advisor

import (
	"fmt"
	"sort"

	"github.com/aretehq/arete/internal/metrics"
	"github.com/aretehq/arete/internal/types"
)

// Streak lengths that earn a milestone insight.
var streakMilestones = []int{7, 21, 30, 66, 100, 365}

// A streak this long or longer that has just broken is worth calling out.
const brokenStreakThreshold = 7

// Input is everything the rules look at. Logs should cover at least the
// trailing consistency window plus the longest streak the caller cares
// about; the advisor never fetches more.
type Input struct {
	Today     types.Day
	Pillars   []types.Pillar
	Habits    []types.Habit
	Logs      []types.HabitLog
	Snapshots []types.PerformanceSnapshot
}

// Evaluate runs every rule and returns the resulting alerts, ordered by
// ID for determinism. Alert IDs are natural keys built from the rule and
// its subject, so evaluating twice produces the same IDs and a
// subsequent BulkSyncAlerts inserts nothing new.
func Evaluate(in Input) []types.AdvisoryAlert {
	var alerts []types.AdvisoryAlert

	habitsByPillar := make(map[int64]int)
	for _, h := range in.Habits {
		if h.ArchivedAt != nil {
			continue
		}
		if h.PillarID != nil {
			habitsByPillar[*h.PillarID]++
		}

		alerts = append(alerts, habitRules(h, in.Logs, in.Today)...)
	}

	for _, p := range in.Pillars {
		if habitsByPillar[p.ID] == 0 {
			pillarID := p.ID
			alerts = append(alerts, types.AdvisoryAlert{
				ID:       fmt.Sprintf("pillar-no-habits-%d", p.ID),
				Severity: types.SeverityOpportunity,
				PillarID: &pillarID,
				Title:    fmt.Sprintf("No active habits for %s", p.Name),
				Message:  fmt.Sprintf("The pillar %q has no active habits backing it. Pillars without daily practice tend to stay aspirational.", p.Name),
				Action:   "Add one small habit for this pillar",
			})
		}
	}

	for _, s := range in.Snapshots {
		if !badAlignment(s.AlignmentState) {
			continue
		}
		pillarID := s.PillarID
		alerts = append(alerts, types.AdvisoryAlert{
			ID:       fmt.Sprintf("alignment-%d-%s", s.PillarID, s.Period),
			Severity: types.SeverityWarning,
			PillarID: &pillarID,
			Title:    fmt.Sprintf("Alignment is %s", s.AlignmentState),
			Message:  fmt.Sprintf("The %s snapshot reports %s alignment for this pillar. Review what changed and pick one corrective habit.", s.Period, s.AlignmentState),
		})
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].ID < alerts[j].ID })
	return alerts
}

func habitRules(h types.Habit, logs []types.HabitLog, today types.Day) []types.AdvisoryAlert {
	var alerts []types.AdvisoryAlert

	current := metrics.CurrentStreak(h.ID, logs, today)
	for _, m := range streakMilestones {
		if current >= m {
			alerts = append(alerts, types.AdvisoryAlert{
				ID:       fmt.Sprintf("streak-%d-%d", h.ID, m),
				Severity: types.SeverityInsight,
				PillarID: h.PillarID,
				Title:    fmt.Sprintf("%d-day streak on %s", m, h.Title),
				Message:  fmt.Sprintf("%s has been completed %d days in a row. Momentum like this is the whole point.", h.Title, current),
			})
		}
	}

	longest := metrics.LongestStreak(h.ID, logs)
	if current == 0 && longest >= brokenStreakThreshold {
		alerts = append(alerts, types.AdvisoryAlert{
			ID:       fmt.Sprintf("broken-streak-%d-%d", h.ID, longest),
			Severity: types.SeverityChallenge,
			PillarID: h.PillarID,
			Title:    fmt.Sprintf("Streak broken on %s", h.Title),
			Message:  fmt.Sprintf("A %d-day run on %s has lapsed.", longest, h.Title),
			Action:   "Log it again today to start the recovery",
		})
	}

	rate := metrics.WeeklyCompletionRate(h.ID, h.TargetDaysPerWeek, logs, metrics.DefaultWindowWeeks, today)
	if h.TargetDaysPerWeek > 0 && rate < 0.5 {
		alerts = append(alerts, types.AdvisoryAlert{
			ID:       fmt.Sprintf("low-consistency-%d", h.ID),
			Severity: types.SeverityWarning,
			PillarID: h.PillarID,
			Title:    fmt.Sprintf("Consistency slipping on %s", h.Title),
			Message:  fmt.Sprintf("%s is at %.0f%% of its weekly target over the last %d weeks.", h.Title, rate*100, metrics.DefaultWindowWeeks),
		})
	}

	return alerts
}

func badAlignment(a types.AlignmentState) bool {
	switch a {
	case types.Drifting, types.Avoiding, types.Regressing:
		return true
	}
	return false
}
