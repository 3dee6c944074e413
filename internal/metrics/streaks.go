// Package metrics computes derived habit signals from log history.
//
// Every function here is pure and total: it performs no I/O, takes the
// full relevant log set from the caller, and has a defined (never
// erroring) result for any input, including empty logs, zero targets,
// and malformed dates. That isolation is what keeps the math
// independently testable.
package metrics

import (
	"sort"
	"time"

	"github.com/aretehq/arete/internal/types"
)

// DefaultWindowWeeks is the consistency-rate lookback when the caller
// has no preference.
const DefaultWindowWeeks = 4

// CurrentStreak counts consecutive completed calendar days for the habit
// ending at referenceDate, walking backward one day at a time and
// stopping at the first gap.
//
// A reference day with no completed log does not immediately break the
// streak: if yesterday is completed, counting starts there — "today not
// yet logged" keeps an otherwise-live streak alive. If neither the
// reference day nor the day before is completed, the streak is 0.
func CurrentStreak(habitID int64, logs []types.HabitLog, referenceDate types.Day) int {
	completed := completedDays(habitID, logs)
	if len(completed) == 0 {
		return 0
	}

	cursor := referenceDate
	if !completed[cursor] {
		cursor = referenceDate.AddDays(-1)
		if !completed[cursor] {
			return 0
		}
	}

	streak := 0
	for completed[cursor] {
		streak++
		cursor = cursor.AddDays(-1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed
// calendar days the habit has ever had. Empty input yields 0; any
// completed log yields at least 1. Duplicate dates are ignored.
func LongestStreak(habitID int64, logs []types.HabitLog) int {
	var days []time.Time
	for _, l := range logs {
		if l.HabitID != habitID || !l.Completed {
			continue
		}
		t, err := l.Date.Time()
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		diff := int(days[i].Sub(days[i-1]).Hours() / 24)
		switch {
		case diff == 0:
			// duplicate date
		case diff == 1:
			run++
			if run > longest {
				longest = run
			}
		default:
			run = 1
		}
	}
	return longest
}

// WeeklyCompletionRate is the habit's completion rate over the trailing
// window: completed logs dated within the last windowWeeks*7 days,
// divided by targetDaysPerWeek*windowWeeks, clamped to 1.0.
// Over-performance never exceeds 1.0, and a zero expected denominator
// (zero target or zero window) yields 0 rather than a division error.
func WeeklyCompletionRate(habitID int64, targetDaysPerWeek int, logs []types.HabitLog, windowWeeks int, referenceDate types.Day) float64 {
	expected := float64(targetDaysPerWeek * windowWeeks)
	if expected <= 0 {
		return 0
	}

	cutoff, err := referenceDate.AddDays(-windowWeeks * 7).Time()
	if err != nil {
		return 0
	}

	done := 0
	for _, l := range logs {
		if l.HabitID != habitID || !l.Completed {
			continue
		}
		t, err := l.Date.Time()
		if err != nil {
			continue
		}
		if !t.Before(cutoff) {
			done++
		}
	}

	rate := float64(done) / expected
	if rate > 1 {
		return 1
	}
	return rate
}

// completedDays collects the habit's completed dates as a set. Dates are
// compared as calendar-day strings: two logs on the same day are the
// same day regardless of when they were recorded.
func completedDays(habitID int64, logs []types.HabitLog) map[types.Day]bool {
	out := make(map[types.Day]bool)
	for _, l := range logs {
		if l.HabitID == habitID && l.Completed {
			out[l.Date] = true
		}
	}
	return out
}
