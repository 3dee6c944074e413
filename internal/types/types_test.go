package types

import (
	"testing"
	"time"
)

func TestMetricSlug(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"4 Workouts / week!", "4_workouts_week"},
		{"Sleep Hours", "sleep_hours"},
		{"Deep   Work", "deep_work"},
		{"ALL CAPS", "all_caps"},
		{"already_slugged", "already_slugged"},
		{"  leading and trailing  ", "leading_and_trailing"},
		{"100% effort", "100_effort"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := MetricSlug(tt.label); got != tt.want {
			t.Errorf("MetricSlug(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestDayValidate(t *testing.T) {
	if err := Day("2024-03-10").Validate(); err != nil {
		t.Errorf("valid day rejected: %v", err)
	}
	for _, bad := range []Day{"2024-3-10", "10/03/2024", "2024-13-01", "not a date", ""} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Day(%q).Validate() accepted invalid input", bad)
		}
	}
}

func TestDayAddDays(t *testing.T) {
	if got := Day("2024-03-01").AddDays(-1); got != "2024-02-29" {
		t.Errorf("leap-year rollover: got %s", got)
	}
	if got := Day("2024-12-31").AddDays(1); got != "2025-01-01" {
		t.Errorf("year rollover: got %s", got)
	}
	// Invalid days pass through unchanged.
	if got := Day("garbage").AddDays(3); got != "garbage" {
		t.Errorf("invalid day should be unchanged, got %s", got)
	}
}

func TestDayMonth(t *testing.T) {
	if got := Day("2024-03-10").Month(); got != "2024-03" {
		t.Errorf("Month() = %s, want 2024-03", got)
	}
	if err := Month("2024-03").Validate(); err != nil {
		t.Errorf("valid month rejected: %v", err)
	}
	if err := Month("2024-3").Validate(); err == nil {
		t.Error("Month(2024-3).Validate() accepted invalid input")
	}
}

func TestStandardValidate(t *testing.T) {
	valid := Standard{PillarID: 1, Label: "Workouts", Target: 4}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid standard rejected: %v", err)
	}

	noLabel := Standard{PillarID: 1, Target: 4}
	if err := noLabel.Validate(); err == nil {
		t.Error("empty label accepted")
	}

	for _, target := range []float64{0, -1} {
		s := Standard{PillarID: 1, Label: "Workouts", Target: target}
		if err := s.Validate(); err == nil {
			t.Errorf("non-positive target %g accepted", target)
		}
	}
}

func TestReflectionValidate(t *testing.T) {
	valid := Reflection{Type: ReflectionDailyAM, Date: "2024-03-10", EnergyLevel: 7, Mood: 6}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid reflection rejected: %v", err)
	}

	badType := valid
	badType.Type = "hourly"
	if err := badType.Validate(); err == nil {
		t.Error("unknown reflection type accepted")
	}

	for _, energy := range []int{0, 11} {
		r := valid
		r.EnergyLevel = energy
		if err := r.Validate(); err == nil {
			t.Errorf("energy level %d accepted", energy)
		}
	}
}

func TestHabitValidate(t *testing.T) {
	valid := Habit{Title: "Run", Frequency: FrequencyDaily, TargetDaysPerWeek: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid habit rejected: %v", err)
	}

	for _, target := range []int{-1, 8} {
		h := valid
		h.TargetDaysPerWeek = target
		if err := h.Validate(); err == nil {
			t.Errorf("target %d accepted", target)
		}
	}
}

func TestAlertValidate(t *testing.T) {
	valid := AdvisoryAlert{ID: "streak-1-7", Severity: SeverityInsight, Title: "Streak!"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid alert rejected: %v", err)
	}

	noID := valid
	noID.ID = ""
	if err := noID.Validate(); err == nil {
		t.Error("empty alert id accepted")
	}

	badSeverity := valid
	badSeverity.Severity = "critical"
	if err := badSeverity.Validate(); err == nil {
		t.Error("unknown severity accepted")
	}
}

func TestIdentityUpdateIsZero(t *testing.T) {
	if !(IdentityUpdate{}).IsZero() {
		t.Error("empty update should be zero")
	}
	v := "see clearly"
	if (IdentityUpdate{Vision: &v}).IsZero() {
		t.Error("update with a vision should not be zero")
	}
}

func TestNewDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := NewDay(ts); got != "2024-03-10" {
		t.Errorf("NewDay = %s", got)
	}
	if got := NewMonth(ts); got != "2024-03" {
		t.Errorf("NewMonth = %s", got)
	}
}
