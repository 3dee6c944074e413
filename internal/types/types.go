// Package types defines the durable entities of the arete store.
package types

import (
	"fmt"
	"time"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalArchived  GoalStatus = "archived"
)

// Valid returns true if the status is one of the known goal states.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalArchived:
		return true
	}
	return false
}

// HabitFrequency represents how often a habit is expected to be performed.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
	FrequencyCustom HabitFrequency = "custom"
)

// Valid returns true if the frequency is one of the known cadences.
func (f HabitFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// ReflectionType represents the cadence slot a reflection belongs to.
type ReflectionType string

const (
	ReflectionDailyAM   ReflectionType = "daily-am"
	ReflectionDailyPM   ReflectionType = "daily-pm"
	ReflectionWeekly    ReflectionType = "weekly"
	ReflectionMonthly   ReflectionType = "monthly"
	ReflectionQuarterly ReflectionType = "quarterly"
)

// Valid returns true if the type is one of the known reflection slots.
func (t ReflectionType) Valid() bool {
	switch t {
	case ReflectionDailyAM, ReflectionDailyPM, ReflectionWeekly, ReflectionMonthly, ReflectionQuarterly:
		return true
	}
	return false
}

// AlignmentState is a qualitative label for how observed performance
// matches a pillar's target.
type AlignmentState string

const (
	Aligned    AlignmentState = "aligned"
	Improving  AlignmentState = "improving"
	Drifting   AlignmentState = "drifting"
	Avoiding   AlignmentState = "avoiding"
	Regressing AlignmentState = "regressing"
)

// Valid returns true if the state is one of the known alignment labels.
func (a AlignmentState) Valid() bool {
	switch a {
	case Aligned, Improving, Drifting, Avoiding, Regressing:
		return true
	}
	return false
}

// AlertSeverity classifies an advisory alert.
type AlertSeverity string

const (
	SeverityInsight     AlertSeverity = "insight"
	SeverityChallenge   AlertSeverity = "challenge"
	SeverityWarning     AlertSeverity = "warning"
	SeverityOpportunity AlertSeverity = "opportunity"
)

// Valid returns true if the severity is one of the known levels.
func (s AlertSeverity) Valid() bool {
	switch s {
	case SeverityInsight, SeverityChallenge, SeverityWarning, SeverityOpportunity:
		return true
	}
	return false
}

// ResourceType classifies a library resource.
type ResourceType string

const (
	ResourceBook    ResourceType = "book"
	ResourceArticle ResourceType = "article"
	ResourceCourse  ResourceType = "course"
	ResourceVideo   ResourceType = "video"
)

// Valid returns true if the type is one of the known resource kinds.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceBook, ResourceArticle, ResourceCourse, ResourceVideo:
		return true
	}
	return false
}

// MaxCoreValues caps the ordered core-values list on the identity.
const MaxCoreValues = 7

// Identity is the singleton self-model. At most one row exists.
type Identity struct {
	ID              int64     `json:"id"`
	Vision          string    `json:"vision"`
	Mission         string    `json:"mission"`
	LifeView        string    `json:"life_view"`
	WorkView        string    `json:"work_view"`
	CoreValues      []string  `json:"core_values"`
	PersonalityType string    `json:"personality_type,omitempty"`
	CoachTone       string    `json:"coach_tone"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Pillar is a user-defined life domain owned by the identity.
type Pillar struct {
	ID          int64  `json:"id"`
	IdentityID  int64  `json:"identity_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Order       int    `json:"order"` // display rank, not unique
}

// Validate checks invariants before the pillar is written.
func (p *Pillar) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pillar name cannot be empty")
	}
	return nil
}

// Standard is a quantitative target held within a pillar. Metric is the
// slug derived from the label (see MetricSlug).
type Standard struct {
	ID       int64   `json:"id"`
	PillarID int64   `json:"pillar_id"`
	Label    string  `json:"label"`
	Metric   string  `json:"metric"`
	Target   float64 `json:"target"`
	Unit     string  `json:"unit"`
}

// Validate checks invariants before the standard is written.
func (s *Standard) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("standard label cannot be empty")
	}
	if !(s.Target > 0) {
		return fmt.Errorf("standard target must be a positive number")
	}
	return nil
}

// Goal is an outcome the user is working toward. PillarID is nil for
// unaffiliated goals.
type Goal struct {
	ID          int64      `json:"id"`
	PillarID    *int64     `json:"pillar_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *Day       `json:"target_date,omitempty"`
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Validate checks invariants before the goal is written.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("goal title cannot be empty")
	}
	if g.Status != "" && !g.Status.Valid() {
		return fmt.Errorf("invalid goal status: %s", g.Status)
	}
	return nil
}

// Milestone is a checkable step within a goal. CompletedAt is set exactly
// when Completed transitions to true, nil otherwise.
type Milestone struct {
	ID          int64      `json:"id"`
	GoalID      int64      `json:"goal_id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Habit is a recurring practice, optionally attached to a pillar.
// Archiving is a soft delete: ArchivedAt is nil while active.
type Habit struct {
	ID                int64          `json:"id"`
	PillarID          *int64         `json:"pillar_id,omitempty"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Frequency         HabitFrequency `json:"frequency"`
	TargetDaysPerWeek int            `json:"target_days_per_week"`
	Color             string         `json:"color"`
	ArchivedAt        *time.Time     `json:"archived_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Validate checks invariants before the habit is written.
func (h *Habit) Validate() error {
	if h.Title == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if h.Frequency != "" && !h.Frequency.Valid() {
		return fmt.Errorf("invalid habit frequency: %s", h.Frequency)
	}
	if h.TargetDaysPerWeek < 0 || h.TargetDaysPerWeek > 7 {
		return fmt.Errorf("target days per week must be in [0, 7]")
	}
	return nil
}

// HabitLog records one habit on one calendar day. (HabitID, Date) is
// logically unique: logging the same day again updates in place.
type HabitLog struct {
	ID        int64  `json:"id"`
	HabitID   int64  `json:"habit_id"`
	Date      Day    `json:"date"`
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// Validate checks invariants before the log is written.
func (l *HabitLog) Validate() error {
	if l.HabitID == 0 {
		return fmt.Errorf("habit log requires a habit id")
	}
	if err := l.Date.Validate(); err != nil {
		return fmt.Errorf("habit log date: %w", err)
	}
	return nil
}

// Reflection holds prompt answers for one cadence slot on one day.
// (Type, Date) is logically unique.
type Reflection struct {
	ID          int64             `json:"id"`
	Type        ReflectionType    `json:"type"`
	Date        Day               `json:"date"`
	Answers     map[string]string `json:"answers"`
	EnergyLevel int               `json:"energy_level"`
	Mood        int               `json:"mood"`
	Note        string            `json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Validate checks invariants before the reflection is written.
func (r *Reflection) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("invalid reflection type: %s", r.Type)
	}
	if err := r.Date.Validate(); err != nil {
		return fmt.Errorf("reflection date: %w", err)
	}
	if r.EnergyLevel < 1 || r.EnergyLevel > 10 {
		return fmt.Errorf("energy level must be in [1, 10]")
	}
	if r.Mood < 1 || r.Mood > 10 {
		return fmt.Errorf("mood must be in [1, 10]")
	}
	return nil
}

// PerformanceSnapshot records one pillar's standing for one month.
// (PillarID, Period) is logically unique; saves upsert by that pair.
type PerformanceSnapshot struct {
	ID             int64          `json:"id"`
	PillarID       int64          `json:"pillar_id"`
	Period         Month          `json:"period"`
	AlignmentState AlignmentState `json:"alignment_state"`
	Score          float64        `json:"score"`
	Observed       float64        `json:"observed"`
	Target         float64        `json:"target"`
	Note           string         `json:"note,omitempty"`
}

// Validate checks invariants before the snapshot is written.
func (s *PerformanceSnapshot) Validate() error {
	if s.PillarID == 0 {
		return fmt.Errorf("snapshot requires a pillar id")
	}
	if err := s.Period.Validate(); err != nil {
		return fmt.Errorf("snapshot period: %w", err)
	}
	if !s.AlignmentState.Valid() {
		return fmt.Errorf("invalid alignment state: %s", s.AlignmentState)
	}
	if s.Score < 0 || s.Score > 100 {
		return fmt.Errorf("score must be in [0, 100]")
	}
	return nil
}

// AdvisoryAlert is a coach-style notice. ID is caller-assigned and acts
// as the idempotency key: an existing ID is never overwritten.
type AdvisoryAlert struct {
	ID          string        `json:"id"`
	Severity    AlertSeverity `json:"severity"`
	PillarID    *int64        `json:"pillar_id,omitempty"`
	Title       string        `json:"title"`
	Message     string        `json:"message"`
	Action      string        `json:"action,omitempty"` // optional CTA text
	DismissedAt *time.Time    `json:"dismissed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Validate checks invariants before the alert is written.
func (a *AdvisoryAlert) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("alert id cannot be empty")
	}
	if !a.Severity.Valid() {
		return fmt.Errorf("invalid alert severity: %s", a.Severity)
	}
	if a.Title == "" {
		return fmt.Errorf("alert title cannot be empty")
	}
	return nil
}

// Resource is a library entry (book, article, course, video) that can be
// unlocked over time. Nil UnlockedAt means locked.
type Resource struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Author            string       `json:"author"`
	Type              ResourceType `json:"type"`
	Summary           string       `json:"summary"`
	KeyPrinciples     []string     `json:"key_principles"`
	RelevantPillarIDs []int64      `json:"relevant_pillar_ids"`
	UnlockedAt        *time.Time   `json:"unlocked_at,omitempty"`
}

// Validate checks invariants before the resource is written.
func (r *Resource) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("resource title cannot be empty")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("invalid resource type: %s", r.Type)
	}
	return nil
}
