package types

// Partial-update structs. A nil field leaves the stored value untouched;
// a non-nil field replaces it. Pointer-to-pointer fields can also clear a
// nullable column (outer pointer set, inner nil).

// IdentityUpdate merges fields into the singleton identity.
type IdentityUpdate struct {
	Vision          *string
	Mission         *string
	LifeView        *string
	WorkView        *string
	CoreValues      *[]string
	PersonalityType *string
	CoachTone       *string
}

// IsZero reports whether the update changes nothing.
func (u IdentityUpdate) IsZero() bool {
	return u.Vision == nil && u.Mission == nil && u.LifeView == nil &&
		u.WorkView == nil && u.CoreValues == nil && u.PersonalityType == nil &&
		u.CoachTone == nil
}

// PillarUpdate merges fields into a pillar.
type PillarUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Order       *int
}

// StandardUpdate merges fields into a standard. Changing the label also
// re-derives the metric slug.
type StandardUpdate struct {
	Label  *string
	Target *float64
	Unit   *string
}

// GoalUpdate merges fields into a goal.
type GoalUpdate struct {
	PillarID    **int64
	Title       *string
	Description *string
	TargetDate  **Day
	Status      *GoalStatus
}

// HabitUpdate merges fields into a habit.
type HabitUpdate struct {
	PillarID          **int64
	Title             *string
	Description       *string
	Frequency         *HabitFrequency
	TargetDaysPerWeek *int
	Color             *string
}

// GoalFilter narrows goal listings.
type GoalFilter struct {
	PillarID *int64
	Status   *GoalStatus
}

// HabitFilter narrows habit listings. Archived habits are excluded unless
// IncludeArchived is set.
type HabitFilter struct {
	PillarID        *int64
	IncludeArchived bool
}

// HabitLogFilter narrows habit log listings. From and To are inclusive
// day bounds.
type HabitLogFilter struct {
	HabitID *int64
	From    *Day
	To      *Day
}

// ReflectionFilter narrows reflection listings.
type ReflectionFilter struct {
	Type *ReflectionType
	From *Day
	To   *Day
}

// SnapshotFilter narrows performance snapshot listings.
type SnapshotFilter struct {
	PillarID *int64
	From     *Month
	To       *Month
}

// AlertFilter narrows advisory alert listings. Dismissed alerts are
// excluded unless IncludeDismissed is set.
type AlertFilter struct {
	PillarID         *int64
	Severity         *AlertSeverity
	IncludeDismissed bool
}
