// Package arete provides a minimal public API for building on arete's
// data store programmatically.
//
// The CLI under cmd/arete is the primary consumer; this package exports
// only the types and functions an external tool needs to open an
// existing data directory and work with its repositories.
package arete

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aretehq/arete/internal/configfile"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/storage/sqlite"
	"github.com/aretehq/arete/internal/types"
)

// CanonicalDatabaseName is the default database filename inside .arete/.
const CanonicalDatabaseName = "arete.db"

// Storage is the full repository surface of the store.
type Storage = storage.Storage

// ErrNotFound is returned by updates and deletes that target a missing
// row. Point lookups return (nil, nil) instead.
var ErrNotFound = storage.ErrNotFound

// Open opens (creating if needed) the SQLite database at the given path.
func Open(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}

// FindDatabasePath discovers the arete database using the standard
// search order:
//  1. $ARETE_DIR environment variable (points to the .arete directory)
//  2. .arete/ in the current directory or an ancestor
//
// Within a discovered directory, metadata.json names the database file;
// without it the canonical name is used. Returns empty string if nothing
// is found.
func FindDatabasePath() string {
	areteDir := FindAreteDir()
	if areteDir == "" {
		return ""
	}

	if cfg, err := configfile.Load(areteDir); err == nil && cfg != nil {
		dbPath := cfg.DatabasePath(areteDir)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath
		}
	}

	canonical := filepath.Join(areteDir, CanonicalDatabaseName)
	if _, err := os.Stat(canonical); err == nil {
		return canonical
	}

	// Any non-backup .db file in the directory counts.
	matches, err := filepath.Glob(filepath.Join(areteDir, "*.db"))
	if err == nil {
		for _, match := range matches {
			if !strings.Contains(filepath.Base(match), ".backup") {
				return match
			}
		}
	}

	return ""
}

// FindAreteDir finds the .arete/ directory for the current working
// directory: $ARETE_DIR if set, otherwise the nearest .arete/ walking up
// from the working directory. Returns empty string if not found.
func FindAreteDir() string {
	if areteDir := os.Getenv("ARETE_DIR"); areteDir != "" {
		abs, err := filepath.Abs(areteDir)
		if err != nil {
			abs = areteDir
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		areteDir := filepath.Join(dir, ".arete")
		if info, err := os.Stat(areteDir); err == nil && info.IsDir() {
			return areteDir
		}
		if dir == filepath.Dir(dir) {
			return ""
		}
	}
}

// Core types from internal/types
type (
	Identity            = types.Identity
	Pillar              = types.Pillar
	Standard            = types.Standard
	Goal                = types.Goal
	Milestone           = types.Milestone
	Habit               = types.Habit
	HabitLog            = types.HabitLog
	Reflection          = types.Reflection
	PerformanceSnapshot = types.PerformanceSnapshot
	AdvisoryAlert       = types.AdvisoryAlert
	Resource            = types.Resource
	Day                 = types.Day
	Month               = types.Month
	GoalStatus          = types.GoalStatus
	HabitFrequency      = types.HabitFrequency
	ReflectionType      = types.ReflectionType
	AlignmentState      = types.AlignmentState
	AlertSeverity       = types.AlertSeverity
	ResourceType        = types.ResourceType
)

// GoalStatus constants
const (
	GoalActive    = types.GoalActive
	GoalCompleted = types.GoalCompleted
	GoalPaused    = types.GoalPaused
	GoalArchived  = types.GoalArchived
)

// HabitFrequency constants
const (
	FrequencyDaily  = types.FrequencyDaily
	FrequencyWeekly = types.FrequencyWeekly
	FrequencyCustom = types.FrequencyCustom
)

// ReflectionType constants
const (
	ReflectionDailyAM   = types.ReflectionDailyAM
	ReflectionDailyPM   = types.ReflectionDailyPM
	ReflectionWeekly    = types.ReflectionWeekly
	ReflectionMonthly   = types.ReflectionMonthly
	ReflectionQuarterly = types.ReflectionQuarterly
)

// AlignmentState constants
const (
	Aligned    = types.Aligned
	Improving  = types.Improving
	Drifting   = types.Drifting
	Avoiding   = types.Avoiding
	Regressing = types.Regressing
)

// AlertSeverity constants
const (
	SeverityInsight     = types.SeverityInsight
	SeverityChallenge   = types.SeverityChallenge
	SeverityWarning     = types.SeverityWarning
	SeverityOpportunity = types.SeverityOpportunity
)
