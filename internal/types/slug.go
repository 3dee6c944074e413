package types

import "strings"

// MetricSlug derives a standard's metric key from its label: lower-case,
// whitespace runs collapsed to a single underscore, everything outside
// [a-z0-9_] stripped. "4 Workouts / week!" becomes "4_workouts_week".
func MetricSlug(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	pendingSep := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if b.Len() > 0 {
				pendingSep = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
		// anything else is stripped; a stripped run between words still
		// yields one separator because pendingSep survives it
	}
	return b.String()
}
