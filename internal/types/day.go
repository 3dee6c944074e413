package types

import (
	"fmt"
	"time"
)

// Calendar-day and calendar-month string formats. Dates are compared as
// day strings with no time-of-day component: two logs on the same day are
// the same day regardless of when they were recorded.
const (
	DayFormat   = "2006-01-02"
	MonthFormat = "2006-01"
)

// Day is a calendar day in yyyy-MM-dd form.
type Day string

// NewDay truncates t to its calendar day.
func NewDay(t time.Time) Day {
	return Day(t.Format(DayFormat))
}

// Today returns the current calendar day in local time.
func Today() Day {
	return NewDay(time.Now())
}

// Validate returns an error if the day is not a valid yyyy-MM-dd string.
func (d Day) Validate() error {
	if _, err := time.Parse(DayFormat, string(d)); err != nil {
		return fmt.Errorf("invalid day %q: want yyyy-MM-dd", string(d))
	}
	return nil
}

// Time parses the day at midnight UTC.
func (d Day) Time() (time.Time, error) {
	return time.Parse(DayFormat, string(d))
}

// AddDays returns the day shifted by n calendar days. Invalid days are
// returned unchanged.
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return NewDay(t.AddDate(0, 0, n))
}

// Month returns the month the day falls in.
func (d Day) Month() Month {
	t, err := d.Time()
	if err != nil {
		return Month(d)
	}
	return NewMonth(t)
}

func (d Day) String() string { return string(d) }

// Month is a calendar month in yyyy-MM form, the granularity of
// performance snapshot periods.
type Month string

// NewMonth truncates t to its calendar month.
func NewMonth(t time.Time) Month {
	return Month(t.Format(MonthFormat))
}

// ThisMonth returns the current calendar month in local time.
func ThisMonth() Month {
	return NewMonth(time.Now())
}

// Validate returns an error if the month is not a valid yyyy-MM string.
func (m Month) Validate() error {
	if _, err := time.Parse(MonthFormat, string(m)); err != nil {
		return fmt.Errorf("invalid month %q: want yyyy-MM", string(m))
	}
	return nil
}

func (m Month) String() string { return string(m) }
