package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekDay is a day of the week used both to query availability and to
// schedule zones.
type WeekDay string

const (
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
)

// WeekDays lists every valid day, Monday first.
var WeekDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekDayByTime = map[time.Weekday]WeekDay{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// ParseWeekDay accepts a day name in any case ("Monday", "MONDAY", "monday").
func ParseWeekDay(s string) (WeekDay, error) {
	d := WeekDay(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown week day %q", s)
	}
	return d, nil
}

// WeekDayOf returns the week day of t in t's location.
func WeekDayOf(t time.Time) WeekDay {
	return weekDayByTime[t.Weekday()]
}

// Valid reports whether d is one of the seven known days.
func (d WeekDay) Valid() bool {
	for _, known := range WeekDays {
		if d == known {
			return true
		}
	}
	return false
}
