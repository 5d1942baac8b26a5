// Package simclock maps simulated weeks onto real timezone-aware instants
// and owns the travel plan derived from the run length.
package simclock

import "time"

// Clock anchors the simulation to a start date and timezone. Week 1 begins
// on the start date.
type Clock struct {
	Start time.Time
	Loc   *time.Location
}

// New creates a Clock. The start time's own clock fields are ignored; only
// its calendar date matters.
func New(start time.Time, loc *time.Location) Clock {
	return Clock{Start: start, Loc: loc}
}

// InstantFor returns the instant for a 1-based week, a day offset from the
// week's first day, and a wall-clock hour/minute.
//
// The hour and minute are fixed on the week's first day and the day offset
// is then added as a 24h duration on top. An hour near midnight plus an
// offset can therefore land on an unexpected calendar day; downstream event
// ordering depends on this, so the offset must stay a duration and must not
// be folded back into the calendar fields.
func (c Clock) InstantFor(week, dayOffset, hour, minute int) time.Time {
	base := c.Start.AddDate(0, 0, 7*(week-1))
	dt := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, c.Loc)
	return dt.Add(time.Duration(dayOffset) * 24 * time.Hour)
}
