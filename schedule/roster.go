package schedule

import (
	"fmt"
	"time"

	"pizza-club-api/models"
)

// Roster is the fixed per-night list of candidate pickup start times,
// described by its window rather than enumerated: first start time, last
// start time, and the step between them.
type Roster struct {
	first time.Time // clock value on a reference day
	last  time.Time
	step  time.Duration
}

// NewRoster parses a roster window. Times use the "15:04" layout; step is in
// minutes and must evenly divide the window.
func NewRoster(first, last string, stepMin int) (Roster, error) {
	f, err := time.Parse(models.TimeLayout, first)
	if err != nil {
		return Roster{}, fmt.Errorf("invalid first slot time %q: %w", first, err)
	}
	l, err := time.Parse(models.TimeLayout, last)
	if err != nil {
		return Roster{}, fmt.Errorf("invalid last slot time %q: %w", last, err)
	}
	if stepMin <= 0 {
		return Roster{}, fmt.Errorf("slot step must be positive, got %d", stepMin)
	}
	if l.Before(f) {
		return Roster{}, fmt.Errorf("last slot %q is before first slot %q", last, first)
	}
	step := time.Duration(stepMin) * time.Minute
	if l.Sub(f)%step != 0 {
		return Roster{}, fmt.Errorf("window %s–%s is not a whole number of %d-minute steps", first, last, stepMin)
	}
	return Roster{first: f, last: l, step: step}, nil
}

// DefaultRoster is the club's standard window: 17:15 through 19:30 in
// 15-minute steps, ten slots.
func DefaultRoster() Roster {
	r, err := NewRoster("17:15", "19:30", 15)
	if err != nil {
		panic(err) // constants above are known-valid
	}
	return r
}

// Times enumerates the candidate start times in ascending order.
func (r Roster) Times() []string {
	var out []string
	for t := r.first; !t.After(r.last); t = t.Add(r.step) {
		out = append(out, t.Format(models.TimeLayout))
	}
	return out
}

// Size returns the number of slots in the roster.
func (r Roster) Size() int {
	return int(r.last.Sub(r.first)/r.step) + 1
}

// LastTime returns the final bookable start time ("19:30" by default); it is
// also the weekend cutoff used by the night selector.
func (r Roster) LastTime() string {
	return r.last.Format(models.TimeLayout)
}

// At combines a night date with a roster time into a wall-clock instant.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, date+" "+clock, loc)
}
