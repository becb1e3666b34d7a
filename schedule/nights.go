package schedule

import (
	"time"

	"pizza-club-api/models"
)

// NightRef identifies an offerable night by date; it is a pure calendar
// value, independent of whether the night has been provisioned in the store.
type NightRef struct {
	Date string          `json:"date"`
	Day  models.NightDay `json:"day"`
}

// CurrentNights computes which nights are offerable right now: the upcoming
// Friday and the Saturday immediately after it. Once the active weekend is
// spent (Saturday past the roster's last bookable time, or any time Sunday)
// the window rolls forward to the next Friday/Saturday pair. Same-day nights
// are included, not skipped: on a Friday the result starts with that Friday,
// and on a Saturday before cutoff it is just that Saturday.
func CurrentNights(now time.Time, r Roster) []NightRef {
	origin := now
	if spentWeekend(now, r) {
		for origin.Weekday() == time.Saturday || origin.Weekday() == time.Sunday {
			origin = origin.AddDate(0, 0, 1)
		}
	}

	var out []NightRef
	d := origin
	for i := 0; i < 14 && len(out) < 2; i++ {
		switch d.Weekday() {
		case time.Friday:
			if len(out) == 0 {
				out = append(out, NightRef{Date: d.Format(models.DateLayout), Day: models.DayFriday})
			}
		case time.Saturday:
			// The first Saturday reached closes the window, whether or not
			// a Friday was collected before it.
			out = append(out, NightRef{Date: d.Format(models.DateLayout), Day: models.DaySaturday})
			return out
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

// spentWeekend reports whether the active weekend is already over: Sunday,
// or Saturday after the last bookable start time.
func spentWeekend(now time.Time, r Roster) bool {
	switch now.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		cutoff, err := At(now.Format(models.DateLayout), r.LastTime(), now.Location())
		if err != nil {
			return false
		}
		return now.After(cutoff)
	}
	return false
}
