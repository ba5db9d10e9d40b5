package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("invalid time range: start must be before end")

// TimeRange is a half-open interval [Start, End). Ranges that merely touch at
// a boundary do not overlap, so back-to-back reservations are always legal.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) ContainsInstant(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Hours returns the duration of the range in fractional hours.
func (r TimeRange) Hours() float64 {
	return r.End.Sub(r.Start).Hours()
}

func (r TimeRange) String() string {
	if r.Start.Year() == r.End.Year() && r.Start.YearDay() == r.End.YearDay() {
		return fmt.Sprintf("%s %s - %s",
			r.Start.Format("2006-01-02"),
			r.Start.Format("15:04"),
			r.End.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s",
		r.Start.Format("2006-01-02 15:04"),
		r.End.Format("2006-01-02 15:04"))
}

// DateFloor truncates t to midnight in its own location.
func DateFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateCeil rounds t up to the next midnight; instants already at midnight are
// returned unchanged.
func DateCeil(t time.Time) time.Time {
	floor := DateFloor(t)
	if floor.Equal(t) {
		return t
	}
	return floor.AddDate(0, 0, 1)
}
