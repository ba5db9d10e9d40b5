package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClockTime = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidWeekday   = errors.New("invalid weekday, expected 0 (Sunday) to 6 (Saturday)")
)

// RecurringRule is a weekly-repeating occupied window attached to a venue:
// a clock-time range applied on a set of weekdays. Clock times are "HH:MM"
// strings, the format the calendar UI sends in settings.recurringBlocks.
// Cross-midnight rules are not supported.
type RecurringRule struct {
	Title      string `json:"title"`
	StartClock string `json:"startTime"`
	EndClock   string `json:"endTime"`
	DaysOfWeek []int  `json:"daysOfWeek"`
}

// Validate rejects rules that could never expand to a sane window. A rule
// with an empty DaysOfWeek set is valid but inert.
func (r RecurringRule) Validate() error {
	startMin, err := parseClock(r.StartClock)
	if err != nil {
		return fmt.Errorf("startTime %q: %w", r.StartClock, err)
	}
	endMin, err := parseClock(r.EndClock)
	if err != nil {
		return fmt.Errorf("endTime %q: %w", r.EndClock, err)
	}
	if startMin >= endMin {
		return ErrInvalidRange
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}

func (r RecurringRule) appliesOn(day time.Weekday) bool {
	for _, d := range r.DaysOfWeek {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// onDate applies the rule's clock times to the given calendar day.
func (r RecurringRule) onDate(day time.Time) (TimeRange, error) {
	startMin, err := parseClock(r.StartClock)
	if err != nil {
		return TimeRange{}, err
	}
	endMin, err := parseClock(r.EndClock)
	if err != nil {
		return TimeRange{}, err
	}
	floor := DateFloor(day)
	return NewTimeRange(
		floor.Add(time.Duration(startMin)*time.Minute),
		floor.Add(time.Duration(endMin)*time.Minute),
	)
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidClockTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidClockTime
	}
	return hour*60 + minute, nil
}
