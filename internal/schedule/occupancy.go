package schedule

import "time"

// OccupancyDay is one bar of the 7-day dashboard chart: the day offset from
// the anchor date and the committed hours booked on it.
type OccupancyDay struct {
	DayIndex int     `json:"weekdayIndex"`
	Hours    float64 `json:"hours"`
}

// Aggregate buckets committed intervals into per-day hour totals over the
// 7-day window anchored at anchor's midnight. An interval lands entirely in
// the bucket its start falls into, matching how the dashboard chart counts a
// late-evening session toward the day it begins. Intervals starting outside
// the window are ignored.
func Aggregate(intervals []TimeRange, anchor time.Time) []OccupancyDay {
	days := make([]OccupancyDay, 7)
	for i := range days {
		days[i].DayIndex = i
	}

	anchorFloor := DateFloor(anchor)
	for _, iv := range intervals {
		offset := int(DateFloor(iv.Start).Sub(anchorFloor).Hours() / 24)
		if offset < 0 || offset >= 7 {
			continue
		}
		days[offset].Hours += iv.Hours()
	}
	return days
}

// HottestDay returns the index of the busiest day, or -1 when the whole week
// is empty. Ties resolve to the first index; the chart only needs one flame
// icon, so the bias is acceptable for a display heuristic.
func HottestDay(days []OccupancyDay) int {
	hottest := -1
	var max float64
	for i, d := range days {
		if d.Hours > max {
			max = d.Hours
			hottest = i
		}
	}
	return hottest
}
