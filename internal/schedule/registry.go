package schedule

import "time"

// ExpandRules materializes every occurrence of the given recurring rules
// inside [windowStart, windowEnd). The expansion is a pure function of its
// inputs: calling it twice with the same arguments yields the same slice.
//
// Rules whose weekday set is empty contribute nothing. Rules with malformed
// clock times are skipped rather than failing the whole expansion; a venue
// with one corrupt rule must still be bookable under its remaining rules.
// Overlapping occurrences are emitted as-is: occupied is occupied.
func ExpandRules(rules []RecurringRule, windowStart, windowEnd time.Time) []TimeRange {
	if !windowStart.Before(windowEnd) || len(rules) == 0 {
		return nil
	}

	var out []TimeRange
	for day := DateFloor(windowStart); day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		for _, rule := range rules {
			if !rule.appliesOn(day.Weekday()) {
				continue
			}
			occ, err := rule.onDate(day)
			if err != nil {
				continue
			}
			out = append(out, occ)
		}
	}
	return out
}
