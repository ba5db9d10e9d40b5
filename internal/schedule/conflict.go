package schedule

// CommittedInterval is a time range that occupies a venue with binding force:
// an approved booking, an administrative block, or an expanded recurring
// window. Recurring windows carry BookingID 0.
type CommittedInterval struct {
	BookingID int64
	Title     string
	Range     TimeRange
}

// Verdict is the structured result of a conflict check. When Allowed is
// false, Conflict identifies the committed entry the candidate collides with
// so the caller can surface a message naming it.
type Verdict struct {
	Allowed  bool
	Conflict *CommittedInterval
}

// Check decides whether candidate may be committed against the given state.
// Committed intervals are examined in input order and the first overlap wins,
// which keeps the verdict deterministic for a given repository ordering.
// Recurring rules are expanded over the candidate's day span and examined
// after the committed set.
//
// Adjacency is not a conflict: intervals sharing only a boundary instant are
// permitted side by side.
func Check(candidate TimeRange, committed []CommittedInterval, rules []RecurringRule) Verdict {
	for i := range committed {
		if committed[i].Range.Overlaps(candidate) {
			return Verdict{Allowed: false, Conflict: &committed[i]}
		}
	}

	windows := ExpandRules(rules, DateFloor(candidate.Start), DateCeil(candidate.End))
	for _, w := range windows {
		if w.Overlaps(candidate) {
			title := titleForWindow(rules, w)
			return Verdict{Allowed: false, Conflict: &CommittedInterval{Title: title, Range: w}}
		}
	}

	return Verdict{Allowed: true}
}

// titleForWindow recovers the rule title behind an expanded occurrence.
func titleForWindow(rules []RecurringRule, w TimeRange) string {
	for _, rule := range rules {
		occ, err := rule.onDate(w.Start)
		if err != nil {
			continue
		}
		if occ.Start.Equal(w.Start) && occ.End.Equal(w.End) {
			return rule.Title
		}
	}
	return "recurring block"
}
