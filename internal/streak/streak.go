// Package streak derives consecutive-day streaks from a set of entry dates.
package streak

import (
	"fmt"
	"sort"

	"github.com/radishspirit/moodjournal/internal/calendar"
	"github.com/radishspirit/moodjournal/internal/model"
)

// Result holds the two streak lengths, in days.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Calculate parses dates (YYYY-MM-DD, any order) and computes the streaks.
// A malformed date is reported as a model.ValidationError rather than
// collapsing to a zero result, which would read as "no entries".
func Calculate(dates []string) (Result, error) {
	parsed := make([]calendar.Date, 0, len(dates))
	for i, s := range dates {
		d, err := calendar.Parse(s)
		if err != nil {
			return Result{}, model.NewValidationError(
				fmt.Sprintf("dates[%d]", i),
				fmt.Sprintf("%q is not a YYYY-MM-DD date", s))
		}
		parsed = append(parsed, d)
	}
	return CalculateDates(parsed), nil
}

// CalculateDates computes the streaks over dates in a single pass.
//
// Current is the run ending at the most recent date; Longest is the longest
// run anywhere. Two dates continue a run only when they are exactly one
// calendar day apart, so a repeated date breaks the run instead of inflating it.
// The input slice is not modified.
func CalculateDates(dates []calendar.Date) Result {
	if len(dates) == 0 {
		return Result{}
	}

	sorted := make([]calendar.Date, len(dates))
	copy(sorted, dates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) > 0
	})

	var res Result
	run := 1
	anchored := true // run still touches the most recent date
	for i := 1; i < len(sorted); i++ {
		if calendar.DayDifference(sorted[i-1], sorted[i]) == 1 {
			run++
			continue
		}
		if anchored {
			res.Current = run
			anchored = false
		}
		res.Longest = max(res.Longest, run)
		run = 1
	}
	if anchored {
		res.Current = run
	}
	res.Longest = max(res.Longest, run, res.Current)
	return res
}

// FromEntries computes the streaks for a list of entries.
func FromEntries(entries []*model.Entry) (Result, error) {
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.DateISO)
	}
	return Calculate(dates)
}
