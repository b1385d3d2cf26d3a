// Package query derives filtered, date-sorted views of a geo's events.
// Nothing here mutates its input.
package query

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// Filter option values
const (
	All = "all"

	TimeframeUpcoming  = "upcoming"
	TimeframePast      = "past"
	TimeframeThisWeek  = "this-week"
	TimeframeThisMonth = "this-month"
)

// Week is the length of the this-week window, independent of DST changes
const Week = 7 * 24 * time.Hour

// Timeframes lists the recognized timeframe buckets
var Timeframes = []string{All, TimeframeUpcoming, TimeframePast, TimeframeThisWeek, TimeframeThisMonth}

// Filter is the set of options the dashboard can apply. Budget bounds are
// kept as raw input text; text without a leading number imposes no bound.
type Filter struct {
	Search    string
	Status    string
	Timeframe string
	MinBudget string
	MaxBudget string
}

// ActiveCount returns how many options are in effect, for display only
func (f Filter) ActiveCount() int {
	n := 0
	if strings.TrimSpace(f.Search) != "" {
		n++
	}
	if !isAll(f.Status) {
		n++
	}
	if !isAll(f.Timeframe) {
		n++
	}
	if f.MinBudget != "" {
		n++
	}
	if f.MaxBudget != "" {
		n++
	}
	return n
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Apply returns the events matching f, sorted ascending by start time.
// Stages run in a fixed order: sort, search, status, timeframe, min budget,
// max budget.
func Apply(events []model.Event, f Filter, now time.Time) []model.Event {
	out := model.CloneEvents(events)
	SortByStart(out)

	if strings.TrimSpace(f.Search) != "" {
		lower := cases.Lower(language.Und)
		q := lower.String(f.Search)
		out = keep(out, func(e model.Event) bool {
			return strings.Contains(lower.String(e.Title), q) ||
				strings.Contains(lower.String(e.Description), q) ||
				strings.Contains(lower.String(string(e.Status)), q)
		})
	}

	if !isAll(f.Status) {
		out = keep(out, func(e model.Event) bool {
			return string(e.Status) == f.Status
		})
	}

	if match := timeframeMatcher(f.Timeframe, now); match != nil {
		out = keep(out, func(e model.Event) bool {
			return match(e.StartDateTime)
		})
	}

	if lo, ok := ParseAmount(f.MinBudget); ok {
		out = keep(out, func(e model.Event) bool {
			return e.Budget.Total >= lo
		})
	}
	if hi, ok := ParseAmount(f.MaxBudget); ok {
		out = keep(out, func(e model.Event) bool {
			return e.Budget.Total <= hi
		})
	}
	return out
}

// SortByStart sorts events ascending by start time, keeping insertion order
// for equal start times
func SortByStart(events []model.Event) {
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return a.StartDateTime.Compare(b.StartDateTime)
	})
}

func keep(events []model.Event, pred func(model.Event) bool) []model.Event {
	out := events[:0]
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func timeframeMatcher(timeframe string, now time.Time) func(time.Time) bool {
	switch timeframe {
	case TimeframeUpcoming:
		return func(t time.Time) bool { return !t.Before(now) }
	case TimeframePast:
		return func(t time.Time) bool { return t.Before(now) }
	case TimeframeThisWeek:
		end := now.Add(Week)
		return func(t time.Time) bool { return !t.Before(now) && !t.After(end) }
	case TimeframeThisMonth:
		end := StartOfNextMonth(now)
		return func(t time.Time) bool { return !t.Before(now) && t.Before(end) }
	}
	return nil
}

// StartOfNextMonth returns midnight on the first day of the month after t,
// in t's location
func StartOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading decimal number of s, ignoring leading
// whitespace and any trailing text. ok is false when s has no leading number.
func ParseAmount(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
