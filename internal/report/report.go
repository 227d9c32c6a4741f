// Package report derives time-windowed views over session history. All
// functions are pure: the evaluation instant and window bounds are
// explicit parameters, so results are deterministic for a fixed input.
package report

import (
	"sort"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

type WindowKind int

const (
	Today WindowKind = iota
	Last7Days
	Last30Days
	AllTime
	Custom
)

var windowNames = map[WindowKind]string{
	Today:      "Today",
	Last7Days:  "7 Days",
	Last30Days: "30 Days",
	AllTime:    "All Time",
	Custom:     "Custom",
}

func (k WindowKind) String() string { return windowNames[k] }

// Window is a [Start, End] session filter, both bounds inclusive. AllTime
// has a zero Start.
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// NewWindow builds the standard windows relative to now. Today covers
// [startOfToday, endOfToday]; Last7Days and Last30Days start 6 and 29 days
// earlier respectively; AllTime is unbounded below.
func NewWindow(kind WindowKind, now time.Time) Window {
	end := endOfDay(now)
	switch kind {
	case Today:
		return Window{Kind: kind, Start: startOfDay(now), End: end}
	case Last7Days:
		return Window{Kind: kind, Start: startOfDay(now.AddDate(0, 0, -6)), End: end}
	case Last30Days:
		return Window{Kind: kind, Start: startOfDay(now.AddDate(0, 0, -29)), End: end}
	case AllTime:
		return Window{Kind: kind, End: end}
	}
	return Window{Kind: kind, Start: startOfDay(now), End: end}
}

// CustomWindow spans whole days from start to end, both inclusive.
func CustomWindow(start, end time.Time) Window {
	return Window{Kind: Custom, Start: startOfDay(start), End: endOfDay(end)}
}

func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	return !t.After(w.End)
}

// Filter returns the sessions whose timestamp falls inside the window,
// preserving input order.
func Filter(sessions []store.Session, w Window) []store.Session {
	var out []store.Session
	for _, s := range sessions {
		if w.Contains(s.When()) {
			out = append(out, s)
		}
	}
	return out
}

// TagTotal is one row of the per-tag breakdown.
type TagTotal struct {
	Tag     string
	Seconds int64
}

// DayBar is one bucket of the per-day chart.
type DayBar struct {
	Day     time.Time
	Label   string
	Seconds int64
}

// Summary aggregates a window-filtered session list.
type Summary struct {
	TotalSeconds  int64
	RangeDays     int
	AveragePerDay int64 // seconds
	TopTag        string
	PerTag        []TagTotal // sorted by seconds descending, stable
}

// Summarize computes totals over sessions already filtered to the window.
// The top tag is the first-encountered maximum, so ties resolve stably in
// list order rather than alphabetically.
func Summarize(sessions []store.Session, w Window) Summary {
	var sum Summary

	totals := make(map[string]int64)
	var order []string
	for _, s := range sessions {
		sum.TotalSeconds += s.Duration
		if _, seen := totals[s.Tag]; !seen {
			order = append(order, s.Tag)
		}
		totals[s.Tag] += s.Duration
	}

	var best int64 = -1
	for _, tag := range order {
		sum.PerTag = append(sum.PerTag, TagTotal{Tag: tag, Seconds: totals[tag]})
		if totals[tag] > best {
			best = totals[tag]
			sum.TopTag = tag
		}
	}
	// Descending by seconds; sort.SliceStable keeps first-encountered
	// order among equals.
	sortTagTotals(sum.PerTag)

	sum.RangeDays = rangeDays(sessions, w)
	sum.AveragePerDay = sum.TotalSeconds / int64(sum.RangeDays)
	return sum
}

// rangeDays is the divisor for the daily average: the window's day span
// for bounded windows, and daysBetween(oldest, newest)+1 for AllTime.
// Never less than 1.
func rangeDays(sessions []store.Session, w Window) int {
	var days int
	switch w.Kind {
	case Today:
		days = 1
	case Last7Days:
		days = 7
	case Last30Days:
		days = 30
	case Custom:
		days = daysBetween(w.Start, w.End) + 1
	case AllTime:
		if len(sessions) > 0 {
			oldest := sessions[0].When()
			newest := sessions[0].When()
			for _, s := range sessions[1:] {
				if t := s.When(); t.Before(oldest) {
					oldest = t
				} else if t.After(newest) {
					newest = t
				}
			}
			days = daysBetween(oldest, newest) + 1
		}
	}
	if days < 1 {
		days = 1
	}
	return days
}

// DayBars buckets session durations into count calendar days ending on the
// day of now, oldest to newest. The Today window uses 1 bucket, the 7-day
// chart uses 7.
func DayBars(sessions []store.Session, count int, now time.Time) []DayBar {
	bars := make([]DayBar, 0, count)
	for i := count - 1; i >= 0; i-- {
		day := startOfDay(now.AddDate(0, 0, -i))
		var total int64
		for _, s := range sessions {
			if sameDay(s.When(), day) {
				total += s.Duration
			}
		}
		label := day.Format("Mon")
		if i == 0 {
			label = "Today"
		}
		bars = append(bars, DayBar{Day: day, Label: label, Seconds: total})
	}
	return bars
}

func sortTagTotals(totals []TagTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Seconds > totals[j].Seconds
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}
