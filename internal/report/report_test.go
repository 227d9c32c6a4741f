package report

import (
	"testing"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

var now = time.Date(2025, 6, 18, 17, 0, 0, 0, time.Local)

func sessionAt(task, tag string, end time.Time, secs int64) store.Session {
	return store.Session{
		TaskName:  task,
		Tag:       tag,
		StartTime: end.Add(-time.Duration(secs) * time.Second),
		EndTime:   end,
		Duration:  secs,
	}
}

// ============================================================
// Windows
// ============================================================

func TestNewWindowBounds(t *testing.T) {
	w := NewWindow(Today, now)
	if w.Start.Day() != 18 || w.Start.Hour() != 0 {
		t.Fatalf("today should start at midnight, got %v", w.Start)
	}
	if !w.Contains(now) {
		t.Fatal("today window should contain now")
	}
	if w.Contains(now.AddDate(0, 0, -1)) {
		t.Fatal("today window should not contain yesterday")
	}

	w7 := NewWindow(Last7Days, now)
	if !w7.Contains(now.AddDate(0, 0, -6)) {
		t.Fatal("7-day window should include six days back")
	}
	if w7.Contains(now.AddDate(0, 0, -7)) {
		t.Fatal("7-day window should exclude seven days back")
	}

	all := NewWindow(AllTime, now)
	if !all.Contains(time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatal("all-time window should reach arbitrarily far back")
	}
}

func TestCustomWindowInclusive(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)
	w := CustomWindow(start, end)

	if !w.Contains(time.Date(2025, 6, 12, 23, 30, 0, 0, time.Local)) {
		t.Fatal("end day should be included whole")
	}
	if w.Contains(time.Date(2025, 6, 13, 0, 0, 1, 0, time.Local)) {
		t.Fatal("day after end should be excluded")
	}
}

func TestFilterUsesEndTime(t *testing.T) {
	// A session that started yesterday but ended today counts today.
	end := time.Date(2025, 6, 18, 0, 30, 0, 0, time.Local)
	sessions := []store.Session{sessionAt("Overnight", "Deep Work", end, 3600)}

	got := Filter(sessions, NewWindow(Today, now))
	if len(got) != 1 {
		t.Fatal("session ending today should fall in today's window")
	}
}

// ============================================================
// Summaries
// ============================================================

func TestSummarizeToday(t *testing.T) {
	sessions := []store.Session{
		sessionAt("Write", "Deep Work", now.Add(-8*time.Hour), 1500), // 09:00
		sessionAt("Standup", "Meeting", now.Add(-7*time.Hour), 900),  // 10:00
	}
	w := NewWindow(Today, now)
	sum := Summarize(Filter(sessions, w), w)

	if sum.TotalSeconds != 2400 {
		t.Fatalf("expected total 2400, got %d", sum.TotalSeconds)
	}
	if sum.RangeDays != 1 {
		t.Fatalf("today should span 1 day, got %d", sum.RangeDays)
	}
	if sum.AveragePerDay != 2400 {
		t.Fatalf("expected average 2400, got %d", sum.AveragePerDay)
	}
	if sum.TopTag != "Deep Work" {
		t.Fatalf("expected top tag Deep Work, got %q", sum.TopTag)
	}
	if len(sum.PerTag) != 2 || sum.PerTag[0].Seconds < sum.PerTag[1].Seconds {
		t.Fatalf("per-tag rows should sort descending: %+v", sum.PerTag)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	w := NewWindow(Today, now)
	sum := Summarize(nil, w)
	if sum.TotalSeconds != 0 || sum.TopTag != "" {
		t.Fatalf("empty summary should be zero: %+v", sum)
	}
	if sum.RangeDays != 1 {
		t.Fatalf("range days floor is 1, got %d", sum.RangeDays)
	}
}

func TestTopTagTieIsStable(t *testing.T) {
	sessions := []store.Session{
		sessionAt("A", "Reading", now.Add(-3*time.Hour), 600),
		sessionAt("B", "Thinking", now.Add(-2*time.Hour), 600),
	}
	w := NewWindow(Today, now)
	sum := Summarize(sessions, w)
	if sum.TopTag != "Reading" {
		t.Fatalf("tie should keep first-encountered tag, got %q", sum.TopTag)
	}
}

func TestRangeDaysPerWindow(t *testing.T) {
	w7 := NewWindow(Last7Days, now)
	if got := Summarize(nil, w7).RangeDays; got != 7 {
		t.Fatalf("7-day window should count 7 days, got %d", got)
	}

	w30 := NewWindow(Last30Days, now)
	if got := Summarize(nil, w30).RangeDays; got != 30 {
		t.Fatalf("30-day window should count 30 days, got %d", got)
	}

	wc := CustomWindow(now.AddDate(0, 0, -4), now)
	if got := Summarize(nil, wc).RangeDays; got != 5 {
		t.Fatalf("custom window should count inclusive days, got %d", got)
	}
}

func TestRangeDaysAllTimeSpansData(t *testing.T) {
	sessions := []store.Session{
		sessionAt("Old", "Reading", now.AddDate(0, 0, -9), 600),
		sessionAt("New", "Reading", now, 600),
	}
	w := NewWindow(AllTime, now)
	sum := Summarize(Filter(sessions, w), w)
	if sum.RangeDays != 10 {
		t.Fatalf("all-time range should span oldest..newest inclusive, got %d", sum.RangeDays)
	}
	if sum.AveragePerDay != 120 {
		t.Fatalf("expected average 120, got %d", sum.AveragePerDay)
	}
}

// ============================================================
// Day bars
// ============================================================

func TestDayBarsBuckets(t *testing.T) {
	sessions := []store.Session{
		sessionAt("Write", "Deep Work", now.Add(-8*time.Hour), 1500),
		sessionAt("Standup", "Meeting", now.Add(-7*time.Hour), 900),
		sessionAt("Old", "Reading", now.AddDate(0, 0, -2), 600),
	}

	bars := DayBars(sessions, 7, now)
	if len(bars) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(bars))
	}
	if bars[6].Label != "Today" {
		t.Fatalf("last bucket should be today, got %q", bars[6].Label)
	}
	if bars[6].Seconds != 2400 {
		t.Fatalf("today bucket should sum to 2400, got %d", bars[6].Seconds)
	}
	if bars[4].Seconds != 600 {
		t.Fatalf("two-days-ago bucket should be 600, got %d", bars[4].Seconds)
	}

	nonZero := 0
	for _, b := range bars {
		if b.Seconds > 0 {
			nonZero++
		}
	}
	if nonZero != 2 {
		t.Fatalf("expected 2 non-zero buckets, got %d", nonZero)
	}

	single := DayBars(sessions, 1, now)
	if len(single) != 1 || single[0].Seconds != 2400 {
		t.Fatalf("single bucket should cover today only: %+v", single)
	}
}
