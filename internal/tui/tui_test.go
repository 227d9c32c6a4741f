package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/focuslog/internal/store"
	"github.com/sadopc/focuslog/internal/timer"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// ============================================================
// Tracker
// ============================================================

func TestTrackerStopSavesSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())

	tm.machine.SetTaskName("Write tests")
	tm.machine.SetTag("Deep Work")
	tm.machine.Toggle()
	for i := 0; i < 90; i++ {
		tm.machine.Tick()
	}

	tm, cmd := tm.stopAndSave()
	if cmd == nil {
		t.Fatal("stop with elapsed time should produce a save command")
	}
	msg := cmd()
	saved, ok := msg.(sessionSavedMsg)
	if !ok {
		t.Fatalf("expected sessionSavedMsg, got %T", msg)
	}
	if saved.session.TaskName != "Write tests" || saved.session.Duration != 90 {
		t.Fatalf("unexpected saved session: %+v", saved.session)
	}

	history := s.History()
	if len(history) != 1 || history[0].TaskName != "Write tests" {
		t.Fatalf("session not persisted: %+v", history)
	}
	if !tm.machine.Idle() {
		t.Fatal("machine should reset after stop")
	}
}

func TestTrackerStopWhileIdleIsNoop(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())

	if _, cmd := tm.stopAndSave(); cmd != nil {
		t.Fatal("idle stop should not produce a command")
	}
	if len(s.History()) != 0 {
		t.Fatal("idle stop must not persist anything")
	}
}

func TestTrackerCycleTagPersistsActive(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())

	tm, _ = tm.update(trackerDataMsg{tags: s.Tags(), prefs: s.Prefs()})
	tm, _ = tm.cycleTag()

	want := s.Tags()[1]
	if got := s.Prefs().ActiveTag; got != want {
		t.Fatalf("active tag not persisted, got %q want %q", got, want)
	}
	if tm.machine.Tag() != want {
		t.Fatalf("machine tag not updated, got %q", tm.machine.Tag())
	}
}

func TestTrackerDeleteActiveTagReassigns(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())
	tm, _ = tm.update(trackerDataMsg{tags: s.Tags(), prefs: s.Prefs()})

	first := s.Tags()[0]
	tm, _ = tm.deleteActiveTag()

	tags := s.Tags()
	for _, tag := range tags {
		if tag == first {
			t.Fatal("deleted tag still stored")
		}
	}
	if got := s.Prefs().ActiveTag; got != tags[0] {
		t.Fatalf("active tag should move to first remaining, got %q", got)
	}
}

func TestTrackerGoalAdjustOnlyWhileIdle(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())

	tm.adjustGoal(goalStepMinutes)
	if tm.machine.GoalMinutes() != timer.DefaultGoalMinutes+goalStepMinutes {
		t.Fatalf("idle adjust should apply, got %d", tm.machine.GoalMinutes())
	}

	tm.machine.Toggle()
	tm.machine.Tick()
	before := tm.machine.GoalMinutes()
	tm.adjustGoal(goalStepMinutes)
	if tm.machine.GoalMinutes() != before {
		t.Fatal("adjust must be ignored with time on the clock")
	}
}

func TestTrackerAlarmPlaysExactlyThrice(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())
	tm.machine.SetGoalMinutes(1)
	tm.machine.Toggle()

	for i := 0; i < 59; i++ {
		var cmd tea.Cmd
		tm, cmd = tm.update(tickMsg(time.Now()))
		if cmd != nil {
			t.Fatalf("tick %d before the goal should be silent", i)
		}
	}

	// The goal tick surfaces the alarm but plays no sound itself; the
	// playback command yields a nil message, the status command does not.
	tm, cmd := tm.update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("goal tick should produce a status command")
	}
	if _, ok := cmd().(statusMsg); !ok {
		t.Fatal("goal tick must announce, not play")
	}

	plays := 0
	for i := 0; i < 5; i++ {
		tm, cmd = tm.update(tickMsg(time.Now()))
		if cmd == nil {
			continue
		}
		if msg := cmd(); msg == nil {
			plays++
		}
	}
	if plays != 3 {
		t.Fatalf("expected exactly 3 alarm repetitions, got %d", plays)
	}
}

func TestTrackerStartTask(t *testing.T) {
	s := newTestStore(t)
	tm := newTrackerModel(s, testLogger())
	tm, _ = tm.update(trackerDataMsg{tags: s.Tags(), prefs: s.Prefs()})

	task := store.Task{Title: "Focus me", Tag: s.Tags()[1]}
	tm = tm.startTask(task)

	if !tm.machine.Running() {
		t.Fatal("focusing a task should start the clock")
	}
	if tm.machine.TaskName() != "Focus me" {
		t.Fatalf("task name not set, got %q", tm.machine.TaskName())
	}
	if tm.machine.Tag() != task.Tag {
		t.Fatalf("tag not set, got %q", tm.machine.Tag())
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCompleteTaskWritesCompletionLog(t *testing.T) {
	s := newTestStore(t)
	tasks, err := s.SaveTask(store.Task{Title: "Ship it", Tag: "Admin"})
	if err != nil {
		t.Fatal(err)
	}

	m := newTasksModel(s)
	m.completeTask(actionRow{ActionItem: store.ActionItem{Task: tasks[0]}})

	stored := s.Tasks()
	if len(stored) != 1 || !stored[0].Completed {
		t.Fatalf("task not marked completed: %+v", stored)
	}

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected one completion log, got %d", len(history))
	}
	if !history[0].IsCompletionLog() {
		t.Fatalf("expected a completion log, got %+v", history[0])
	}
	if history[0].TaskName != "Ship it" || history[0].Tag != "Admin" {
		t.Fatalf("completion log should carry task name and tag: %+v", history[0])
	}
}

func TestSnoozedRows(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.SaveTask(store.Task{Title: "Active"})
	s.SaveTask(store.ToggleDefer(store.Task{Title: "Sleeping", Priority: 2}, now))
	s.SaveTask(store.ToggleDefer(store.Task{Title: "Important nap", Priority: 5}, now))
	s.SaveTask(store.Task{Title: "Done", Completed: true})

	rows := snoozedRows(s, now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 snoozed rows, got %d", len(rows))
	}
	if rows[0].Title != "Important nap" {
		t.Fatalf("snoozed rows should order by priority, got %q first", rows[0].Title)
	}
	for _, row := range rows {
		if !row.snoozed {
			t.Fatal("snoozed rows must be flagged")
		}
	}
}

func TestDeadlineBadge(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)

	if badge := deadlineBadge("", now); badge != "" {
		t.Fatalf("no deadline should render nothing, got %q", badge)
	}
	if badge := deadlineBadge("not-a-date", now); badge != "" {
		t.Fatalf("bad deadline should render nothing, got %q", badge)
	}
	if badge := deadlineBadge("2025-06-10", now); !strings.Contains(badge, "overdue") {
		t.Fatalf("past deadline should read overdue, got %q", badge)
	}
	if badge := deadlineBadge("2025-06-19", now); !strings.Contains(badge, "due") {
		t.Fatalf("near deadline should read due, got %q", badge)
	}
}

// ============================================================
// History
// ============================================================

func TestHistoryWindowCycling(t *testing.T) {
	s := newTestStore(t)
	m := newHistoryModel(s)
	m.setSize(100, 40)

	if m.windowIdx != 0 {
		t.Fatal("history should start on Today")
	}

	// Cycling left from the first window wraps to the last.
	m.windowIdx = (m.windowIdx + len(historyWindows) - 1) % len(historyWindows)
	if historyWindows[m.windowIdx].String() != "Custom" {
		t.Fatalf("expected wrap to Custom, got %s", historyWindows[m.windowIdx])
	}
}

func TestHistoryFilteredBySelectedWindow(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.SaveSession(store.Session{TaskName: "Today", Duration: 600, EndTime: now})
	s.SaveSession(store.Session{TaskName: "Last week", Duration: 600, EndTime: now.AddDate(0, 0, -5)})

	m := newHistoryModel(s)
	m.setSize(100, 40)
	m, _ = m.update(historyDataMsg{sessions: s.History(), tags: s.Tags(), colors: nil})

	if got := len(m.filtered()); got != 1 {
		t.Fatalf("today window should show 1 session, got %d", got)
	}

	m.windowIdx = 1 // 7 days
	if got := len(m.filtered()); got != 2 {
		t.Fatalf("7-day window should show both sessions, got %d", got)
	}
}

func TestHistoryChartBuilds(t *testing.T) {
	s := newTestStore(t)
	s.SaveSession(store.Session{TaskName: "Chart me", Tag: "Deep Work", Duration: 3600})

	m := newHistoryModel(s)
	m.setSize(100, 40)
	m.windowIdx = 1
	m, _ = m.update(historyDataMsg{sessions: s.History(), tags: s.Tags(), colors: nil})

	if view := m.chart.View(); view == "" {
		t.Fatal("chart should render")
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	if got := formatClock(0); got != "00:00:00" {
		t.Fatalf("formatClock(0) = %q", got)
	}
	if got := formatClock(3735); got != "01:02:15" {
		t.Fatalf("formatClock(3735) = %q", got)
	}
}

func TestFormatShort(t *testing.T) {
	if got := formatShort(45 * 60); got != "45m" {
		t.Fatalf("formatShort = %q", got)
	}
	if got := formatShort(2*3600 + 5*60); got != "2h 05m" {
		t.Fatalf("formatShort = %q", got)
	}
}
