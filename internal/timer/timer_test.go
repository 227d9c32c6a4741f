package timer

import "testing"

func tickN(m *Machine, n int) Event {
	var ev Event
	for i := 0; i < n; i++ {
		ev = m.Tick()
	}
	return ev
}

// ============================================================
// Start / pause / stop
// ============================================================

func TestToggleSemantics(t *testing.T) {
	m := New(25)
	if !m.Idle() {
		t.Fatal("fresh machine should be idle")
	}

	m.Toggle()
	if m.State() != StateRunning {
		t.Fatal("toggle from idle should run")
	}

	m.Toggle()
	if m.State() != StatePaused {
		t.Fatal("toggle while running should pause")
	}

	m.Toggle()
	if m.State() != StateRunning {
		t.Fatal("toggle while paused should resume")
	}
}

func TestPausedHoldsElapsed(t *testing.T) {
	m := New(25)
	m.Toggle()
	tickN(m, 10)
	m.Toggle() // pause

	tickN(m, 5)
	if m.Elapsed() != 10 {
		t.Fatalf("paused ticks must not advance, elapsed = %d", m.Elapsed())
	}
	if m.Idle() {
		t.Fatal("paused machine with elapsed time is not idle")
	}
}

func TestStopReturnsSessionAndResets(t *testing.T) {
	m := New(25)
	m.SetTaskName("Write report")
	m.SetTag("Deep Work")
	m.Toggle()
	tickN(m, 90)

	sess, ok := m.Stop()
	if !ok {
		t.Fatal("stop with time on the clock should record")
	}
	if sess.TaskName != "Write report" || sess.Tag != "Deep Work" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", sess.Duration)
	}
	if sess.GoalDuration != 25*60 {
		t.Fatalf("expected goal 1500, got %d", sess.GoalDuration)
	}

	if !m.Idle() {
		t.Fatal("stop should fully reset")
	}
	if m.TaskName() != "" {
		t.Fatal("stop should clear the task name")
	}
	if m.Tag() != "Deep Work" {
		t.Fatal("stop should keep the tag for the next run")
	}
}

func TestStopWhileIdleRecordsNothing(t *testing.T) {
	m := New(25)
	if _, ok := m.Stop(); ok {
		t.Fatal("idle stop should not record")
	}
}

func TestStopDefaultsTaskName(t *testing.T) {
	m := New(25)
	m.Toggle()
	tickN(m, 5)

	sess, ok := m.Stop()
	if !ok {
		t.Fatal("expected a recorded session")
	}
	if sess.TaskName != DefaultTaskName {
		t.Fatalf("empty task name should default, got %q", sess.TaskName)
	}
}

// ============================================================
// Goal detection and alarm
// ============================================================

func TestGoalFiresAtExactInstant(t *testing.T) {
	m := New(25)
	m.Toggle()

	if ev := tickN(m, 25*60-1); ev != EventNone {
		t.Fatalf("goal fired early: %v", ev)
	}
	if ev := m.Tick(); ev != EventGoalReached {
		t.Fatalf("expected goal event at 1500s, got %v", ev)
	}
	if m.State() != StateGoalReached {
		t.Fatal("machine should be in the alarm state")
	}
}

func TestAlarmBeepsAreBounded(t *testing.T) {
	m := New(1)
	m.Toggle()
	if ev := tickN(m, 60); ev != EventGoalReached {
		t.Fatal("expected goal at 60s")
	}

	for i := 0; i < 3; i++ {
		if ev := m.Tick(); ev != EventBeep {
			t.Fatalf("tick %d: expected beep, got %v", i, ev)
		}
	}
	if ev := m.Tick(); ev != EventNone {
		t.Fatalf("beeps must stop after three, got %v", ev)
	}
}

func TestAlarmIgnoresToggle(t *testing.T) {
	m := New(1)
	m.Toggle()
	tickN(m, 60)

	m.Toggle()
	if m.State() != StateGoalReached {
		t.Fatal("toggle must not leave the alarm state")
	}
}

func TestExtendResumesWithoutReset(t *testing.T) {
	m := New(1)
	m.SetTaskName("Stretch")
	m.Toggle()
	tickN(m, 60)

	m.Extend()
	if m.State() != StateRunning {
		t.Fatal("extend should resume the clock")
	}
	if m.Elapsed() != 60 {
		t.Fatalf("extend must keep elapsed, got %d", m.Elapsed())
	}
	if m.GoalMinutes() != 11 {
		t.Fatalf("expected goal 11 min after extend, got %d", m.GoalMinutes())
	}

	// The extended goal fires again at the new instant.
	if ev := tickN(m, 10*60-1); ev != EventNone {
		t.Fatalf("extended goal fired early: %v", ev)
	}
	if ev := m.Tick(); ev != EventGoalReached {
		t.Fatalf("expected second goal event, got %v", ev)
	}
}

func TestGoalChangeAfterInstantNeverRefires(t *testing.T) {
	m := New(25)
	m.Toggle()
	tickN(m, 30)

	// Goal changes are refused once time is on the clock, so a goal below
	// the current elapsed can never appear and re-fire.
	m.SetGoalMinutes(0)
	if m.GoalMinutes() != 25 {
		t.Fatal("goal changed while running")
	}
	m.Toggle() // pause
	m.SetGoalMinutes(1)
	if m.GoalMinutes() != 25 {
		t.Fatal("goal changed while paused with elapsed time")
	}
}

func TestSetGoalMinutesWhileIdle(t *testing.T) {
	m := New(25)
	m.SetGoalMinutes(50)
	if m.GoalMinutes() != 50 {
		t.Fatal("idle goal change should apply")
	}
	m.SetGoalMinutes(0)
	if m.GoalMinutes() != 50 {
		t.Fatal("non-positive goal should be refused")
	}
}
