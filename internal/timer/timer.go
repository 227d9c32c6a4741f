// Package timer holds the live countdown engine as a tick-driven state
// machine. The host schedules the 1-second callback and owns sound
// playback; the machine only decides when state changes and when a beep
// is due.
package timer

import "github.com/sadopc/focuslog/internal/store"

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGoalReached
)

// Event tells the host what a transition requires of it.
type Event int

const (
	EventNone Event = iota
	// EventGoalReached fires on the tick where elapsed exactly equals the
	// goal; the host should surface the alarm.
	EventGoalReached
	// EventBeep fires on each of the bounded alarm repetitions.
	EventBeep
)

const (
	alarmBeeps    = 3
	extendMinutes = 10
	// DefaultGoalMinutes applies when prefs carry no default.
	DefaultGoalMinutes = 30
	// DefaultTaskName labels a session stopped without a task name.
	DefaultTaskName = "Untitled Task"
)

// Machine is the timer/alarm state machine. One authoritative elapsed
// counter; a tick advances it by exactly one second.
type Machine struct {
	state       state
	goalMinutes int
}

type state struct {
	phase     State
	elapsed   int64 // seconds
	taskName  string
	tag       string
	beepsLeft int
}

func New(goalMinutes int) *Machine {
	if goalMinutes <= 0 {
		goalMinutes = DefaultGoalMinutes
	}
	return &Machine{goalMinutes: goalMinutes}
}

func (m *Machine) State() State     { return m.state.phase }
func (m *Machine) Elapsed() int64   { return m.state.elapsed }
func (m *Machine) GoalMinutes() int { return m.goalMinutes }
func (m *Machine) TaskName() string { return m.state.taskName }
func (m *Machine) Tag() string      { return m.state.tag }

func (m *Machine) Running() bool { return m.state.phase == StateRunning }

// Idle reports whether the machine is fully reset (no elapsed time held).
func (m *Machine) Idle() bool {
	return m.state.phase == StateIdle && m.state.elapsed == 0
}

// SetTaskName takes effect for the next stopped session.
func (m *Machine) SetTaskName(name string) { m.state.taskName = name }

func (m *Machine) SetTag(tag string) { m.state.tag = tag }

// SetGoalMinutes is ignored while time is on the clock; the goal is fixed
// once a session is underway (extend is the only path that grows it).
func (m *Machine) SetGoalMinutes(minutes int) {
	if !m.Idle() || minutes < 1 {
		return
	}
	m.goalMinutes = minutes
}

// Toggle is the single start/pause action: idle or paused starts the
// clock, running pauses it. In the alarm state it is a no-op; stop and
// extend are the only exits.
func (m *Machine) Toggle() {
	switch m.state.phase {
	case StateIdle, StatePaused:
		m.state.phase = StateRunning
	case StateRunning:
		m.state.phase = StatePaused
	}
}

// Tick advances the machine by one second. While running it increments
// elapsed and checks for the goal by exact equality, so a goal changed
// after the matching instant never re-fires. In the alarm state it drives
// the bounded beep sequence at one-second spacing.
func (m *Machine) Tick() Event {
	switch m.state.phase {
	case StateRunning:
		m.state.elapsed++
		if m.goalMinutes > 0 && m.state.elapsed == int64(m.goalMinutes)*60 {
			m.state.phase = StateGoalReached
			m.state.beepsLeft = alarmBeeps
			return EventGoalReached
		}
	case StateGoalReached:
		if m.state.beepsLeft > 0 {
			m.state.beepsLeft--
			return EventBeep
		}
	}
	return EventNone
}

// Extend adds ten minutes to the goal, cancels the alarm, and resumes from
// the current elapsed value.
func (m *Machine) Extend() {
	if m.state.phase != StateGoalReached {
		return
	}
	m.goalMinutes += extendMinutes
	m.state.beepsLeft = 0
	m.state.phase = StateRunning
}

// Stop tears the timer down and returns the completed session record for
// the host to persist. ok is false when there is nothing to record (the
// machine was already fully reset). The task name and elapsed counter are
// cleared either way.
func (m *Machine) Stop() (sess store.Session, ok bool) {
	recorded := !m.Idle()
	if recorded {
		name := m.state.taskName
		if name == "" {
			name = DefaultTaskName
		}
		sess = store.Session{
			TaskName:     name,
			Tag:          m.state.tag,
			Duration:     m.state.elapsed,
			GoalDuration: int64(m.goalMinutes) * 60,
		}
	}
	m.state = state{tag: m.state.tag}
	return sess, recorded
}
