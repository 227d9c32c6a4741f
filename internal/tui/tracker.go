package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/sadopc/focuslog/internal/store"
	"github.com/sadopc/focuslog/internal/timer"
)

const goalStepMinutes = 5

type trackerModel struct {
	store  *store.Store
	logger *log.Logger
	width  int
	height int

	machine *timer.Machine
	tags    []string
	prefs   store.Prefs

	formActive bool
	form       *huh.Form
	formType   string // "name", "tag"

	formText *string
}

func newTrackerModel(s *store.Store, logger *log.Logger) trackerModel {
	text := ""
	return trackerModel{
		store:    s,
		logger:   logger,
		machine:  timer.New(timer.DefaultGoalMinutes),
		formText: &text,
	}
}

func (t *trackerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t trackerModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return trackerDataMsg{
			tags:  t.store.Tags(),
			prefs: t.store.Prefs(),
		}
	}
}

// startTask switches the tracker to the given task and starts the clock if
// it was idle. Called by the app when a task is focused from the task list.
func (t trackerModel) startTask(task store.Task) trackerModel {
	t.machine.SetTaskName(task.Title)
	if task.Tag != "" {
		t.setActiveTag(task.Tag)
	}
	if t.machine.Idle() {
		t.machine.Toggle()
	}
	return t
}

func (t trackerModel) update(msg tea.Msg) (trackerModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case trackerDataMsg:
		t.tags = msg.tags
		t.prefs = msg.prefs
		if t.machine.Idle() {
			if msg.prefs.DefaultGoalMinutes > 0 {
				t.machine.SetGoalMinutes(msg.prefs.DefaultGoalMinutes)
			}
		}
		if t.machine.Tag() == "" {
			t.machine.SetTag(t.resolveActiveTag())
		}
		return t, nil

	case tickMsg:
		switch t.machine.Tick() {
		case timer.EventGoalReached:
			// The machine's follow-up beeps carry the full alarm
			// sequence; the goal tick itself stays silent.
			return t, status("Time's up!")
		case timer.EventBeep:
			return t, playAlarm(t.logger, t.prefs.AlarmSound)
		}
		return t, nil

	case tea.KeyMsg:
		if t.machine.State() == timer.StateGoalReached {
			return t.updateAlarm(msg)
		}
		switch {
		case key.Matches(msg, keys.Toggle):
			t.machine.Toggle()
			if t.machine.Running() {
				return t, status("Timer running")
			}
			return t, status("Paused")
		case key.Matches(msg, keys.Stop):
			return t.stopAndSave()
		case key.Matches(msg, keys.Rename):
			return t.showNameForm()
		case key.Matches(msg, keys.CycleTag):
			return t.cycleTag()
		case key.Matches(msg, keys.AddTag):
			return t.showTagForm()
		case key.Matches(msg, keys.DropTag):
			return t.deleteActiveTag()
		case key.Matches(msg, keys.Left):
			t.adjustGoal(-goalStepMinutes)
			return t, nil
		case key.Matches(msg, keys.Right):
			t.adjustGoal(goalStepMinutes)
			return t, nil
		}
	}
	return t, nil
}

// updateAlarm handles keys while the goal overlay is up. Extend and stop
// are the only exits.
func (t trackerModel) updateAlarm(msg tea.KeyMsg) (trackerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		t.machine.Extend()
		return t, status(fmt.Sprintf("Extended to %d min", t.machine.GoalMinutes()))
	case key.Matches(msg, keys.Stop):
		return t.stopAndSave()
	}
	return t, nil
}

func (t trackerModel) stopAndSave() (trackerModel, tea.Cmd) {
	sess, ok := t.machine.Stop()
	if !ok {
		return t, nil
	}
	return t, func() tea.Msg {
		if _, err := t.store.SaveSession(sess); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return sessionSavedMsg{session: sess}
	}
}

func (t *trackerModel) adjustGoal(delta int) {
	if !t.machine.Idle() {
		return
	}
	minutes := t.machine.GoalMinutes() + delta
	if minutes < goalStepMinutes {
		minutes = goalStepMinutes
	}
	t.machine.SetGoalMinutes(minutes)
}

// resolveActiveTag falls back to the first tag when the stored active tag
// no longer exists.
func (t trackerModel) resolveActiveTag() string {
	for _, tag := range t.tags {
		if tag == t.prefs.ActiveTag {
			return tag
		}
	}
	if len(t.tags) > 0 {
		return t.tags[0]
	}
	return ""
}

func (t *trackerModel) setActiveTag(tag string) {
	t.prefs.ActiveTag = tag
	t.machine.SetTag(tag)
	if prefs, err := t.store.SavePrefs(store.PrefsPatch{ActiveTag: &tag}); err == nil {
		t.prefs = prefs
	}
}

func (t trackerModel) cycleTag() (trackerModel, tea.Cmd) {
	if len(t.tags) == 0 {
		return t, nil
	}
	current := t.resolveActiveTag()
	next := t.tags[0]
	for i, tag := range t.tags {
		if tag == current {
			next = t.tags[(i+1)%len(t.tags)]
			break
		}
	}
	t.setActiveTag(next)
	return t, nil
}

func (t trackerModel) deleteActiveTag() (trackerModel, tea.Cmd) {
	current := t.resolveActiveTag()
	if current == "" {
		return t, nil
	}
	tags, err := t.store.DeleteTag(current)
	if err != nil {
		return t, status(fmt.Sprintf("Error: %v", err))
	}
	t.tags = tags
	if len(tags) > 0 {
		t.setActiveTag(tags[0])
	} else {
		t.setActiveTag("")
	}
	return t, status("Deleted tag " + current)
}

func (t trackerModel) showNameForm() (trackerModel, tea.Cmd) {
	*t.formText = t.machine.TaskName()
	t.formType = "name"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(t.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t trackerModel) showTagForm() (trackerModel, tea.Cmd) {
	*t.formText = ""
	t.formType = "tag"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New Tag").Value(t.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t trackerModel) updateForm(msg tea.Msg) (trackerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		switch t.formType {
		case "name":
			t.machine.SetTaskName(strings.TrimSpace(*t.formText))
		case "tag":
			name := strings.TrimSpace(*t.formText)
			if name != "" {
				tags, err := t.store.AddTag(name)
				if err != nil {
					return t, status(fmt.Sprintf("Error: %v", err))
				}
				t.tags = tags
				t.setActiveTag(name)
			}
		}
		return t, nil
	}

	return t, cmd
}

func (t trackerModel) isRunning() bool {
	return !t.machine.Idle()
}

func (t trackerModel) isPaused() bool {
	return t.machine.State() == timer.StatePaused
}

func (t trackerModel) elapsed() int64 {
	return t.machine.Elapsed()
}

func (t trackerModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("Task Name")
		if t.formType == "tag" {
			title = titleStyle.Render("New Tag")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if t.machine.State() == timer.StateGoalReached {
		return t.renderAlarm(w)
	}

	name := t.machine.TaskName()
	if name == "" {
		name = timer.DefaultTaskName
	}

	var clockStyle lipgloss.Style
	var stateLabel string
	switch t.machine.State() {
	case timer.StateRunning:
		clockStyle = clockRunningStyle
		stateLabel = successStyle.Bold(true).Render("FOCUSING")
	case timer.StatePaused:
		clockStyle = clockPausedStyle
		stateLabel = warningStyle.Bold(true).Render("PAUSED")
	default:
		clockStyle = clockIdleStyle
		stateLabel = mutedStyle.Render("Ready")
	}

	clock := clockStyle.Width(w - 6).Render(formatClock(t.machine.Elapsed()))
	goal := mutedStyle.Render(fmt.Sprintf("Goal: %d min  (←/→ adjust while idle)", t.machine.GoalMinutes()))

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(name),
		"",
		clock,
		stateLabel,
		"",
		goal,
		"",
		t.renderTags(),
	)

	var controls string
	if t.machine.Idle() {
		controls = mutedStyle.Render("s: start  i: task name  t: tag  a: add tag  D: delete tag")
	} else {
		controls = mutedStyle.Render("s: pause/resume  x: stop & save  i: task name")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t trackerModel) renderTags() string {
	if len(t.tags) == 0 {
		return mutedStyle.Render("No tags. Press a to add one.")
	}
	active := t.resolveActiveTag()
	var chips []string
	for _, tag := range t.tags {
		color := tagColor(t.prefs.TagColors, tag)
		chip := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if tag == active {
			chips = append(chips, chip.Bold(true).Render("● "+tag))
		} else {
			chips = append(chips, mutedStyle.Render("○ "+tag))
		}
	}
	return strings.Join(chips, "  ")
}

func (t trackerModel) renderAlarm(w int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		clockDoneStyle.Render("TIME'S UP!"),
		"",
		titleStyle.Render(fmt.Sprintf("%s — %s", t.machine.TaskName(), formatClock(t.machine.Elapsed()))),
		"",
		mutedStyle.Render("enter: +10 min  x: stop & save"),
	)
	return overlayStyle.Width(w - 8).Render(content)
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
