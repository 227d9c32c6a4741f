package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTracker viewState = iota
	viewTasks
	viewHistory
	viewSettings
)

var viewNames = []string{"Tracker", "Tasks", "History", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionSavedMsg struct {
	session store.Session
}

// focusTaskMsg asks the app to switch to the tracker and start timing the
// given task.
type focusTaskMsg struct {
	task store.Task
}

type trackerDataMsg struct {
	tags  []string
	prefs store.Prefs
}

type tasksDataMsg struct {
	items    []actionRow
	projects []store.Project
	tags     []string
	colors   map[string]string
}

type historyDataMsg struct {
	sessions []store.Session
	tags     []string
	colors   map[string]string
}

type settingsDataMsg struct {
	prefs store.Prefs
	tags  []string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatShort renders a duration the way the history list does: "2h 05m"
// or "45m".
func formatShort(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func tagColor(colors map[string]string, tag string) string {
	if c, ok := colors[tag]; ok && c != "" {
		return c
	}
	return defaultTagColor
}
