package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focuslog/internal/report"
	"github.com/sadopc/focuslog/internal/store"
)

type historyMode int

const (
	historyChart historyMode = iota
	historyTags
)

var historyWindows = []report.WindowKind{
	report.Today,
	report.Last7Days,
	report.Last30Days,
	report.AllTime,
	report.Custom,
}

type historyModel struct {
	store  *store.Store
	width  int
	height int

	sessions []store.Session
	tags     []string
	colors   map[string]string

	windowIdx   int
	customStart time.Time
	customEnd   time.Time
	mode        historyMode
	cursor      int
	showReport  bool

	chart barchart.Model

	formActive bool
	form       *huh.Form
	formType   string // "add", "edit", "range"

	formTask    *string
	formTag     *string
	formMinutes *string
	formEnd     *string
	formNote    *string
	formFrom    *string
	formTo      *string

	editingID   string
	editingGoal int64
}

func newHistoryModel(s *store.Store) historyModel {
	task, tag, minutes, end, note, from, to := "", "", "", "", "", "", ""
	now := time.Now()
	return historyModel{
		store:       s,
		chart:       barchart.New(60, 12),
		customStart: now.AddDate(0, 0, -6),
		customEnd:   now,
		formTask:    &task,
		formTag:     &tag,
		formMinutes: &minutes,
		formEnd:     &end,
		formNote:    &note,
		formFrom:    &from,
		formTo:      &to,
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return historyDataMsg{
			sessions: m.store.History(),
			tags:     m.store.Tags(),
			colors:   m.store.Prefs().TagColors,
		}
	}
}

func (m historyModel) window() report.Window {
	kind := historyWindows[m.windowIdx]
	if kind == report.Custom {
		return report.CustomWindow(m.customStart, m.customEnd)
	}
	return report.NewWindow(kind, time.Now())
}

func (m historyModel) filtered() []store.Session {
	return report.Filter(m.sessions, m.window())
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		m.sessions = msg.sessions
		m.tags = msg.tags
		m.colors = msg.colors
		m.buildChart()
		if n := len(m.filtered()); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showReport {
			m.showReport = false
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Left):
			m.windowIdx = (m.windowIdx + len(historyWindows) - 1) % len(historyWindows)
			return m.windowChanged()
		case key.Matches(msg, keys.Right):
			m.windowIdx = (m.windowIdx + 1) % len(historyWindows)
			return m.windowChanged()
		case key.Matches(msg, keys.Switch):
			if m.mode == historyChart {
				m.mode = historyTags
			} else {
				m.mode = historyChart
			}
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showSessionForm(nil)
		case key.Matches(msg, keys.Edit):
			if f := m.filtered(); len(f) > 0 {
				sess := f[m.cursor]
				return m.showSessionForm(&sess)
			}
		case key.Matches(msg, keys.Delete):
			if f := m.filtered(); len(f) > 0 {
				m.store.DeleteSession(f[m.cursor].ID)
				return m, tea.Batch(m.refresh(), status("Session deleted"))
			}
		case key.Matches(msg, keys.Report):
			m.showReport = true
			return m, nil
		}
	}
	return m, nil
}

func (m historyModel) windowChanged() (historyModel, tea.Cmd) {
	m.cursor = 0
	if historyWindows[m.windowIdx] == report.Custom {
		return m.showRangeForm()
	}
	m.buildChart()
	return m, nil
}

// buildChart renders one bar per bucket day, split by tag. Today gets a
// single bucket, every other window the trailing seven days.
func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	count := 7
	if historyWindows[m.windowIdx] == report.Today {
		count = 1
	}

	filtered := m.filtered()
	now := time.Now()

	var bars []barchart.BarData
	for _, bar := range report.DayBars(filtered, count, now) {
		var values []barchart.BarValue
		for _, tag := range m.tags {
			var secs int64
			for _, sess := range filtered {
				if sess.Tag == tag && sameLocalDay(sess.When(), bar.Day) {
					secs += sess.Duration
				}
			}
			if secs == 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(tagColor(m.colors, tag)))
			values = append(values, barchart.BarValue{
				Name:  tag,
				Value: float64(secs) / 3600.0,
				Style: style,
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{Label: bar.Label, Values: values})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m historyModel) showSessionForm(sess *store.Session) (historyModel, tea.Cmd) {
	if sess != nil {
		*m.formTask = sess.TaskName
		*m.formTag = sess.Tag
		*m.formMinutes = strconv.FormatInt(sess.Duration/60, 10)
		*m.formEnd = sess.When().Format("2006-01-02 15:04")
		*m.formNote = sess.Note
		m.formType = "edit"
		m.editingID = sess.ID
		m.editingGoal = sess.GoalDuration
	} else {
		*m.formTask = ""
		*m.formTag = ""
		if len(m.tags) > 0 {
			*m.formTag = m.tags[0]
		}
		*m.formMinutes = "25"
		*m.formEnd = time.Now().Format("2006-01-02 15:04")
		*m.formNote = ""
		m.formType = "add"
	}

	tagOptions := make([]huh.Option[string], len(m.tags))
	for i, t := range m.tags {
		tagOptions[i] = huh.NewOption(t, t)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTask).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task is required")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Tag").Options(tagOptions...).Value(m.formTag),
			huh.NewInput().Title("Minutes").Value(m.formMinutes).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a whole number of minutes")
					}
					return nil
				}),
			huh.NewInput().Title("Ended (YYYY-MM-DD HH:MM)").Value(m.formEnd).
				Validate(func(s string) error {
					end, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(s), time.Local)
					if err != nil {
						return fmt.Errorf("use YYYY-MM-DD HH:MM")
					}
					if end.After(time.Now()) {
						return fmt.Errorf("cannot log the future")
					}
					return nil
				}),
			huh.NewText().Title("Note").Value(m.formNote).Lines(2),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m historyModel) showRangeForm() (historyModel, tea.Cmd) {
	*m.formFrom = m.customStart.Format("2006-01-02")
	*m.formTo = m.customEnd.Format("2006-01-02")
	m.formType = "range"

	dateField := func(title string, value *string) *huh.Input {
		return huh.NewInput().Title(title).Value(value).
			Validate(func(s string) error {
				if _, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local); err != nil {
					return fmt.Errorf("use YYYY-MM-DD")
				}
				return nil
			})
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			dateField("From", m.formFrom),
			dateField("To", m.formTo),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			if m.formType == "range" {
				m.windowIdx = 0
			}
			m.buildChart()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "add", "edit":
			minutes, _ := strconv.Atoi(strings.TrimSpace(*m.formMinutes))
			end, _ := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(*m.formEnd), time.Local)
			sess := store.Session{
				TaskName: strings.TrimSpace(*m.formTask),
				Tag:      *m.formTag,
				Duration: int64(minutes) * 60,
				EndTime:  end,
				Note:     *m.formNote,
			}
			sess.StartTime = end.Add(-time.Duration(sess.Duration) * time.Second)
			if m.formType == "edit" {
				sess.ID = m.editingID
				sess.GoalDuration = m.editingGoal
			}
			if _, err := m.store.SaveSession(sess); err != nil {
				return m, status(fmt.Sprintf("Error: %v", err))
			}
			return m, tea.Batch(m.refresh(), status("Session saved"))
		case "range":
			m.customStart, _ = time.ParseInLocation("2006-01-02", strings.TrimSpace(*m.formFrom), time.Local)
			m.customEnd, _ = time.ParseInLocation("2006-01-02", strings.TrimSpace(*m.formTo), time.Local)
			if m.customEnd.Before(m.customStart) {
				m.customStart, m.customEnd = m.customEnd, m.customStart
			}
			m.cursor = 0
			m.buildChart()
			return m, nil
		}
	}

	return m, cmd
}

func (m historyModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render(map[string]string{
			"add":   "Log Session",
			"edit":  "Edit Session",
			"range": "Custom Range",
		}[m.formType])
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if m.showReport {
		return m.renderReport(w)
	}

	filtered := m.filtered()
	win := m.window()

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		m.renderWindowTabs(), "  ",
		mutedStyle.Render(fmt.Sprintf("%s — %s",
			win.Start.Format("Jan 02"), win.End.Format("Jan 02, 2006"))),
	)

	var middle string
	if m.mode == historyChart {
		middle = m.chart.View()
	} else {
		middle = m.renderTagBreakdown(filtered)
	}

	list := m.renderSessionList(filtered)
	nav := mutedStyle.Render("  ←/→: range  w: chart/tags  n: log  e: edit  d: delete  r: report  E: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", middle, "", list, "", nav),
	)
}

func (m historyModel) renderWindowTabs() string {
	var tabs []string
	for i, kind := range historyWindows {
		if i == m.windowIdx {
			tabs = append(tabs, activeTabStyle.Render(kind.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(kind.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m historyModel) renderTagBreakdown(filtered []store.Session) string {
	summary := report.Summarize(filtered, m.window())
	if len(summary.PerTag) == 0 {
		return mutedStyle.Render("  No sessions in this range")
	}

	var rows []string
	for _, tt := range summary.PerTag {
		dot := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tagColor(m.colors, tt.Tag))).
			Render("●")
		pct := 0.0
		if summary.TotalSeconds > 0 {
			pct = float64(tt.Seconds) * 100 / float64(summary.TotalSeconds)
		}
		rows = append(rows, fmt.Sprintf("  %s %-16s %10s %5.1f%%",
			dot, tt.Tag, formatShort(tt.Seconds), pct))
	}
	return strings.Join(rows, "\n")
}

func (m historyModel) renderSessionList(filtered []store.Session) string {
	if len(filtered) == 0 {
		return mutedStyle.Render("  No sessions. Press n to log one.")
	}

	var rows []string
	header := mutedStyle.Render(fmt.Sprintf("  %-14s %-3s %-28s %10s", "When", "", "Task", "Duration"))
	rows = append(rows, header)

	for i, sess := range filtered {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tagColor(m.colors, sess.Tag))).
			Render("●")
		dur := formatShort(sess.Duration)
		if sess.IsCompletionLog() {
			dur = successStyle.Render("✓ done")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s %10s",
			cursor,
			mutedStyle.Render(sess.When().Format("Jan 02 15:04")),
			dot,
			style.Render(fmt.Sprintf("%-28s", sess.TaskName)),
			dur,
		))
		if i == m.cursor && sess.Note != "" {
			rows = append(rows, mutedStyle.Render("       "+sess.Note))
		}
	}
	return strings.Join(rows, "\n")
}

func (m historyModel) renderReport(w int) string {
	filtered := m.filtered()
	summary := report.Summarize(filtered, m.window())

	top := summary.TopTag
	if top == "" {
		top = "—"
	}

	rows := []string{
		titleStyle.Render("Report — " + historyWindows[m.windowIdx].String()),
		"",
		fmt.Sprintf("  Total focus   %s", highlightStyle.Render(formatShort(summary.TotalSeconds))),
		fmt.Sprintf("  Days in range %s", highlightStyle.Render(strconv.Itoa(summary.RangeDays))),
		fmt.Sprintf("  Daily average %s", highlightStyle.Render(formatShort(summary.AveragePerDay))),
		fmt.Sprintf("  Top tag       %s", highlightStyle.Render(top)),
		"",
	}
	rows = append(rows, m.renderTagBreakdown(filtered))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  any key: close"))

	return overlayStyle.Width(w - 8).Render(strings.Join(rows, "\n"))
}
