package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focuslog/internal/store"
	"github.com/sadopc/focuslog/internal/timer"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	prefs store.Prefs
	tags  []string

	formActive bool
	form       *huh.Form

	formGoal   *string
	formSound  *string
	formColors []*string // parallel to tags
}

func newSettingsModel(s *store.Store) settingsModel {
	goal, sound := "", ""
	return settingsModel{
		store:     s,
		formGoal:  &goal,
		formSound: &sound,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			prefs: m.store.Prefs(),
			tags:  m.store.Tags(),
		}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.prefs = msg.prefs
		m.tags = msg.tags
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	goal := m.prefs.DefaultGoalMinutes
	if goal <= 0 {
		goal = timer.DefaultGoalMinutes
	}
	*m.formGoal = strconv.Itoa(goal)

	*m.formSound = m.prefs.AlarmSound
	if *m.formSound == "" {
		*m.formSound = alarmSounds[0]
	}

	soundOptions := make([]huh.Option[string], len(alarmSounds))
	for i, s := range alarmSounds {
		soundOptions[i] = huh.NewOption(s, s)
	}

	colorOptions := make([]huh.Option[string], len(tagPalette))
	for i, c := range tagPalette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("● " + c)
		colorOptions[i] = huh.NewOption(swatch, c)
	}

	fields := []huh.Field{
		huh.NewInput().Title("Default goal (minutes)").Value(m.formGoal).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 {
					return fmt.Errorf("enter a positive number of minutes")
				}
				return nil
			}),
		huh.NewSelect[string]().Title("Alarm sound").Options(soundOptions...).Value(m.formSound),
	}

	m.formColors = make([]*string, len(m.tags))
	for i, tag := range m.tags {
		color := tagColor(m.prefs.TagColors, tag)
		m.formColors[i] = &color
		fields = append(fields,
			huh.NewSelect[string]().Title("Color: "+tag).Options(colorOptions...).Value(m.formColors[i]),
		)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false

		goal, _ := strconv.Atoi(strings.TrimSpace(*m.formGoal))
		colors := make(map[string]string, len(m.tags))
		for tag, c := range m.prefs.TagColors {
			colors[tag] = c
		}
		for i, tag := range m.tags {
			colors[tag] = *m.formColors[i]
		}

		patch := store.PrefsPatch{
			DefaultGoalMinutes: &goal,
			AlarmSound:         m.formSound,
			TagColors:          colors,
		}
		prefs, err := m.store.SavePrefs(patch)
		if err != nil {
			return m, status(fmt.Sprintf("Error: %v", err))
		}
		m.prefs = prefs
		return m, status("Settings saved")
	}

	return m, cmd
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Settings"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	goal := m.prefs.DefaultGoalMinutes
	if goal <= 0 {
		goal = timer.DefaultGoalMinutes
	}
	sound := m.prefs.AlarmSound
	if sound == "" {
		sound = alarmSounds[0]
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  Default goal  %s", highlightStyle.Render(fmt.Sprintf("%d min", goal))),
		fmt.Sprintf("  Alarm sound   %s", highlightStyle.Render(sound)),
		"",
		"  Tag colors",
	}
	for _, tag := range m.tags {
		dot := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tagColor(m.prefs.TagColors, tag))).
			Render("●")
		rows = append(rows, fmt.Sprintf("    %s %s", dot, tag))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
