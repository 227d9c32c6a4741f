package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focuslog/internal/store"
)

// actionRow is one line of the task list: the joined task plus whether it
// is currently snoozed (only present when snoozed rows are shown).
type actionRow struct {
	store.ActionItem
	snoozed bool
}

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	items    []actionRow
	projects []store.Project
	tags     []string
	colors   map[string]string

	cursor        int
	projectCursor int
	showSnoozed   bool
	managing      bool // project manager sub-view

	formActive bool
	form       *huh.Form
	formType   string // "task", "edit_task", "project", "edit_project"

	formTitle    *string
	formTag      *string
	formPriority *int
	formProject  *string
	formDeadline *string
	formNote     *string

	editingID string
}

func newTasksModel(s *store.Store) tasksModel {
	title, tag, project, deadline, note := "", "", "", "", ""
	priority := 3
	return tasksModel{
		store:        s,
		formTitle:    &title,
		formTag:      &tag,
		formPriority: &priority,
		formProject:  &project,
		formDeadline: &deadline,
		formNote:     &note,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) refresh() tea.Cmd {
	showSnoozed := m.showSnoozed
	return func() tea.Msg {
		now := time.Now()
		var rows []actionRow
		for _, item := range m.store.ActionItems(now) {
			rows = append(rows, actionRow{ActionItem: item})
		}
		if showSnoozed {
			rows = append(rows, snoozedRows(m.store, now)...)
		}
		return tasksDataMsg{
			items:    rows,
			projects: m.store.Projects(),
			tags:     m.store.Tags(),
			colors:   m.store.Prefs().TagColors,
		}
	}
}

// snoozedRows joins the deferred, incomplete tasks the action list hides,
// ordered the same way as the visible ones.
func snoozedRows(s *store.Store, now time.Time) []actionRow {
	byID := make(map[string]string)
	for _, p := range s.Projects() {
		byID[p.ID] = p.Title
	}

	var rows []actionRow
	for _, t := range s.Tasks() {
		if t.Completed || !store.Deferred(t, now) {
			continue
		}
		rows = append(rows, actionRow{
			ActionItem: store.ActionItem{Task: t, ProjectName: byID[t.ProjectID]},
			snoozed:    true,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Priority != rows[j].Priority {
			return rows[i].Priority > rows[j].Priority
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.items = msg.items
		m.projects = msg.projects
		m.tags = msg.tags
		m.colors = msg.colors
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		if m.projectCursor >= len(m.projects) {
			m.projectCursor = max(0, len(m.projects)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.managing {
			return m.updateProjectManager(msg)
		}
		return m.updateTaskList(msg)
	}
	return m, nil
}

func (m tasksModel) updateTaskList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.showTaskForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(m.items) > 0 {
			task := m.items[m.cursor].Task
			return m.showTaskForm(&task)
		}
	case key.Matches(msg, keys.Delete):
		if len(m.items) > 0 {
			m.store.DeleteTask(m.items[m.cursor].ID)
			return m, tea.Batch(m.refresh(), status("Task deleted"))
		}
	case key.Matches(msg, keys.Complete):
		if len(m.items) > 0 {
			return m.completeTask(m.items[m.cursor])
		}
	case key.Matches(msg, keys.Defer):
		if len(m.items) > 0 {
			task := store.ToggleDefer(m.items[m.cursor].Task, time.Now())
			if _, err := m.store.SaveTask(task); err != nil {
				return m, status(fmt.Sprintf("Error: %v", err))
			}
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Snoozed):
		m.showSnoozed = !m.showSnoozed
		return m, m.refresh()
	case key.Matches(msg, keys.Projects):
		m.managing = true
		m.projectCursor = 0
		return m, nil
	case key.Matches(msg, keys.Focus):
		if len(m.items) > 0 {
			task := m.items[m.cursor].Task
			return m, func() tea.Msg { return focusTaskMsg{task: task} }
		}
	}
	return m, nil
}

// completeTask marks the task done and records a zero-duration session so
// the completion shows up in today's history.
func (m tasksModel) completeTask(row actionRow) (tasksModel, tea.Cmd) {
	task := row.Task
	task.Completed = true
	if _, err := m.store.SaveTask(task); err != nil {
		return m, status(fmt.Sprintf("Error: %v", err))
	}
	m.store.SaveSession(store.Session{
		TaskName: task.Title,
		Tag:      task.Tag,
	})
	return m, tea.Batch(m.refresh(), status("Completed "+task.Title))
}

func (m tasksModel) updateProjectManager(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.managing = false
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.projectCursor < len(m.projects)-1 {
			m.projectCursor++
		}
	case key.Matches(msg, keys.New):
		return m.showProjectForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(m.projects) > 0 {
			proj := m.projects[m.projectCursor]
			return m.showProjectForm(&proj)
		}
	case key.Matches(msg, keys.Delete):
		if len(m.projects) > 0 {
			proj := m.projects[m.projectCursor]
			m.store.DeleteProject(proj.ID)
			return m, tea.Batch(m.refresh(), status("Deleted project "+proj.Title))
		}
	}
	return m, nil
}

func (m tasksModel) showTaskForm(task *store.Task) (tasksModel, tea.Cmd) {
	if task != nil {
		*m.formTitle = task.Title
		*m.formTag = task.Tag
		*m.formPriority = task.Priority
		*m.formProject = task.ProjectID
		*m.formDeadline = task.Deadline
		*m.formNote = task.Note
		m.formType = "edit_task"
		m.editingID = task.ID
	} else {
		*m.formTitle = ""
		*m.formTag = ""
		if len(m.tags) > 0 {
			*m.formTag = m.tags[0]
		}
		*m.formPriority = 3
		*m.formProject = ""
		*m.formDeadline = ""
		*m.formNote = ""
		m.formType = "task"
	}

	tagOptions := make([]huh.Option[string], len(m.tags))
	for i, t := range m.tags {
		tagOptions[i] = huh.NewOption(t, t)
	}

	priorityOptions := []huh.Option[int]{
		huh.NewOption("P5: critical", 5),
		huh.NewOption("P4: high", 4),
		huh.NewOption("P3: normal", 3),
		huh.NewOption("P2: low", 2),
		huh.NewOption("P1: someday", 1),
	}

	projectOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, p := range m.projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Title, p.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Tag").Options(tagOptions...).Value(m.formTag),
			huh.NewSelect[int]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(m.formProject),
			huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(m.formDeadline).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewText().Title("Note").Value(m.formNote).Lines(3),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showProjectForm(proj *store.Project) (tasksModel, tea.Cmd) {
	if proj != nil {
		*m.formTitle = proj.Title
		*m.formNote = proj.Note
		m.formType = "edit_project"
		m.editingID = proj.ID
	} else {
		*m.formTitle = ""
		*m.formNote = ""
		m.formType = "project"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewText().Title("Note").Value(m.formNote).Lines(3),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		switch m.formType {
		case "task", "edit_task":
			task := store.Task{
				Title:     strings.TrimSpace(*m.formTitle),
				Tag:       *m.formTag,
				Priority:  *m.formPriority,
				ProjectID: *m.formProject,
				Deadline:  *m.formDeadline,
				Note:      *m.formNote,
			}
			if m.formType == "edit_task" {
				prev := m.items[m.cursor].Task
				task.ID = m.editingID
				task.CreatedAt = prev.CreatedAt
				task.Completed = prev.Completed
				task.DeferredUntil = prev.DeferredUntil
			}
			if _, err := m.store.SaveTask(task); err != nil {
				return m, status(fmt.Sprintf("Error: %v", err))
			}
			return m, m.refresh()
		case "project", "edit_project":
			proj := store.Project{
				Title: strings.TrimSpace(*m.formTitle),
				Note:  *m.formNote,
			}
			if m.formType == "edit_project" {
				proj.ID = m.editingID
			}
			if _, err := m.store.SaveProject(proj); err != nil {
				return m, status(fmt.Sprintf("Error: %v", err))
			}
			return m, m.refresh()
		}
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render(map[string]string{
			"task":         "New Task",
			"edit_task":    "Edit Task",
			"project":      "New Project",
			"edit_project": "Edit Project",
		}[m.formType])
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if m.managing {
		return m.renderProjectManager(w)
	}
	return m.renderTaskList(w)
}

func (m tasksModel) renderTaskList(w int) string {
	title := titleStyle.Render("Tasks")
	if m.showSnoozed {
		title = lipgloss.JoinHorizontal(lipgloss.Bottom, title, mutedStyle.Render("  (snoozed shown)"))
	}

	if len(m.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing to do. Press n to add a task."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	today := time.Now()
	for i, item := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		prio := mutedStyle.Render(fmt.Sprintf("P%d", item.Priority))
		tagDot := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tagColor(m.colors, item.Tag))).
			Render("●")

		line := style.Render(fmt.Sprintf("%s%s", cursor, item.Title))
		line = fmt.Sprintf("%s %s %s", prio, tagDot, line)

		if item.ProjectName != "" {
			line += highlightStyle.Render(" [" + item.ProjectName + "]")
		}
		if badge := deadlineBadge(item.Deadline, today); badge != "" {
			line += " " + badge
		}
		if item.snoozed {
			line += mutedStyle.Render(" zzz until " + item.DeferredUntil.Format("Jan 02"))
		}
		rows = append(rows, line)

		if i == m.cursor && item.Note != "" {
			rows = append(rows, mutedStyle.Render("       "+item.Note))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  c: complete  z: snooze  d: delete  enter: focus  v: snoozed  p: projects"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// deadlineBadge colors a deadline by urgency: overdue, due within two
// days, or just informational.
func deadlineBadge(deadline string, now time.Time) string {
	if deadline == "" {
		return ""
	}
	due, err := time.Parse("2006-01-02", deadline)
	if err != nil {
		return ""
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(due.Sub(today).Hours() / 24)
	label := "due " + due.Format("Jan 02")
	switch {
	case days < 0:
		return errorStyle.Render("overdue " + due.Format("Jan 02"))
	case days <= 2:
		return warningStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}

func (m tasksModel) renderProjectManager(w int) string {
	title := titleStyle.Render("Projects")

	if len(m.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, proj := range m.projects {
		cursor := "  "
		style := normalItemStyle
		if i == m.projectCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(cursor + proj.Title)
		if proj.Note != "" {
			line += mutedStyle.Render("  " + proj.Note)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete (tasks are kept)  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
