package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Tab4     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Toggle   key.Binding
	Stop     key.Binding
	Rename   key.Binding
	CycleTag key.Binding
	AddTag   key.Binding
	DropTag  key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Defer    key.Binding
	Snoozed  key.Binding
	Projects key.Binding
	Focus    key.Binding
	Report   key.Binding
	Export   key.Binding
	Switch   key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab1:     key.NewBinding(key.WithKeys("1")),
	Tab2:     key.NewBinding(key.WithKeys("2")),
	Tab3:     key.NewBinding(key.WithKeys("3")),
	Tab4:     key.NewBinding(key.WithKeys("4")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Toggle:   key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/pause")),
	Stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop & save")),
	Rename:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "task name")),
	CycleTag: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle tag")),
	AddTag:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tag")),
	DropTag:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete tag")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
	Defer:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "snooze")),
	Snoozed:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "show snoozed")),
	Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
	Focus:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
	Report:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
	Export:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
	Switch:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "chart/tags")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Quit},
		{k.Toggle, k.Stop, k.CycleTag},
		{k.New, k.Edit, k.Delete},
		{k.Complete, k.Defer, k.Report},
	}
}
