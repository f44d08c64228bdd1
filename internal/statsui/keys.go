package statsui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev        key.Binding
	Next        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	WiderCurve  key.Binding
	NarrowCurve key.Binding
	Filter      key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Prev:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
	Next:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
	Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	WiderCurve:  key.NewBinding(key.WithKeys("="), key.WithHelp("=", "wider window")),
	NarrowCurve: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower window")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filters")),
	Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.WiderCurve, k.NarrowCurve, k.Filter, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Top, k.Bottom}}
}

var filterKeys = []key.Binding{
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/shift+tab", "field")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
