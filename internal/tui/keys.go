package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding

	// result screen only
	Flip  key.Binding
	Copy  key.Binding
	Save  key.Binding
	Again key.Binding
	Close key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Flip:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "other direction")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save direction")),
		Again:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new message")),
		Close:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// stepKeys adapts the bindings relevant to one step to help.KeyMap.
type stepKeys []key.Binding

func (k stepKeys) ShortHelp() []key.Binding  { return k }
func (k stepKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

func (k keyMap) forStep(s step) stepKeys {
	if s == stepResult {
		return stepKeys{k.Flip, k.Copy, k.Save, k.Again, k.Back, k.Close}
	}
	return stepKeys{k.Submit, k.Back, k.Quit}
}
