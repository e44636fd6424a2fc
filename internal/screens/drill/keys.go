package drill

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Pick   []key.Binding
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Next   key.Binding
	Reset  key.Binding
	Stats  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pick: []key.Binding{
			key.NewBinding(key.WithKeys("1", "a", "A"), key.WithHelp("1", "option A")),
			key.NewBinding(key.WithKeys("2", "b", "B"), key.WithHelp("2", "option B")),
			key.NewBinding(key.WithKeys("3", "c", "C"), key.WithHelp("3", "option C")),
		},
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "answer")),
		Next:   key.NewBinding(key.WithKeys("enter", "space", "n"), key.WithHelp("Enter", "next")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new session")),
		Stats:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
	}
}
