package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Tab        key.Binding
	TurnsUp    key.Binding
	TurnsDown  key.Binding
	Stronger   key.Binding
	Weaker     key.Binding
	Magnet     key.Binding
	Material   key.Binding
	Sound      key.Binding
	Particles  key.Binding
	FieldLines key.Binding
	SlowMotion key.Binding
	Game       key.Binding
	Through    key.Binding
	Fast       key.Binding
	Approach   key.Binding
	Export     key.Binding
	Reset      key.Binding
	Nudge      key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev tab")),
		Tab:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "tab")),
		TurnsUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more turns")),
		TurnsDown:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer turns")),
		Stronger:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "stronger")),
		Weaker:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "weaker")),
		Magnet:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "magnet")),
		Material:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "material")),
		Sound:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Particles:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "electrons")),
		FieldLines: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "field lines")),
		SlowMotion: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "slow motion")),
		Game:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "game")),
		Through:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "demo: through")),
		Fast:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "demo: fast")),
		Approach:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "demo: approach")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Nudge:      key.NewBinding(key.WithKeys("h", "j", "k", "l"), key.WithHelp("hjkl", "nudge magnet")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Nudge, k.Game, k.Through, k.Export, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab, k.Nudge},
		{k.TurnsUp, k.TurnsDown, k.Stronger, k.Weaker},
		{k.Magnet, k.Material, k.Sound, k.SlowMotion},
		{k.Particles, k.FieldLines, k.Game, k.Reset},
		{k.Through, k.Fast, k.Approach, k.Export},
		{k.Help, k.Quit},
	}
}
