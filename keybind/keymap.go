package keybind

import (
	"strings"

	"github.com/ayn2op/lazybar/config"
)

// ScrollKeyMap holds the keybinds of a scrollable view.
type ScrollKeyMap struct {
	Up        Keybind
	Down      Keybind
	JumpStart Keybind
	JumpEnd   Keybind
	PageUp    Keybind
	PageDown  Keybind
	Help      Keybind
	Quit      Keybind
}

// DefaultScrollKeyMap returns the key map of the default configuration.
func DefaultScrollKeyMap() ScrollKeyMap {
	return NewScrollKeyMap(config.DefaultConfig().Keybinds)
}

// NewScrollKeyMap builds a key map from configured keys. The help text shows
// the first key of each binding.
func NewScrollKeyMap(cfg config.KeybindConfig) ScrollKeyMap {
	return ScrollKeyMap{
		Up:        bind([]string{"up", "k"}, "up"),
		Down:      bind([]string{"down", "j"}, "down"),
		JumpStart: bind(cfg.JumpStart, "jump to start"),
		JumpEnd:   bind(cfg.JumpEnd, "jump to end"),
		PageUp:    bind(cfg.PageUp, "page up"),
		PageDown:  bind(cfg.PageDown, "page down"),
		Help:      bind(cfg.Help, "toggle help"),
		Quit:      bind(cfg.Quit, "quit"),
	}
}

func bind(keys []string, desc string) Keybind {
	k := NewKeybind(WithKeys(keys...))
	label := ""
	if len(k.keys) > 0 {
		label = k.keys[0]
	}
	k.SetHelp(label, desc)
	return k
}

// ShortHelp returns the keybinds shown on a single line.
func (m ScrollKeyMap) ShortHelp() []Keybind {
	return []Keybind{m.JumpStart, m.JumpEnd, m.Help, m.Quit}
}

// FullHelp returns all keybinds, navigation first.
func (m ScrollKeyMap) FullHelp() [][]Keybind {
	return [][]Keybind{
		{m.Up, m.Down, m.PageUp, m.PageDown},
		{m.JumpStart, m.JumpEnd},
		{m.Help, m.Quit},
	}
}

// String lists every enabled binding, one per line.
func (m ScrollKeyMap) String() string {
	var b strings.Builder
	for _, group := range m.FullHelp() {
		for _, k := range group {
			if !k.Enabled() {
				continue
			}
			b.WriteString(strings.Join(k.Keys(), "/"))
			b.WriteString("\t")
			b.WriteString(k.Help().Desc)
			b.WriteString("\n")
		}
	}
	return b.String()
}
