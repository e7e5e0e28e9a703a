package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

func keyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		switch {
		case mods&tcell.ModCtrl != 0:
			return "ctrl+" + strings.ToLower(string(r))
		case mods&tcell.ModAlt != 0:
			return "alt+" + strings.ToLower(string(r))
		case r == ' ':
			return "space"
		}
		return string(r)
	}
	// Named keys first: KeyBackspace, KeyTab and KeyEnter share codes with
	// ctrl+h, ctrl+i and ctrl+m.
	name := ""
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEscape:
		name = "esc"
	case tcell.KeyDelete:
		name = "del"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	}
	if name == "" {
		return ctrlKeyName(ev.Key())
	}
	if mods&tcell.ModShift != 0 {
		name = "shift+" + name
	}
	if mods&tcell.ModAlt != 0 {
		name = "alt+" + name
	}
	if mods&tcell.ModCtrl != 0 && name != "backspace" && name != "enter" && name != "tab" && name != "esc" {
		name = "ctrl+" + name
	}
	return name
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+key-tcell.KeyCtrlA))
	}
	return ""
}
