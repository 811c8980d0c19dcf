package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/parameter"
)

// inputHandler maps keys onto control changes, routing typed input to the prompt while it is open
type inputHandler struct {
	prompt control.Prompt
}

// handleKey returns the changes a key press produces and whether it requests exit
func (h *inputHandler) handleKey(ev *tcell.EventKey, cur control.Controls) ([]control.Change, bool) {
	if ev.Key() == tcell.KeyCtrlC {
		return nil, true
	}
	if h.prompt.Active() {
		return h.handlePrompt(ev), false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return nil, true
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return nil, true
	case ' ':
		return []control.Change{{Kind: control.TogglePause}}, false
	case 'f', 'F':
		return []control.Change{{Kind: control.ToggleFocus}}, false
	case '+', '=':
		return []control.Change{control.Speed(cur.Speed + parameter.SpeedStep)}, false
	case '-', '_':
		return []control.Change{control.Speed(cur.Speed - parameter.SpeedStep)}, false
	case ']':
		return []control.Change{control.Density(cur.Density + parameter.FieldDensityStep)}, false
	case '[':
		return []control.Change{control.Density(cur.Density - parameter.FieldDensityStep)}, false
	case 'r', 'R':
		return []control.Change{{Kind: control.ResetMeteors}}, false
	case 'd', 'D':
		h.prompt.Open(control.SetDensity)
	case 's', 'S':
		h.prompt.Open(control.SetSpeed)
	case 'm', 'M':
		h.prompt.Open(control.SetSpawnDelay)
	}
	return nil, false
}

func (h *inputHandler) handlePrompt(ev *tcell.EventKey) []control.Change {
	switch ev.Key() {
	case tcell.KeyEnter:
		if ch, ok := h.prompt.Submit(); ok {
			return []control.Change{ch}
		}
	case tcell.KeyEscape:
		h.prompt.Cancel()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.prompt.Backspace()
	case tcell.KeyRune:
		h.prompt.Type(ev.Rune())
	}
	return nil
}
