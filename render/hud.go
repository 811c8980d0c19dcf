package render

import (
	"fmt"

	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/sim"
	"github.com/lixenwraith/starfall/status"
)

const helpLine = "space pause  f focus  +/- speed  [ ] stars  d s m set  r reset  q quit"

// HUD carries per-frame overlay inputs not held by the simulation
type HUD struct {
	Prompt *control.Prompt
	Notice string // transient message such as a config reload
}

// StatusLine formats the metrics row
func StatusLine(s *sim.State) string {
	reg := s.Status()
	line := fmt.Sprintf("speed %.2fx  stars %d  meteors %d/%d  spawn %.2fs  t %.1fs  fps %.0f",
		s.Controls.Speed,
		reg.Ints.Get(status.FieldPoints).Load(),
		reg.Ints.Get(status.MeteorLive).Load(),
		reg.Ints.Get(status.MeteorSpawned).Load(),
		s.Controls.SpawnDelay,
		reg.Floats.Get(status.ClockEffective).Get(),
		reg.Floats.Get(status.FrameFPS).Get(),
	)
	if s.Controls.Focused {
		line += "  FOCUS"
	}
	return line
}

func (r *Renderer) drawHUD(s *sim.State, hud HUD) {
	rows := r.buf.rows
	if rows < parameter.HUDRows {
		return
	}
	top := rows - parameter.HUDRows
	r.buf.FillRow(top, RgbHUDBg)
	r.buf.FillRow(top+1, RgbHUDBg)

	col := 1
	if s.Controls.Paused {
		col = r.buf.WriteString(col, top, "PAUSED", RgbHUDAccent, RgbHUDBg) + 2
	}
	r.buf.WriteString(col, top, StatusLine(s), RgbHUD, RgbHUDBg)

	p := hud.Prompt
	switch {
	case p != nil && p.Active():
		col = r.buf.WriteString(1, top+1, p.Label()+"> "+p.Text(), RgbHUDAccent, RgbHUDBg)
		r.buf.SetText(col, top+1, '_', RgbHUDAccent, RgbHUDBg)
		if msg := p.Err(); msg != "" {
			r.buf.WriteString(col+2, top+1, msg, RgbHUDError, RgbHUDBg)
		}
	case hud.Notice != "":
		r.buf.WriteString(1, top+1, hud.Notice, RgbHUDAccent, RgbHUDBg)
	default:
		r.buf.WriteString(1, top+1, helpLine, RgbHUD, RgbHUDBg)
	}
}
