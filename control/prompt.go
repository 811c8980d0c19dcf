package control

import (
	"strings"

	"github.com/lixenwraith/starfall/parameter"
)

// Prompt is a one-line numeric entry for a single control
type Prompt struct {
	Target Kind
	active bool
	buf    []rune
	err    string
}

// Label returns the prompt caption for the target control
func (p *Prompt) Label() string {
	switch p.Target {
	case SetDensity:
		return "density"
	case SetSpeed:
		return "speed"
	case SetSpawnDelay:
		return "spawn delay"
	default:
		return ""
	}
}

// Open starts entry for target
func (p *Prompt) Open(target Kind) {
	p.Target = target
	p.active = true
	p.buf = p.buf[:0]
	p.err = ""
}

// Active reports whether the prompt is taking input
func (p *Prompt) Active() bool {
	return p.active
}

// Text returns the typed input
func (p *Prompt) Text() string {
	return string(p.buf)
}

// Err returns the last submit error message
func (p *Prompt) Err() string {
	return p.err
}

// Type appends r, input beyond PromptMaxLen is dropped
func (p *Prompt) Type(r rune) {
	if !p.active || len(p.buf) >= parameter.PromptMaxLen {
		return
	}
	p.buf = append(p.buf, r)
}

// Backspace removes the last rune
func (p *Prompt) Backspace() {
	if len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
	}
}

// Cancel closes the prompt without a change
func (p *Prompt) Cancel() {
	p.active = false
	p.buf = p.buf[:0]
}

// Submit parses the input into a change
// On error the prompt stays open with the message set so the user can correct it
func (p *Prompt) Submit() (Change, bool) {
	if !p.active {
		return Change{}, false
	}
	text := strings.TrimSpace(string(p.buf))

	var ch Change
	var err error
	switch p.Target {
	case SetDensity:
		var n int
		n, err = ParseDensity(text)
		ch = Density(n)
	case SetSpeed:
		var v float64
		v, err = ParseSpeed(text)
		ch = Speed(v)
	case SetSpawnDelay:
		var v float64
		v, err = ParseSpawnDelay(text)
		ch = SpawnDelay(v)
	default:
		p.Cancel()
		return Change{}, false
	}

	if err != nil {
		p.err = err.Error()
		return Change{}, false
	}
	p.err = ""
	p.Cancel()
	return ch, true
}
