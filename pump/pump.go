// Package pump drives a CHIP-8 interpreter at a fixed cadence, feeding it
// keys from a display and presenting its frames and sounds there.
package pump

import (
	"time"

	"github.com/nf/chip8term/chip8"
	"github.com/nf/chip8term/termio"
)

// DefaultInterval is the pause taken before each tick.
const DefaultInterval = time.Millisecond

// Interpreter is the machine being driven.
type Interpreter interface {
	// SetKey marks keypad key k (0x0-0xF) as pressed.
	SetKey(k byte)
	// KeyWaiting reports whether the machine is blocked waiting for a key.
	KeyWaiting() bool
	SoundTimer() byte
	ResetSound()
	// Step executes one instruction.
	Step() error
	Dirty() bool
	ClearDirty()
	// Framebuffer returns a view of the screen that the caller must not
	// modify.
	Framebuffer() *chip8.Framebuffer
}

// Display is where the machine's input comes from and its output goes.
// *termio.Driver implements Display.
type Display interface {
	EnterDisplayMode()
	RestoreDisplayMode()
	PollKey() (termio.KeyCode, error)
	Render(fb *chip8.Framebuffer)
	EmitSound() error
}

// Pump runs the interpreter loop.
type Pump struct {
	// Interval is the pause before each tick.
	Interval time.Duration

	// Swap, if non-nil, delivers interpreters that replace the current one
	// between ticks.
	Swap <-chan Interpreter

	m Interpreter
	d Display
}

func New(m Interpreter, d Display) *Pump {
	return &Pump{
		Interval: DefaultInterval,
		m:        m,
		d:        d,
	}
}

// Interpreter returns the interpreter currently being driven.
func (p *Pump) Interpreter() Interpreter { return p.m }

// Run enters display mode and runs the interpreter until Escape is pressed
// or an error occurs. The display is restored before Run returns, however
// it returns.
func (p *Pump) Run() error {
	p.d.EnterDisplayMode()
	defer p.d.RestoreDisplayMode()
	for {
		exit, err := p.tick()
		if exit || err != nil {
			return err
		}
	}
}

func (p *Pump) tick() (exit bool, err error) {
	time.Sleep(p.Interval)

	select {
	case m := <-p.Swap:
		p.m = m
		p.d.Render(m.Framebuffer())
	default:
	}

	k, err := p.d.PollKey()
	if err != nil {
		return false, err
	}
	switch {
	case k.Keypad():
		p.m.SetKey(byte(k))
	case k == termio.Exit:
		return true, nil
	}

	if p.m.KeyWaiting() {
		return false, nil
	}

	if p.m.SoundTimer() > 0 {
		if err := p.d.EmitSound(); err != nil {
			return false, err
		}
		p.m.ResetSound()
	}

	if err := p.m.Step(); err != nil {
		return false, err
	}

	if p.m.Dirty() {
		p.d.Render(p.m.Framebuffer())
		p.m.ClearDirty()
	}
	return false, nil
}
