// Package termio drives a character terminal as the display, keypad and
// speaker of a CHIP-8 machine.
package termio

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/chip8term/chip8"
)

var (
	onStyle  = tcell.StyleDefault.Background(tcell.ColorWhite)
	offStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
)

// Driver owns the terminal's presentation state.
// It holds no state between calls other than the screen itself.
type Driver struct {
	screen tcell.Screen
}

// Open initializes the controlling terminal and returns a Driver for it.
// The caller must call Close to return the terminal to its original mode.
func Open() (*Driver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return NewDriver(s), nil
}

// NewDriver returns a Driver for an initialized screen.
func NewDriver(s tcell.Screen) *Driver {
	return &Driver{screen: s}
}

// Close finalizes the screen. The Driver must not be used afterwards.
func (d *Driver) Close() {
	d.screen.Fini()
}

// EnterDisplayMode clears the screen and hides the cursor.
func (d *Driver) EnterDisplayMode() {
	d.screen.Clear()
	d.screen.HideCursor()
	d.screen.Show()
}

// RestoreDisplayMode clears the screen and shows the cursor at the origin.
func (d *Driver) RestoreDisplayMode() {
	d.screen.Clear()
	d.screen.ShowCursor(0, 0)
	d.screen.Show()
}

// PollKey returns the next pending key, or NoKey if there is none.
// It never blocks. Events other than key presses are consumed and
// reported as NoKey. An error is returned only if the terminal could not
// be read.
func (d *Driver) PollKey() (KeyCode, error) {
	if !d.screen.HasPendingEvent() {
		return NoKey, nil
	}
	switch ev := d.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return DecodeKey(ev), nil
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventError:
		return NoKey, fmt.Errorf("reading terminal: %w", ev)
	}
	return NoKey, nil
}

// Render draws fb, one cell per pixel, and flushes it to the terminal in a
// single write. It does not modify fb.
func (d *Driver) Render(fb *chip8.Framebuffer) {
	for y := range fb {
		for x, on := range fb[y] {
			st := offStyle
			if on {
				st = onStyle
			}
			d.screen.SetContent(x, y, ' ', nil, st)
		}
	}
	d.screen.Show()
}

// EmitSound rings the terminal bell.
func (d *Driver) EmitSound() error {
	if err := d.screen.Beep(); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}
