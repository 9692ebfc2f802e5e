// Package chip8 provides an implementation of a CHIP-8 interpreter, called
// Machine, that can be driven one instruction at a time.
package chip8

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	Width  = 64
	Height = 32

	MemSize      = 0x1000
	ProgramStart = 0x200
	MaxROMSize   = MemSize - ProgramStart

	fontStart = 0x050

	// TimerHz is the rate at which the delay and sound timers count down.
	TimerHz = 60

	// keyHold is the number of steps a key stays down after SetKey.
	// Terminals report presses only, so releases are synthesised.
	keyHold = 100
)

// Framebuffer holds the state of every pixel, indexed [y][x].
type Framebuffer [Height][Width]bool

// Machine is an implementation of a CHIP-8 interpreter.
type Machine struct {
	Mem   [MemSize]byte
	V     [16]byte
	I     uint16
	PC    uint16
	SP    byte
	Stack [16]uint16
	Delay byte
	Sound byte

	// Trace, if set, is called before each instruction is executed.
	Trace func(pc uint16, op Op)

	fb    Framebuffer
	dirty bool

	keys    [16]int // remaining steps each key is held
	waiting bool
	waitReg byte

	rand  *rand.Rand
	now   func() time.Time
	timer time.Time // time of the last timer tick
}

var ErrEmptyROM = errors.New("empty rom")

// New returns a Machine loaded with the given rom at ProgramStart.
func New(rom []byte) (*Machine, error) {
	if len(rom) == 0 {
		return nil, ErrEmptyROM
	}
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("rom is %d bytes, max is %d", len(rom), MaxROMSize)
	}
	m := &Machine{
		PC:   ProgramStart,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	copy(m.Mem[fontStart:], font[:])
	copy(m.Mem[ProgramStart:], rom)
	m.timer = m.now()
	return m, nil
}

// SetKey marks the key k as pressed. If the machine is waiting for a key
// (FX0A), k is stored in the waiting register and the wait ends.
func (m *Machine) SetKey(k byte) {
	k &= 0xf
	m.keys[k] = keyHold
	if m.waiting {
		m.V[m.waitReg] = k
		m.waiting = false
	}
}

// KeyWaiting reports whether the machine is blocked on FX0A.
func (m *Machine) KeyWaiting() bool { return m.waiting }

// Pressed reports whether the key k is currently held.
func (m *Machine) Pressed(k byte) bool { return m.keys[k&0xf] > 0 }

func (m *Machine) SoundTimer() byte { return m.Sound }
func (m *Machine) ResetSound()      { m.Sound = 0 }

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (m *Machine) Dirty() bool { return m.dirty }
func (m *Machine) ClearDirty() { m.dirty = false }

// Framebuffer returns the machine's framebuffer.
// Callers must not modify it.
func (m *Machine) Framebuffer() *Framebuffer { return &m.fb }

// Step executes the instruction at m.PC, after counting down the timers by
// the number of 60Hz ticks elapsed since the previous step.
func (m *Machine) Step() error {
	m.tick()
	for k := range m.keys {
		if m.keys[k] > 0 {
			m.keys[k]--
		}
	}
	return m.Exec()
}

func (m *Machine) tick() {
	now := m.now()
	n := int(now.Sub(m.timer) * TimerHz / time.Second)
	if n <= 0 {
		return
	}
	m.timer = m.timer.Add(time.Duration(n) * time.Second / TimerHz)
	m.Delay = countDown(m.Delay, n)
	m.Sound = countDown(m.Sound, n)
}

func countDown(t byte, n int) byte {
	if int(t) <= n {
		return 0
	}
	return t - byte(n)
}

var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
