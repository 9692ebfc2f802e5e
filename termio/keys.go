package termio

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyCode is a CHIP-8 keypad key, 0x0 through 0xF, or one of the sentinel
// values below.
type KeyCode byte

const (
	// NoKey is returned when no key is pending, or the key is not mapped.
	NoKey KeyCode = 0xff
	// Exit is returned for Escape.
	Exit KeyCode = 0xfe
	// Confirm is returned for Enter. The pump ignores it.
	Confirm KeyCode = 0xfd
)

// Keypad reports whether k is one of the 16 keypad keys.
func (k KeyCode) Keypad() bool { return k <= 0xf }

func (k KeyCode) String() string {
	switch k {
	case NoKey:
		return "none"
	case Exit:
		return "exit"
	case Confirm:
		return "confirm"
	}
	if k.Keypad() {
		return fmt.Sprintf("%X", byte(k))
	}
	return fmt.Sprintf("KeyCode(%#.2x)", byte(k))
}

// The COSMAC VIP keypad, laid over the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      q w e r
//	7 8 9 E  ->  a s d f
//	A 0 B F      z x c v
var keypad = map[rune]KeyCode{
	'x': 0x0, '1': 0x1, '2': 0x2, '3': 0x3,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'a': 0x7,
	's': 0x8, 'd': 0x9, 'z': 0xa, 'c': 0xb,
	'4': 0xc, 'r': 0xd, 'f': 0xe, 'v': 0xf,
}

// DecodeKey translates a terminal key event to a KeyCode.
func DecodeKey(ev *tcell.EventKey) KeyCode {
	if ev == nil {
		return NoKey
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return Exit
	case tcell.KeyEnter, tcell.KeyLF:
		return Confirm
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
			return NoKey
		}
		if k, ok := keypad[ev.Rune()]; ok {
			return k
		}
	}
	return NoKey
}
