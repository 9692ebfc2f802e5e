package chip8

import "fmt"

// Op is a CHIP-8 instruction word.
type Op uint16

func (o Op) Kind() byte  { return byte(o >> 12) }
func (o Op) X() byte     { return byte(o>>8) & 0xf }
func (o Op) Y() byte     { return byte(o>>4) & 0xf }
func (o Op) N() byte     { return byte(o) & 0xf }
func (o Op) NN() byte    { return byte(o) }
func (o Op) NNN() uint16 { return uint16(o) & 0xfff }

// String returns the assembly form of the instruction, or "DW 0xNNNN" if o
// is not a valid instruction.
func (o Op) String() string {
	x, y := o.X(), o.Y()
	switch o.Kind() {
	case 0x0:
		switch o {
		case 0x00e0:
			return "CLS"
		case 0x00ee:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%.3x", o.NNN())
	case 0x1:
		return fmt.Sprintf("JP 0x%.3x", o.NNN())
	case 0x2:
		return fmt.Sprintf("CALL 0x%.3x", o.NNN())
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%.2x", x, o.NN())
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%.2x", x, o.NN())
	case 0x5:
		if o.N() == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%.2x", x, o.NN())
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%.2x", x, o.NN())
	case 0x8:
		if m, ok := aluMnemonics[o.N()]; ok {
			if o.N() == 0x6 || o.N() == 0xe {
				return fmt.Sprintf("%s V%X", m, x)
			}
			return fmt.Sprintf("%s V%X, V%X", m, x, y)
		}
	case 0x9:
		if o.N() == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xa:
		return fmt.Sprintf("LD I, 0x%.3x", o.NNN())
	case 0xb:
		return fmt.Sprintf("JP V0, 0x%.3x", o.NNN())
	case 0xc:
		return fmt.Sprintf("RND V%X, 0x%.2x", x, o.NN())
	case 0xd:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, o.N())
	case 0xe:
		switch o.NN() {
		case 0x9e:
			return fmt.Sprintf("SKP V%X", x)
		case 0xa1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xf:
		switch o.NN() {
		case 0x07:
			return fmt.Sprintf("LD V%X, DT", x)
		case 0x0a:
			return fmt.Sprintf("LD V%X, K", x)
		case 0x15:
			return fmt.Sprintf("LD DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("LD ST, V%X", x)
		case 0x1e:
			return fmt.Sprintf("ADD I, V%X", x)
		case 0x29:
			return fmt.Sprintf("LD F, V%X", x)
		case 0x33:
			return fmt.Sprintf("LD B, V%X", x)
		case 0x55:
			return fmt.Sprintf("LD [I], V%X", x)
		case 0x65:
			return fmt.Sprintf("LD V%X, [I]", x)
		}
	}
	return fmt.Sprintf("DW 0x%.4x", uint16(o))
}

var aluMnemonics = map[byte]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xe: "SHL",
}
