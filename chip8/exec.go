package chip8

import "fmt"

// Exec executes the instruction at m.PC, leaving the timers and keys alone.
// It only returns a non-nil error, a HaltError, if it encounters a halt
// condition, in which case m.PC is left pointing at the instruction.
func (m *Machine) Exec() (err error) {
	var (
		opPC = m.PC
		op   Op
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				m.PC = opPC
				err = HaltError{
					Addr:     opPC,
					Op:       op,
					HaltCode: code,
				}
			} else {
				panic(e)
			}
		}
	}()

	op = Op(short(m.load(m.PC), m.load(m.PC+1)))
	if m.Trace != nil {
		m.Trace(opPC, op)
	}
	m.PC += 2

	var (
		x, y = op.X(), op.Y()
		vx   = m.V[x]
		vy   = m.V[y]
	)
	switch op.Kind() {
	case 0x0:
		switch op {
		case 0x00e0: // CLS
			m.fb = Framebuffer{}
			m.dirty = true
		case 0x00ee: // RET
			if m.SP == 0 {
				panic(Underflow)
			}
			m.SP--
			m.PC = m.Stack[m.SP]
		default:
			// SYS addr: machine code routines are not supported; ignored
			// like most interpreters do.
		}
	case 0x1: // JP addr
		m.PC = op.NNN()
	case 0x2: // CALL addr
		if int(m.SP) == len(m.Stack) {
			panic(Overflow)
		}
		m.Stack[m.SP] = m.PC
		m.SP++
		m.PC = op.NNN()
	case 0x3: // SE Vx, byte
		if vx == op.NN() {
			m.PC += 2
		}
	case 0x4: // SNE Vx, byte
		if vx != op.NN() {
			m.PC += 2
		}
	case 0x5: // SE Vx, Vy
		if op.N() != 0 {
			panic(IllegalOp)
		}
		if vx == vy {
			m.PC += 2
		}
	case 0x6: // LD Vx, byte
		m.V[x] = op.NN()
	case 0x7: // ADD Vx, byte
		m.V[x] += op.NN()
	case 0x8:
		m.alu(op, x, vx, vy)
	case 0x9: // SNE Vx, Vy
		if op.N() != 0 {
			panic(IllegalOp)
		}
		if vx != vy {
			m.PC += 2
		}
	case 0xa: // LD I, addr
		m.I = op.NNN()
	case 0xb: // JP V0, addr
		m.PC = op.NNN() + uint16(m.V[0])
	case 0xc: // RND Vx, byte
		m.V[x] = byte(m.rand.Intn(0x100)) & op.NN()
	case 0xd: // DRW Vx, Vy, nibble
		m.draw(int(vx), int(vy), int(op.N()))
	case 0xe:
		switch op.NN() {
		case 0x9e: // SKP Vx
			if m.Pressed(vx) {
				m.PC += 2
			}
		case 0xa1: // SKNP Vx
			if !m.Pressed(vx) {
				m.PC += 2
			}
		default:
			panic(IllegalOp)
		}
	case 0xf:
		m.misc(op, x, vx)
	}
	return nil
}

func (m *Machine) alu(op Op, x, vx, vy byte) {
	var flag byte
	switch op.N() {
	case 0x0: // LD Vx, Vy
		m.V[x] = vy
		return
	case 0x1: // OR Vx, Vy
		m.V[x] = vx | vy
		return
	case 0x2: // AND Vx, Vy
		m.V[x] = vx & vy
		return
	case 0x3: // XOR Vx, Vy
		m.V[x] = vx ^ vy
		return
	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		m.V[x] = byte(sum)
		flag = byte(sum >> 8)
	case 0x5: // SUB Vx, Vy
		m.V[x] = vx - vy
		flag = boolByte(vx >= vy)
	case 0x6: // SHR Vx
		m.V[x] = vx >> 1
		flag = vx & 0x1
	case 0x7: // SUBN Vx, Vy
		m.V[x] = vy - vx
		flag = boolByte(vy >= vx)
	case 0xe: // SHL Vx
		m.V[x] = vx << 1
		flag = vx >> 7
	default:
		panic(IllegalOp)
	}
	// VF is written last so that it wins when x is F.
	m.V[0xf] = flag
}

func (m *Machine) misc(op Op, x, vx byte) {
	switch op.NN() {
	case 0x07: // LD Vx, DT
		m.V[x] = m.Delay
	case 0x0a: // LD Vx, K
		m.waiting = true
		m.waitReg = x
	case 0x15: // LD DT, Vx
		m.Delay = vx
	case 0x18: // LD ST, Vx
		m.Sound = vx
	case 0x1e: // ADD I, Vx
		m.I += uint16(vx)
	case 0x29: // LD F, Vx
		m.I = fontStart + uint16(vx&0xf)*5
	case 0x33: // LD B, Vx
		m.store(m.I, vx/100)
		m.store(m.I+1, vx/10%10)
		m.store(m.I+2, vx%10)
	case 0x55: // LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			m.store(m.I+i, m.V[i])
		}
	case 0x65: // LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			m.V[i] = m.load(m.I + i)
		}
	default:
		panic(IllegalOp)
	}
}

// draw XORs an n-byte sprite at I onto the framebuffer at (x, y).
// The origin wraps around the screen and the sprite is clipped at the edges.
// The machine is unchanged if the sprite runs past the end of memory.
func (m *Machine) draw(x, y, n int) {
	x %= Width
	y %= Height
	rows := n
	if y+rows > Height {
		rows = Height - y
	}
	if int(m.I)+rows > MemSize {
		panic(OutOfRange)
	}
	m.V[0xf] = 0
	for row := 0; row < rows; row++ {
		bits := m.load(m.I + uint16(row))
		for col := 0; col < 8 && x+col < Width; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := &m.fb[y+row][x+col]
			if *px {
				m.V[0xf] = 1
			}
			*px = !*px
		}
	}
	m.dirty = true
}

func (m *Machine) load(addr uint16) byte {
	if addr >= MemSize {
		panic(OutOfRange)
	}
	return m.Mem[addr]
}

func (m *Machine) store(addr uint16, b byte) {
	if addr >= MemSize {
		panic(OutOfRange)
	}
	m.Mem[addr] = b
}

func short(hi, lo byte) uint16 {
	return uint16(hi)<<8 + uint16(lo)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// HaltError is returned by Exec if execution is halted by
// the program for some reason.
type HaltError struct {
	HaltCode
	Op   Op
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %s (%.4x) at %.3x", e.HaltCode, e.Op, uint16(e.Op), e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	IllegalOp  HaltCode = 0x01
	Underflow  HaltCode = 0x02
	Overflow   HaltCode = 0x03
	OutOfRange HaltCode = 0x04
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		IllegalOp:  "illegal instruction",
		Underflow:  "stack underflow",
		Overflow:   "stack overflow",
		OutOfRange: "memory access out of range",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown halt code %d", c)
}
