package chip8

import "testing"

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{
		0x00e0: "CLS",
		0x00ee: "RET",
		0x0123: "SYS 0x123",
		0x1abc: "JP 0xabc",
		0x2abc: "CALL 0xabc",
		0x3a07: "SE VA, 0x07",
		0x4a07: "SNE VA, 0x07",
		0x5ab0: "SE VA, VB",
		0x5ab1: "DW 0x5ab1",
		0x6a07: "LD VA, 0x07",
		0x7a07: "ADD VA, 0x07",
		0x8ab0: "LD VA, VB",
		0x8ab4: "ADD VA, VB",
		0x8ab6: "SHR VA",
		0x8abe: "SHL VA",
		0x8ab9: "DW 0x8ab9",
		0x9ab0: "SNE VA, VB",
		0xa123: "LD I, 0x123",
		0xb123: "JP V0, 0x123",
		0xc1ff: "RND V1, 0xff",
		0xd125: "DRW V1, V2, 5",
		0xe19e: "SKP V1",
		0xe1a1: "SKNP V1",
		0xe1a2: "DW 0xe1a2",
		0xf10a: "LD V1, K",
		0xf129: "LD F, V1",
		0xf155: "LD [I], V1",
		0xf165: "LD V1, [I]",
		0xf1ff: "DW 0xf1ff",
	} {
		if got := op.String(); got != want {
			t.Errorf("Op(%.4x).String() = %q, want %q", uint16(op), got, want)
		}
	}
}

func TestOpFields(t *testing.T) {
	op := Op(0xd9a5)
	if g := op.Kind(); g != 0xd {
		t.Errorf("Kind() = %x, want d", g)
	}
	if g := op.X(); g != 0x9 {
		t.Errorf("X() = %x, want 9", g)
	}
	if g := op.Y(); g != 0xa {
		t.Errorf("Y() = %x, want a", g)
	}
	if g := op.N(); g != 0x5 {
		t.Errorf("N() = %x, want 5", g)
	}
	if g := op.NN(); g != 0xa5 {
		t.Errorf("NN() = %x, want a5", g)
	}
	if g := op.NNN(); g != 0x9a5 {
		t.Errorf("NNN() = %x, want 9a5", g)
	}
}
