package alu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Instruction
	}{
		{"inp w", Instruction{Op: OpInp, Dst: W}},
		{"add x z", Instruction{Op: OpAddI, Dst: X, Src: Reg(Z)}},
		{"mul y 0", Instruction{Op: OpMulI, Dst: Y, Src: Lit(0)}},
		{"div z 26", Instruction{Op: OpDivI, Dst: Z, Src: Lit(26)}},
		{"mod x 26", Instruction{Op: OpModI, Dst: X, Src: Lit(26)}},
		{"eql x w", Instruction{Op: OpEqlI, Dst: X, Src: Reg(W)}},
		{"add x -11", Instruction{Op: OpAddI, Dst: X, Src: Lit(-11)}},
		{"  add\ty   25 ", Instruction{Op: OpAddI, Dst: Y, Src: Lit(25)}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Operand{})); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"", "empty instruction"},
		{"sub x 1", "unknown mnemonic"},
		{"inp", "takes 1 operand"},
		{"inp w 3", "takes 1 operand"},
		{"add x", "takes 2 operand"},
		{"add q 1", "unknown register"},
		{"add x 1.5", "neither a register nor an integer"},
		{"add x W", "neither a register nor an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(tt.line)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.line, err)
			}
			if !strings.Contains(pe.Msg, tt.msg) {
				t.Errorf("Parse(%q) message = %q, want substring %q", tt.line, pe.Msg, tt.msg)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	src := "inp w\n\nadd z w\n  \nmod z 2\n"
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(prog) != 3 {
		t.Fatalf("got %d instructions, want 3", len(prog))
	}
	if got, want := prog.String(), "inp w\nadd z w\nmod z 2\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	_, err = ParseString("inp w\n\nadd z v\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("line = %d, want 3", pe.Line)
	}
	if !strings.HasPrefix(pe.Error(), "line 3: ") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestInstructionStringRoundTrip(t *testing.T) {
	for _, line := range []string{"inp z", "add x -3", "eql x w", "div z 26"} {
		ins, err := Parse(line)
		if err != nil {
			t.Fatal(err)
		}
		if got := ins.String(); got != line {
			t.Errorf("String() = %q, want %q", got, line)
		}
	}
}
