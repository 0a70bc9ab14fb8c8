package symexec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/speakeasy-api/alu"
)

const chunk = `inp w
mul x 0
add x z
mod x 26
div z 26
add x -7
eql x w
eql x 0
mul y 0
add y 25
mul y x
add y 1
mul z y
mul y 0
add y w
add y 5
mul y x
add z y
`

func parse(t *testing.T, src string) alu.Program {
	t.Helper()
	prog, err := alu.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestRunRegisters(t *testing.T) {
	prog := parse(t, "inp w\nadd x w\nmul x 0\ninp y\neql y w\nadd z y\nmul z 1\n")
	opts := DefaultOptions()

	res, err := Run(Int64(), prog, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := [alu.NumRegisters]string{"n0", "0", "==(n1,n0)", "==(n1,n0)"}
	for i, e := range res.Registers {
		if e.String() != want[i] {
			t.Errorf("register %s = %s, want %s", alu.Register(i), e, want[i])
		}
	}
	if res.Inputs != 2 {
		t.Errorf("Inputs = %d, want 2", res.Inputs)
	}

	opts.Tidy = false
	raw, err := Run(Int64(), prog, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := raw.Z().String(); got != "*(+(0,==(n1,n0)),1)" {
		t.Errorf("untidy z = %s", got)
	}
}

// Nesting symbols over symbols shows the machine is written once over any
// arithmetic: the inner literals are themselves expressions.
func TestNestedSymbols(t *testing.T) {
	prog := parse(t, "add x 3\nmul x 3\nmod x 3\ndiv x 3\nadd y 3\nadd y 4\n")
	outer := NewSymbols[Expr[int64]](Int64())
	m := alu.NewMachine[Expr[Expr[int64]]](outer)
	if err := m.Run(prog, NewFreeVariables[Expr[int64]](0)); err != nil {
		t.Fatal(err)
	}
	want := "[0,/(%(*(+(0,3),3),3),3),+(+(0,3),4),0]"
	if got := m.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	opts := DefaultOptions()
	res, err := Run(outer, prog, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Registers[alu.X].String(); got != "/(%(*(3,3),3),3)" {
		t.Errorf("tidy x = %s", got)
	}
}

func TestChunkFormulaMatchesConcrete(t *testing.T) {
	sym := Int64()
	prog := parse(t, chunk)
	formula, err := ChunkFormula(sym, prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if vars := Variables[int64](formula); len(vars) != 2 {
		t.Errorf("formula %s uses variables %v, want n0 and n1", formula, vars)
	}

	for z := int64(0); z < 2*26*26; z += 7 {
		for n := int64(1); n <= 9; n++ {
			m := alu.NewMachine[int64](alu.Integers[int64]{})
			m.Set(alu.Z, z)
			if err := m.Run(prog, alu.NewDigits(n)); err != nil {
				t.Fatal(err)
			}
			got, err := EvalChunk(sym, formula, n, z)
			if err != nil {
				t.Fatal(err)
			}
			if want := m.Get(alu.Z); got != want {
				t.Fatalf("z=%d n=%d: formula gives %d, machine gives %d", z, n, got, want)
			}
		}
	}
}

func TestWholeProgramEquivalence(t *testing.T) {
	sym := Int64()
	prog := parse(t, strings.Replace(chunk, "div z 26", "div z 1", 1)+chunk)
	res, err := Run(sym, prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	for a := int64(1); a <= 9; a++ {
		for b := int64(1); b <= 9; b++ {
			m := alu.NewMachine[int64](alu.Integers[int64]{})
			if err := m.Run(prog, alu.NewDigits(a, b)); err != nil {
				t.Fatal(err)
			}
			bound, err := sym.Bind(res.Z(), []int64{a, b})
			if err != nil {
				t.Fatal(err)
			}
			got, err := sym.Evaluate(bound)
			if err != nil {
				t.Fatal(err)
			}
			if want := m.Get(alu.Z); got != want {
				t.Errorf("digits %d%d: symbolic %d, concrete %d", a, b, got, want)
			}
		}
	}
}

func TestChunkFormulaRejectsTwoInputs(t *testing.T) {
	_, err := ChunkFormula(Int64(), parse(t, "inp w\ninp x\n"), DefaultOptions())
	if err == nil {
		t.Error("expected error for a chunk with two inputs")
	}
}

func TestEvaluateUnbound(t *testing.T) {
	sym := Int64()
	if _, err := sym.Evaluate(NewVariable[int64](0)); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("err = %v", err)
	}
	if _, err := sym.Bind(NewVariable[int64](3), []int64{1}); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("err = %v", err)
	}
}

func TestRunLogsSimplification(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = newLogger(LevelDebug, &buf, false)

	if _, err := Run(Int64(), parse(t, "inp w\nadd z w\nmul z 0\n"), opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"[DEBUG] starting symbolic run instructions=3\n",
		"[DEBUG] simplified 0 after=1 before=5 passes=2 register=z\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
