package monad

import (
	"fmt"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/symexec"
)

// MismatchError reports a chunk whose symbolic formula disagrees with its
// extracted parameters.
type MismatchError struct {
	Chunk   int
	Params  Chunk
	Formula string
	Z, N    int64
	Want    int64 // Process(Z, N)
	Got     int64 // formula evaluated at (N, Z)
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("chunk %d %s: process(%d, %d) = %d but formula %s gives %d",
		e.Chunk, e.Params, e.Z, e.N, e.Want, e.Formula, e.Got)
}

// VerifyModel runs every chunk symbolically and checks that its simplified
// z formula agrees with Chunk.Process for z in [0, samples) and every digit.
func VerifyModel(parts []alu.Program, chunks []Chunk, samples int, opts symexec.Options) error {
	if len(parts) != len(chunks) {
		return fmt.Errorf("have %d chunks but %d parameter sets", len(parts), len(chunks))
	}
	sym := symexec.Int64()
	for i, part := range parts {
		formula, err := symexec.ChunkFormula(sym, part, opts)
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		c := chunks[i]
		for z := int64(0); z < int64(samples); z++ {
			for n := int64(1); n <= 9; n++ {
				got, err := symexec.EvalChunk(sym, formula, n, z)
				if err != nil {
					return fmt.Errorf("chunk %d: evaluating at z=%d n=%d: %w", i, z, n, err)
				}
				if want := c.Process(z, n); got != want {
					return &MismatchError{Chunk: i, Params: c, Formula: formula.String(), Z: z, N: n, Want: want, Got: got}
				}
			}
		}
	}
	return nil
}

// VerifyRoute feeds the route's digits to the concrete machine and checks
// that z ends at zero.
func VerifyRoute(prog alu.Program, route Route) error {
	digits := make([]int64, len(route))
	for i, p := range route {
		digits[i] = p.N
	}
	m := alu.NewMachine[int64](alu.Integers[int64]{})
	if err := m.Run(prog, alu.NewDigits(digits...)); err != nil {
		return fmt.Errorf("replaying %s: %w", route.Digits(), err)
	}
	if z := m.Get(alu.Z); z != 0 {
		return fmt.Errorf("replaying %s: z = %d, want 0", route.Digits(), z)
	}
	return nil
}
