// Package monad reduces an ALU program made of repeated 18-instruction
// chunks to three parameters per chunk and searches the digit sequences
// that leave z at zero.
package monad

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/speakeasy-api/alu"
)

// Base is the radix z is treated as a stack of digits in.
const Base = 26

// ChunkLen is the number of instructions in a chunk.
const ChunkLen = 18

// Fixed positions of the varying literals inside a chunk.
const (
	posDivide   = 4
	posOffset   = 5
	posAddition = 15
)

// Chunk is the reduced form of one chunk.
type Chunk struct {
	Divide   bool  // z is divided by Base before branching
	Offset   int64 // added to z mod Base before comparing with the digit
	Addition int64 // added to the digit when it does not match
}

func (c Chunk) String() string {
	sign := '*'
	if c.Divide {
		sign = '/'
	}
	return fmt.Sprintf("(%c,%d,%d)", sign, c.Offset, c.Addition)
}

// Divisor returns Base for dividing chunks and 1 otherwise.
func (c Chunk) Divisor() int64 {
	if c.Divide {
		return Base
	}
	return 1
}

// Process applies the chunk to accumulator z and digit n.
func (c Chunk) Process(z, n int64) int64 {
	y := z / c.Divisor()
	if z%Base+c.Offset == n {
		return y
	}
	return Base*y + n + c.Addition
}

// Point is an (accumulator, digit) pair entering a chunk.
type Point struct {
	Z int64
	N int64
}

func (p Point) String() string {
	return fmt.Sprintf("(z=%d,n=%d)", p.Z, p.N)
}

// FindValues returns every (z, n) with z >= 0 and n in 1..9 such that
// Process(z, n) == target, sorted by z then n.
func (c Chunk) FindValues(target int64) []Point {
	var out []Point
	add := func(z, n int64) {
		if z >= 0 && n >= 1 && n <= 9 && c.Process(z, n) == target {
			out = append(out, Point{Z: z, N: n})
		}
	}

	// Matching branch: z / divisor == target and the digit is forced.
	if c.Divide {
		for r := int64(0); r < Base; r++ {
			z := Base*target + r
			add(z, z%Base+c.Offset)
		}
	} else {
		add(target, target%Base+c.Offset)
	}

	// Other branch: Base*(z/divisor) + n + Addition == target.
	for n := int64(1); n <= 9; n++ {
		d := target - n - c.Addition
		if d < 0 || d%Base != 0 {
			continue
		}
		y := d / Base
		if c.Divide {
			for r := int64(0); r < Base; r++ {
				add(Base*y+r, n)
			}
		} else {
			add(y, n)
		}
	}

	slices.SortFunc(out, comparePoints)
	return slices.Compact(out)
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Z, b.Z); c != 0 {
		return c
	}
	return cmp.Compare(a.N, b.N)
}

// TemplateError reports a chunk that does not follow the fixed template.
type TemplateError struct {
	Chunk    int // index of the chunk in the program
	Position int // instruction index within the chunk, -1 for length mismatches
	Want     string
	Got      string
}

func (e *TemplateError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("chunk %d: want %s, got %s", e.Chunk, e.Want, e.Got)
	}
	return fmt.Sprintf("chunk %d, instruction %d: want %q, got %q", e.Chunk, e.Position, e.Want, e.Got)
}

// slot describes one template position. A slot with neither src nor lit
// holds a literal that varies per chunk; label names it in errors.
type slot struct {
	op    alu.Opcode
	dst   alu.Register
	src   *alu.Register
	lit   *int64
	label string
}

func reg(r alu.Register) *alu.Register { return &r }
func lit(n int64) *int64               { return &n }

var chunkTemplate = [ChunkLen]slot{
	{op: alu.OpInp, dst: alu.W},
	{op: alu.OpMulI, dst: alu.X, lit: lit(0)},
	{op: alu.OpAddI, dst: alu.X, src: reg(alu.Z)},
	{op: alu.OpModI, dst: alu.X, lit: lit(Base)},
	{op: alu.OpDivI, dst: alu.Z, label: "1|26"},
	{op: alu.OpAddI, dst: alu.X, label: "<offset>"},
	{op: alu.OpEqlI, dst: alu.X, src: reg(alu.W)},
	{op: alu.OpEqlI, dst: alu.X, lit: lit(0)},
	{op: alu.OpMulI, dst: alu.Y, lit: lit(0)},
	{op: alu.OpAddI, dst: alu.Y, lit: lit(Base - 1)},
	{op: alu.OpMulI, dst: alu.Y, src: reg(alu.X)},
	{op: alu.OpAddI, dst: alu.Y, lit: lit(1)},
	{op: alu.OpMulI, dst: alu.Z, src: reg(alu.Y)},
	{op: alu.OpMulI, dst: alu.Y, lit: lit(0)},
	{op: alu.OpAddI, dst: alu.Y, src: reg(alu.W)},
	{op: alu.OpAddI, dst: alu.Y, label: "<addition>"},
	{op: alu.OpMulI, dst: alu.Y, src: reg(alu.X)},
	{op: alu.OpAddI, dst: alu.Z, src: reg(alu.Y)},
}

func (s slot) String() string {
	if s.op == alu.OpInp {
		return fmt.Sprintf("%s %s", s.op, s.dst)
	}
	switch {
	case s.src != nil:
		return fmt.Sprintf("%s %s %s", s.op, s.dst, *s.src)
	case s.lit != nil:
		return fmt.Sprintf("%s %s %d", s.op, s.dst, *s.lit)
	default:
		return fmt.Sprintf("%s %s %s", s.op, s.dst, s.label)
	}
}

func (s slot) matches(ins alu.Instruction) bool {
	if ins.Op != s.op || ins.Dst != s.dst {
		return false
	}
	switch {
	case s.op == alu.OpInp:
		return true
	case s.src != nil:
		return !ins.Src.IsLiteral() && ins.Src.Register() == *s.src
	case s.lit != nil:
		return ins.Src.IsLiteral() && ins.Src.Literal() == *s.lit
	default:
		return ins.Src.IsLiteral()
	}
}

// Extract validates chunk against the template and reads its parameters.
// index is only used in error messages. Every mismatch is reported.
func Extract(chunk alu.Program, index int) (Chunk, error) {
	if len(chunk) != ChunkLen {
		return Chunk{}, &TemplateError{
			Chunk:    index,
			Position: -1,
			Want:     fmt.Sprintf("%d instructions", ChunkLen),
			Got:      fmt.Sprintf("%d", len(chunk)),
		}
	}

	var errs []error
	for i, s := range chunkTemplate {
		if !s.matches(chunk[i]) {
			errs = append(errs, &TemplateError{Chunk: index, Position: i, Want: s.String(), Got: chunk[i].String()})
		}
	}
	if div := chunk[posDivide]; len(errs) == 0 && div.Src.Literal() != 1 && div.Src.Literal() != Base {
		errs = append(errs, &TemplateError{Chunk: index, Position: posDivide, Want: chunkTemplate[posDivide].String(), Got: div.String()})
	}
	if len(errs) > 0 {
		return Chunk{}, errors.Join(errs...)
	}

	return Chunk{
		Divide:   chunk[posDivide].Src.Literal() != 1,
		Offset:   chunk[posOffset].Src.Literal(),
		Addition: chunk[posAddition].Src.Literal(),
	}, nil
}

// ExtractAll splits prog and extracts every chunk, joining all template
// errors into one.
func ExtractAll(prog alu.Program) ([]Chunk, error) {
	parts := prog.Split()
	chunks := make([]Chunk, 0, len(parts))
	var errs []error
	for i, part := range parts {
		c, err := Extract(part, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chunks = append(chunks, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return chunks, nil
}
