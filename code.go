package alu

import (
	"fmt"
	"strconv"
)

// Opcode identifies one of the six ALU instructions.
type Opcode int

const (
	OpInp Opcode = iota
	OpAddI
	OpMulI
	OpDivI
	OpModI
	OpEqlI
)

func (op Opcode) String() string {
	switch op {
	case OpInp:
		return "inp"
	case OpAddI:
		return "add"
	case OpMulI:
		return "mul"
	case OpDivI:
		return "div"
	case OpModI:
		return "mod"
	case OpEqlI:
		return "eql"
	default:
		panic(op)
	}
}

// Op returns the arithmetic operator applied by an arithmetic opcode.
// It reports false for inp.
func (op Opcode) Op() (Op, bool) {
	switch op {
	case OpAddI:
		return OpAdd, true
	case OpMulI:
		return OpMul, true
	case OpDivI:
		return OpDiv, true
	case OpModI:
		return OpMod, true
	case OpEqlI:
		return OpEql, true
	default:
		return 0, false
	}
}

var mnemonics = map[string]Opcode{
	"inp": OpInp,
	"add": OpAddI,
	"mul": OpMulI,
	"div": OpDivI,
	"mod": OpModI,
	"eql": OpEqlI,
}

// Register is one of the four ALU registers.
type Register uint8

const (
	W Register = iota
	X
	Y
	Z
)

// NumRegisters is the number of registers in the machine.
const NumRegisters = 4

func (r Register) String() string {
	switch r {
	case W:
		return "w"
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		panic(fmt.Sprintf("invalid register %d", uint8(r)))
	}
}

// ParseRegister returns the register named s.
func ParseRegister(s string) (Register, bool) {
	switch s {
	case "w":
		return W, true
	case "x":
		return X, true
	case "y":
		return Y, true
	case "z":
		return Z, true
	}
	return 0, false
}

// Operand is the second argument of an arithmetic instruction: either a
// register or a literal.
type Operand struct {
	reg   Register
	lit   int64
	isLit bool
}

// Reg returns an operand reading register r.
func Reg(r Register) Operand {
	return Operand{reg: r}
}

// Lit returns a literal operand.
func Lit(n int64) Operand {
	return Operand{lit: n, isLit: true}
}

// IsLiteral reports whether the operand is a literal.
func (o Operand) IsLiteral() bool {
	return o.isLit
}

// Register returns the register read by the operand. Only meaningful when
// IsLiteral is false.
func (o Operand) Register() Register {
	return o.reg
}

// Literal returns the literal value. Only meaningful when IsLiteral is true.
func (o Operand) Literal() int64 {
	return o.lit
}

func (o Operand) String() string {
	if o.isLit {
		return strconv.FormatInt(o.lit, 10)
	}
	return o.reg.String()
}

// Instruction is a single decoded ALU instruction. Src is unused for inp.
type Instruction struct {
	Op  Opcode
	Dst Register
	Src Operand
}

func (i Instruction) String() string {
	if i.Op == OpInp {
		return fmt.Sprintf("%s %s", i.Op, i.Dst)
	}
	return fmt.Sprintf("%s %s %s", i.Op, i.Dst, i.Src)
}
