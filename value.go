package alu

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
)

var (
	// ErrDivideByZero is returned when a div instruction has a zero divisor.
	ErrDivideByZero = errors.New("division by zero")
	// ErrModuloByZero is returned when a mod instruction has a zero divisor.
	ErrModuloByZero = errors.New("modulo by zero")
)

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpMul
	OpDiv
	OpMod
	OpEql
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEql:
		return "=="
	default:
		panic(op)
	}
}

// Arithmetic is the set of capabilities a value type must provide for the
// machine to execute over it. Implementations exist for plain integers
// (Integers) and for symbolic expressions (symexec.Symbols).
type Arithmetic[T any] interface {
	Zero() T
	One() T
	FromInt(n int64) T
	Equal(a, b T) bool
	Format(v T) string
	// Apply computes a op b. Division and modulo truncate toward zero.
	Apply(op Op, a, b T) (T, error)
}

// Integers is the concrete arithmetic over a signed integer type. FromInt
// and Apply follow Go's conversion and overflow rules for I, so literals
// and results outside I's range wrap; use int64 for programs whose values
// may not fit a narrower type.
type Integers[I constraints.Signed] struct{}

func (Integers[I]) Zero() I           { return 0 }
func (Integers[I]) One() I            { return 1 }
func (Integers[I]) FromInt(n int64) I { return I(n) }
func (Integers[I]) Equal(a, b I) bool { return a == b }
func (Integers[I]) Format(v I) string { return strconv.FormatInt(int64(v), 10) }

func (Integers[I]) Apply(op Op, a, b I) (I, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, fmt.Errorf("%d / %d: %w", a, b, ErrDivideByZero)
		}
		return a / b, nil
	case OpMod:
		if b == 0 {
			return 0, fmt.Errorf("%d %% %d: %w", a, b, ErrModuloByZero)
		}
		return a % b, nil
	case OpEql:
		if a == b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown operator %d", int(op))
	}
}
