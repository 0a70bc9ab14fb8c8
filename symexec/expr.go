package symexec

import (
	"errors"
	"fmt"

	"github.com/speakeasy-api/alu"
)

// ErrUnboundVariable is returned when evaluating an expression that still
// references a free variable.
var ErrUnboundVariable = errors.New("unbound variable")

// Expr is a symbolic value: a literal, a free variable or a binary
// operation over two sub-expressions. Nodes are immutable once built.
type Expr[T any] interface {
	fmt.Stringer
	expr()
}

func (*Literal[T]) expr()  {}
func (*Variable[T]) expr() {}
func (*Binary[T]) expr()   {}

// Literal is a bound value.
type Literal[T any] struct {
	Value T
}

// NewLiteral returns a literal leaf.
func NewLiteral[T any](v T) *Literal[T] {
	return &Literal[T]{Value: v}
}

func (e *Literal[T]) String() string {
	return fmt.Sprint(e.Value)
}

// Variable stands for the Nth input, not yet known.
type Variable[T any] struct {
	N int
}

// NewVariable returns a free-variable leaf.
func NewVariable[T any](n int) *Variable[T] {
	return &Variable[T]{N: n}
}

func (e *Variable[T]) String() string {
	return fmt.Sprintf("n%d", e.N)
}

// Binary applies Op to LHS and RHS.
type Binary[T any] struct {
	Op  alu.Op
	LHS Expr[T]
	RHS Expr[T]
}

// NewBinary returns an operation node without simplifying it.
func NewBinary[T any](op alu.Op, lhs, rhs Expr[T]) *Binary[T] {
	return &Binary[T]{Op: op, LHS: lhs, RHS: rhs}
}

func (e *Binary[T]) String() string {
	return fmt.Sprintf("%s(%s,%s)", e.Op, e.LHS, e.RHS)
}

// Size returns the number of nodes in e.
func Size[T any](e Expr[T]) int {
	if b, ok := e.(*Binary[T]); ok {
		return 1 + Size[T](b.LHS) + Size[T](b.RHS)
	}
	return 1
}

// Variables returns the distinct variable indices referenced by e, in
// first-seen order.
func Variables[T any](e Expr[T]) []int {
	seen := make(map[int]struct{})
	var out []int
	var walk func(Expr[T])
	walk = func(e Expr[T]) {
		switch e := e.(type) {
		case *Variable[T]:
			if _, ok := seen[e.N]; !ok {
				seen[e.N] = struct{}{}
				out = append(out, e.N)
			}
		case *Binary[T]:
			walk(e.LHS)
			walk(e.RHS)
		}
	}
	walk(e)
	return out
}

// Symbols is the symbolic arithmetic over an inner value arithmetic. Apply
// builds a tree node; nothing is evaluated or simplified.
type Symbols[T any] struct {
	Inner alu.Arithmetic[T]
}

// NewSymbols wraps inner.
func NewSymbols[T any](inner alu.Arithmetic[T]) Symbols[T] {
	return Symbols[T]{Inner: inner}
}

// Int64 is the symbolic arithmetic over plain int64 values.
func Int64() Symbols[int64] {
	return NewSymbols[int64](alu.Integers[int64]{})
}

var _ alu.Arithmetic[Expr[int64]] = Symbols[int64]{}

func (s Symbols[T]) Zero() Expr[T] {
	return NewLiteral(s.Inner.Zero())
}

func (s Symbols[T]) One() Expr[T] {
	return NewLiteral(s.Inner.One())
}

func (s Symbols[T]) FromInt(n int64) Expr[T] {
	return NewLiteral(s.Inner.FromInt(n))
}

func (s Symbols[T]) Format(e Expr[T]) string {
	return e.String()
}

func (s Symbols[T]) Apply(op alu.Op, a, b Expr[T]) (Expr[T], error) {
	return NewBinary[T](op, a, b), nil
}

// Equal compares two expressions structurally.
func (s Symbols[T]) Equal(a, b Expr[T]) bool {
	switch a := a.(type) {
	case *Literal[T]:
		b, ok := b.(*Literal[T])
		return ok && s.Inner.Equal(a.Value, b.Value)
	case *Variable[T]:
		b, ok := b.(*Variable[T])
		return ok && a.N == b.N
	case *Binary[T]:
		b, ok := b.(*Binary[T])
		return ok && a.Op == b.Op && s.Equal(a.LHS, b.LHS) && s.Equal(a.RHS, b.RHS)
	default:
		return false
	}
}

// Bind replaces every variable n with a literal holding bindings[n].
func (s Symbols[T]) Bind(e Expr[T], bindings []T) (Expr[T], error) {
	switch e := e.(type) {
	case *Variable[T]:
		if e.N < 0 || e.N >= len(bindings) {
			return nil, fmt.Errorf("%s: no binding among %d value(s): %w", e, len(bindings), ErrUnboundVariable)
		}
		return NewLiteral(bindings[e.N]), nil
	case *Binary[T]:
		lhs, err := s.Bind(e.LHS, bindings)
		if err != nil {
			return nil, err
		}
		rhs, err := s.Bind(e.RHS, bindings)
		if err != nil {
			return nil, err
		}
		return NewBinary[T](e.Op, lhs, rhs), nil
	default:
		return e, nil
	}
}

// Evaluate folds a variable-free expression through the inner arithmetic.
func (s Symbols[T]) Evaluate(e Expr[T]) (T, error) {
	var zero T
	switch e := e.(type) {
	case *Literal[T]:
		return e.Value, nil
	case *Variable[T]:
		return zero, fmt.Errorf("%s: %w", e, ErrUnboundVariable)
	case *Binary[T]:
		lhs, err := s.Evaluate(e.LHS)
		if err != nil {
			return zero, err
		}
		rhs, err := s.Evaluate(e.RHS)
		if err != nil {
			return zero, err
		}
		return s.Inner.Apply(e.Op, lhs, rhs)
	default:
		return zero, fmt.Errorf("unknown expression %T", e)
	}
}

// FreeVariables is the symbolic input source: every inp binds a fresh
// variable numbered from first.
type FreeVariables[T any] struct {
	next int
}

// NewFreeVariables returns an input whose first variable is n<first>.
func NewFreeVariables[T any](first int) *FreeVariables[T] {
	return &FreeVariables[T]{next: first}
}

func (f *FreeVariables[T]) Next() (Expr[T], error) {
	v := NewVariable[T](f.next)
	f.next++
	return v, nil
}

// Count returns the index the next variable will get.
func (f *FreeVariables[T]) Count() int {
	return f.next
}
