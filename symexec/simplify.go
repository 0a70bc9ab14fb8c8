package symexec

import (
	"errors"
	"fmt"

	"github.com/speakeasy-api/alu"
)

// ErrSimplifyDiverged is returned when simplification does not reach a
// fixed point within the allowed number of passes.
var ErrSimplifyDiverged = errors.New("simplification did not reach a fixed point")

// Simplify rewrites e bottom-up with the algebraic identities below until
// a pass leaves it unchanged:
//
//	add(0,x) = add(x,0) = x
//	mul(1,x) = mul(x,1) = x
//	mul(0,x) = mul(x,0) = 0
//	div(x,1) = x, div(0,x) = 0
//	mod(0,x) = 0
//	eql(nI,nI) = 1
//	eql(a,b) = 1 or 0 when a and b are both literals
//
// Every rewrite shrinks the tree, so the loop terminates.
func (s Symbols[T]) Simplify(e Expr[T]) Expr[T] {
	out, _, _ := s.SimplifyBounded(e, 0)
	return out
}

// SimplifyBounded is Simplify with a limit on the number of passes. A
// maxPasses of zero or less means no limit. It also returns the number of
// passes run, including the final one that confirmed the fixed point.
func (s Symbols[T]) SimplifyBounded(e Expr[T], maxPasses int) (Expr[T], int, error) {
	passes := 0
	for {
		passes++
		next := s.simplifyPass(e)
		if s.Equal(next, e) {
			return next, passes, nil
		}
		if maxPasses > 0 && passes >= maxPasses {
			return next, passes, fmt.Errorf("after %d passes (size %d): %w", passes, Size[T](next), ErrSimplifyDiverged)
		}
		e = next
	}
}

func (s Symbols[T]) simplifyPass(e Expr[T]) Expr[T] {
	b, ok := e.(*Binary[T])
	if !ok {
		return e
	}

	lhs, rhs := s.simplifyPass(b.LHS), s.simplifyPass(b.RHS)
	switch b.Op {
	case alu.OpAdd:
		if s.isLiteral(lhs, s.Inner.Zero()) {
			return rhs
		}
		if s.isLiteral(rhs, s.Inner.Zero()) {
			return lhs
		}
	case alu.OpMul:
		if s.isLiteral(lhs, s.Inner.Zero()) || s.isLiteral(rhs, s.Inner.Zero()) {
			return s.Zero()
		}
		if s.isLiteral(lhs, s.Inner.One()) {
			return rhs
		}
		if s.isLiteral(rhs, s.Inner.One()) {
			return lhs
		}
	case alu.OpDiv:
		if s.isLiteral(rhs, s.Inner.One()) {
			return lhs
		}
		if s.isLiteral(lhs, s.Inner.Zero()) {
			return s.Zero()
		}
	case alu.OpMod:
		if s.isLiteral(lhs, s.Inner.Zero()) {
			return s.Zero()
		}
	case alu.OpEql:
		if lv, ok := lhs.(*Variable[T]); ok {
			if rv, ok := rhs.(*Variable[T]); ok && lv.N == rv.N {
				return s.One()
			}
		}
		if ll, ok := lhs.(*Literal[T]); ok {
			if rl, ok := rhs.(*Literal[T]); ok {
				if s.Inner.Equal(ll.Value, rl.Value) {
					return s.One()
				}
				return s.Zero()
			}
		}
	}

	if lhs == b.LHS && rhs == b.RHS {
		return b
	}
	return NewBinary[T](b.Op, lhs, rhs)
}

func (s Symbols[T]) isLiteral(e Expr[T], v T) bool {
	l, ok := e.(*Literal[T])
	return ok && s.Inner.Equal(l.Value, v)
}
