package alu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInputExhausted is returned when an inp instruction finds no more input.
var ErrInputExhausted = errors.New("input exhausted")

// Input supplies values to inp instructions, one per call.
type Input[T any] interface {
	Next() (T, error)
}

// Digits is a concrete input stream.
type Digits[T any] struct {
	values []T
	pos    int
}

// NewDigits returns an input that yields values in order.
func NewDigits[T any](values ...T) *Digits[T] {
	return &Digits[T]{values: values}
}

// DigitsOf converts a string of decimal digits into an input stream.
func DigitsOf[T any](arith Arithmetic[T], s string) (*Digits[T], error) {
	values := make([]T, 0, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid digit %q at position %d", r, i)
		}
		values = append(values, arith.FromInt(int64(r-'0')))
	}
	return NewDigits(values...), nil
}

func (d *Digits[T]) Next() (T, error) {
	if d.pos >= len(d.values) {
		var zero T
		return zero, ErrInputExhausted
	}
	v := d.values[d.pos]
	d.pos++
	return v, nil
}

// Consumed returns how many values have been read.
func (d *Digits[T]) Consumed() int {
	return d.pos
}

// Machine is the four-register ALU. It is generic over the value type so
// the same interpreter runs concrete and symbolic programs.
type Machine[T any] struct {
	arith Arithmetic[T]
	regs  [NumRegisters]T
}

// NewMachine returns a machine with every register set to arith.Zero().
func NewMachine[T any](arith Arithmetic[T]) *Machine[T] {
	m := &Machine[T]{arith: arith}
	for i := range m.regs {
		m.regs[i] = arith.Zero()
	}
	return m
}

// Arithmetic returns the value arithmetic the machine runs over.
func (m *Machine[T]) Arithmetic() Arithmetic[T] {
	return m.arith
}

// Get returns the current contents of r.
func (m *Machine[T]) Get(r Register) T {
	return m.regs[r]
}

// Set stores v into r.
func (m *Machine[T]) Set(r Register, v T) {
	m.regs[r] = v
}

// Registers returns a copy of all four registers in w, x, y, z order.
func (m *Machine[T]) Registers() [NumRegisters]T {
	return m.regs
}

func (m *Machine[T]) resolve(o Operand) T {
	if o.IsLiteral() {
		return m.arith.FromInt(o.Literal())
	}
	return m.regs[o.Register()]
}

// Execute runs a single instruction, reading from in for inp.
func (m *Machine[T]) Execute(ins Instruction, in Input[T]) error {
	if ins.Op == OpInp {
		v, err := in.Next()
		if err != nil {
			return fmt.Errorf("%s: %w", ins, err)
		}
		m.regs[ins.Dst] = v
		return nil
	}

	op, ok := ins.Op.Op()
	if !ok {
		return fmt.Errorf("%s: not an arithmetic instruction", ins)
	}
	v, err := m.arith.Apply(op, m.regs[ins.Dst], m.resolve(ins.Src))
	if err != nil {
		return fmt.Errorf("%s: %w", ins, err)
	}
	m.regs[ins.Dst] = v
	return nil
}

// Run executes every instruction of prog in order.
func (m *Machine[T]) Run(prog Program, in Input[T]) error {
	for pc, ins := range prog {
		if err := m.Execute(ins, in); err != nil {
			return fmt.Errorf("pc %d: %w", pc, err)
		}
	}
	return nil
}

func (m *Machine[T]) String() string {
	parts := make([]string, NumRegisters)
	for i, v := range m.regs {
		parts[i] = m.arith.Format(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
