package symexec

import (
	"fmt"

	"github.com/speakeasy-api/alu"
)

// DigitVar and AccumulatorVar are the variables a chunk formula is written
// in: the digit read by the chunk's inp, and z as it enters the chunk.
const (
	DigitVar       = 0
	AccumulatorVar = 1
)

// Result holds the symbolic contents of the registers after a run.
type Result[T any] struct {
	Registers [alu.NumRegisters]Expr[T]
	Inputs    int // number of free variables bound by inp
}

// Z returns the accumulator formula.
func (r *Result[T]) Z() Expr[T] {
	return r.Registers[alu.Z]
}

// env is the execution environment for one symbolic run.
type env[T any] struct {
	opts    Options
	sym     Symbols[T]
	machine *alu.Machine[Expr[T]]
	logger  Logger
}

func newEnv[T any](sym Symbols[T], opts Options) *env[T] {
	return &env[T]{
		opts:    opts,
		sym:     sym,
		machine: alu.NewMachine[Expr[T]](sym),
		logger:  opts.logger(),
	}
}

func (e *env[T]) execute(prog alu.Program, in *FreeVariables[T]) (*Result[T], error) {
	e.logger.With(map[string]any{"instructions": len(prog)}).Debugf("starting symbolic run")

	if err := e.machine.Run(prog, in); err != nil {
		return nil, fmt.Errorf("symbolic run failed: %w", err)
	}

	res := &Result[T]{Registers: e.machine.Registers(), Inputs: in.Count()}
	if !e.opts.Tidy {
		return res, nil
	}
	for i, reg := range res.Registers {
		before := Size[T](reg)
		out, passes, err := e.sym.SimplifyBounded(reg, e.opts.MaxSimplifyPasses)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", alu.Register(i), err)
		}
		res.Registers[i] = out
		e.logger.With(map[string]any{
			"register": alu.Register(i),
			"before":   before,
			"after":    Size[T](out),
			"passes":   passes,
		}).Debugf("simplified %s", exprSummary[T](out, e.opts.LogMaxExprLen))
	}
	return res, nil
}

// Run executes prog symbolically from all-zero registers. The k-th inp
// binds variable nk.
func Run[T any](sym Symbols[T], prog alu.Program, opts Options) (*Result[T], error) {
	return newEnv(sym, opts).execute(prog, NewFreeVariables[T](0))
}

// ChunkFormula runs one chunk with z entering as n1 and the chunk's digit
// bound to n0, and returns the formula for z on exit.
func ChunkFormula[T any](sym Symbols[T], chunk alu.Program, opts Options) (Expr[T], error) {
	e := newEnv(sym, opts)
	e.machine.Set(alu.Z, NewVariable[T](AccumulatorVar))
	res, err := e.execute(chunk, NewFreeVariables[T](DigitVar))
	if err != nil {
		return nil, err
	}
	if res.Inputs > AccumulatorVar {
		return nil, fmt.Errorf("chunk reads %d inputs, want at most 1", res.Inputs-DigitVar)
	}
	return res.Z(), nil
}

// EvalChunk evaluates a chunk formula for a concrete digit and incoming z.
func EvalChunk[T any](sym Symbols[T], formula Expr[T], digit, z T) (T, error) {
	bindings := make([]T, AccumulatorVar+1)
	bindings[DigitVar] = digit
	bindings[AccumulatorVar] = z
	bound, err := sym.Bind(formula, bindings)
	if err != nil {
		var zero T
		return zero, err
	}
	return sym.Evaluate(bound)
}
