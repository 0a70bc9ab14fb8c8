package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/pkg/monad"
	"github.com/speakeasy-api/alu/symexec"
)

// FormatErrors turns a solver error into a user-facing message with one
// entry per underlying failure.
func FormatErrors(err error) string {
	if err == nil {
		return "Solving failed, but no additional details were provided."
	}

	var b strings.Builder
	b.WriteString("Solving failed.\n")

	for _, e := range leaves(err) {
		loc := deriveLocation(e)
		msg, hint := classifyAndHint(e)

		fmt.Fprintf(&b, "- %s\n", msg)
		if loc != "" {
			fmt.Fprintf(&b, "  Location: %s\n", loc)
		}
		if hint != "" {
			fmt.Fprintf(&b, "  How to fix: %s\n", hint)
		}
		fmt.Fprintf(&b, "  Details: %s\n", e)
	}

	return b.String()
}

// leaves flattens joined errors. Wrapped single errors are kept whole so
// their context stays in the details line.
func leaves(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, leaves(e)...)
		}
		return out
	}
	if inner := errors.Unwrap(err); inner != nil {
		if _, ok := inner.(interface{ Unwrap() []error }); ok {
			return leaves(inner)
		}
	}
	return []error{err}
}

func deriveLocation(err error) string {
	var pe *alu.ParseError
	if errors.As(err, &pe) && pe.Line > 0 {
		return fmt.Sprintf("line %d", pe.Line)
	}
	var te *monad.TemplateError
	if errors.As(err, &te) {
		if te.Position < 0 {
			return fmt.Sprintf("chunk %d", te.Chunk)
		}
		return fmt.Sprintf("chunk %d, instruction %d", te.Chunk, te.Position)
	}
	var me *monad.MismatchError
	if errors.As(err, &me) {
		return fmt.Sprintf("chunk %d, z=%d, digit=%d", me.Chunk, me.Z, me.N)
	}
	return ""
}

func classifyAndHint(err error) (msg, hint string) {
	var (
		pe *alu.ParseError
		te *monad.TemplateError
		me *monad.MismatchError
	)
	switch {
	case errors.As(err, &pe):
		msg = "The program contains a line that is not a valid instruction."
		hint = `Every line must be "inp <reg>" or "<add|mul|div|mod|eql> <reg> <reg|integer>" with registers w, x, y or z.`
	case errors.As(err, &te) && te.Position < 0:
		msg = fmt.Sprintf("A chunk does not have %d instructions.", monad.ChunkLen)
		hint = "Each chunk starts at an inp instruction. Remove instructions before the first inp and check for missing or extra lines."
	case errors.As(err, &te):
		msg = "A chunk does not follow the expected instruction template."
		hint = "Only the literals of instructions 4, 5 and 15 may differ between chunks, and the divisor must be 1 or 26."
	case errors.As(err, &me):
		msg = "The symbolic formula of a chunk disagrees with its extracted parameters."
		hint = "The chunk is not equivalent to the template; run without verification only if the input is trusted."
	case errors.Is(err, alu.ErrDivideByZero), errors.Is(err, alu.ErrModuloByZero):
		msg = "The program divided by zero."
		hint = "Check the div and mod operands."
	case errors.Is(err, alu.ErrInputExhausted):
		msg = "The program read more digits than were supplied."
	case errors.Is(err, symexec.ErrSimplifyDiverged):
		msg = "Formula simplification did not settle."
		hint = "Raise max_simplify_passes or disable debug formulas."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		msg = "Solving was interrupted."
	default:
		msg = "Solver error."
	}
	return msg, hint
}
