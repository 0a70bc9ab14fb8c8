package monad

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/symexec"
)

// Options configures Solve.
type Options struct {
	// Debug adds the simplified symbolic formula of every chunk to the result.
	Debug bool
	// Verify checks the chunk parameters against the symbolic formulas and
	// replays the routes found on the concrete machine.
	Verify bool
	// VerifySamples is the number of accumulator values (0..n-1) checked per
	// chunk and digit when verifying (default: 26*26).
	VerifySamples int
	// MaxSimplifyPasses bounds the simplifier (default: 10000).
	MaxSimplifyPasses int

	LogLevel string         // "error", "warn", "info", "debug"; empty disables logging
	Logger   symexec.Logger // Overrides LogLevel when set
}

// DefaultOptions returns the default solver configuration.
func DefaultOptions() Options {
	return Options{
		VerifySamples:     Base * Base,
		MaxSimplifyPasses: 10000,
	}
}

func (o Options) logger() symexec.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel == "" {
		return symexec.NopLogger()
	}
	return symexec.NewLogger(symexec.ParseLogLevel(o.LogLevel), nil)
}

func (o Options) symexecOptions(logger symexec.Logger) symexec.Options {
	so := symexec.DefaultOptions()
	so.MaxSimplifyPasses = o.MaxSimplifyPasses
	so.Logger = logger
	return so
}

// Result is the outcome of Solve.
type Result struct {
	Chunks   []Chunk
	Highest  Route
	Lowest   Route
	Solved   bool     // false when no digit sequence leaves z at zero
	Formulas []string // per chunk, only with Options.Debug
}

// Solve extracts the chunk parameters of prog and searches the highest and
// lowest digit sequences that leave z at zero. A program with no valid
// sequence is not an error: the result has Solved set to false.
func Solve(ctx context.Context, prog alu.Program, opts Options) (*Result, error) {
	logger := opts.logger()

	parts := prog.Split()
	chunks, err := ExtractAll(prog)
	if err != nil {
		return nil, fmt.Errorf("failed to extract chunk parameters: %w", err)
	}
	logger.With(map[string]any{"chunks": len(chunks)}).Infof("extracted chunk parameters")

	res := &Result{Chunks: chunks}

	if opts.Debug {
		sym := symexec.Int64()
		for i, part := range parts {
			f, err := symexec.ChunkFormula(sym, part, opts.symexecOptions(logger.With(map[string]any{"chunk": i})))
			if err != nil {
				return nil, fmt.Errorf("chunk %d: %w", i, err)
			}
			res.Formulas = append(res.Formulas, f.String())
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, order := range []Order{Highest, Lowest} {
		cache := NewCache(order)
		route, ok := Search(chunks, 0, cache)
		logger.With(map[string]any{
			"order":   order,
			"found":   ok,
			"entries": cache.Len(),
			"hits":    cache.Hits(),
		}).Infof("search finished")
		if !ok {
			return res, nil
		}
		if order == Highest {
			res.Highest = route
		} else {
			res.Lowest = route
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	res.Solved = true

	if opts.Verify {
		samples := opts.VerifySamples
		if samples <= 0 {
			samples = DefaultOptions().VerifySamples
		}
		if err := VerifyModel(parts, chunks, samples, opts.symexecOptions(logger)); err != nil {
			return nil, err
		}
		for _, route := range []Route{res.Highest, res.Lowest} {
			if err := VerifyRoute(prog, route); err != nil {
				return nil, err
			}
		}
		logger.Infof("verification passed")
	}

	return res, nil
}
