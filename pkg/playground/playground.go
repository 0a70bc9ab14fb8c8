// Package playground provides the entry points behind the browser
// playground: each takes program text and returns text or JSON.
package playground

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/pkg/alufmt"
	"github.com/speakeasy-api/alu/pkg/monad"
	"github.com/speakeasy-api/alu/pkg/report"
	"github.com/speakeasy-api/alu/symexec"
)

// PipelineResult holds the three playground panels.
type PipelineResult struct {
	Panel1   string   `json:"panel1"` // chunked listing
	Panel2   string   `json:"panel2"` // per-chunk formulas
	Panel3   string   `json:"panel3"` // JSON report
	Solved   bool     `json:"solved"`
	Warnings []string `json:"warnings"`
}

// FormatProgram renders src as a chunked listing with parameters.
func FormatProgram(src string) (string, error) {
	prog, err := alu.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse program: %w", err)
	}
	return alufmt.Format(prog, alufmt.Config{Chunks: true, Index: true, Params: true})
}

// Solve runs the solver on src and returns the JSON report, optionally
// filtered through a jq query.
func Solve(src, query string) (string, error) {
	prog, err := alu.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("%s", report.FormatErrors(err))
	}
	res, err := monad.Solve(context.Background(), prog, monad.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("%s", report.FormatErrors(err))
	}
	rep := report.FromResult(res)

	var out any = rep
	if query != "" {
		values, err := rep.Query(query)
		if err != nil {
			return "", err
		}
		if len(values) == 1 {
			out = values[0]
		} else {
			out = values
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

// Pipeline fills all three panels. Chunks whose formula cannot be built
// are reported as warnings; strict turns them into an error.
func Pipeline(src string, strict bool) (*PipelineResult, error) {
	result := &PipelineResult{
		Warnings: []string{},
	}

	prog, err := alu.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("%s", report.FormatErrors(err))
	}

	listing, err := alufmt.Format(prog, alufmt.Config{Chunks: true, Index: true, Params: true})
	if err != nil {
		return nil, err
	}
	result.Panel1 = listing

	var formulas strings.Builder
	sym := symexec.Int64()
	for i, part := range prog.Split() {
		f, err := symexec.ChunkFormula(sym, part, symexec.DefaultOptions())
		if err != nil {
			if strict {
				return nil, fmt.Errorf("%s", report.FormatErrors(fmt.Errorf("chunk %d: %w", i, err)))
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("chunk %d: %v", i, err))
			continue
		}
		fmt.Fprintf(&formulas, "chunk %d: %s\n", i, f)
	}
	result.Panel2 = formulas.String()

	res, err := monad.Solve(context.Background(), prog, monad.DefaultOptions())
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%s", report.FormatErrors(err))
		}
		result.Warnings = append(result.Warnings, report.FormatErrors(err))
		return result, nil
	}
	result.Solved = res.Solved

	var buf strings.Builder
	if err := report.FromResult(res).Write(&buf, report.JSON); err != nil {
		return nil, err
	}
	result.Panel3 = buf.String()

	return result, nil
}
