package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/pkg/monad"
	"github.com/speakeasy-api/alu/pkg/report"
	"github.com/speakeasy-api/alu/symexec"
)

var solveCmd = &cobra.Command{
	Use:   "solve [program]",
	Short: "Search the highest and lowest accepted model numbers",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSolve,
}

var formulasCmd = &cobra.Command{
	Use:   "formulas [program]",
	Short: "Print the simplified z formula of every chunk",
	Long: `Runs every chunk symbolically with z entering as n1 and the chunk's digit
as n0, and prints the simplified formula for z on exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormulas,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <digits> [program]",
	Short: "Run the program on the concrete machine with the given digits",
	Example: `  alu verify 13579246899999 input.txt
  cat input.txt | alu verify 13579246899999`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVerify,
}

func runSolve(cmd *cobra.Command, args []string) error {
	prog, err := readProgram(args, os.Stdin)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := monad.Solve(ctx, prog, cfg.SolveOptions())
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), report.FormatErrors(err))
		return err
	}

	rep := report.FromResult(res)
	return writeReport(cmd.OutOrStdout(), rep)
}

func writeReport(w io.Writer, rep *report.Report) error {
	if cfg.Output.Query != "" {
		values, err := rep.Query(cfg.Output.Query)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		for _, v := range values {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	}

	f, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := rep.Write(w, f); err != nil {
		return err
	}
	if f == report.Text {
		if cfg.Debug {
			for _, c := range rep.Chunks {
				fmt.Fprintf(w, "chunk %d: %s\n", c.Index, c.Formula)
			}
		}
		if cfg.Output.Table {
			fmt.Fprintln(w)
			return rep.WriteTable(w)
		}
	}
	return nil
}

func runFormulas(cmd *cobra.Command, args []string) error {
	prog, err := readProgram(args, os.Stdin)
	if err != nil {
		return err
	}

	opts := symexec.DefaultOptions()
	opts.MaxSimplifyPasses = cfg.Solver.MaxSimplifyPasses
	opts.LogLevel = cfg.LogLevel

	sym := symexec.Int64()
	w := cmd.OutOrStdout()
	for i, part := range prog.Split() {
		f, err := symexec.ChunkFormula(sym, part, opts)
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		fmt.Fprintf(w, "chunk %d: %s\n", i, f)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	prog, err := readProgram(args[1:], os.Stdin)
	if err != nil {
		return err
	}

	in, err := alu.DigitsOf[int64](alu.Integers[int64]{}, args[0])
	if err != nil {
		return err
	}
	m := alu.NewMachine[int64](alu.Integers[int64]{})
	if err := m.Run(prog, in); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), report.FormatErrors(err))
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "registers: %s\n", m)
	if in.Consumed() < len(args[0]) {
		fmt.Fprintf(w, "warning: %d of %d digits unused\n", len(args[0])-in.Consumed(), len(args[0]))
	}
	if m.Get(alu.Z) != 0 {
		return errors.New("model number rejected: z is not zero")
	}
	fmt.Fprintln(w, "model number accepted")
	return nil
}
