// Package main implements the alu command: it reads an ALU program and
// reports the highest and lowest digit sequences it accepts.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/internal/config"
)

var (
	configPath string
	logLevel   string
	debug      bool
	verify     bool
	format     string
	query      string
	table      bool

	cfg *config.Config
)

// rootCmd solves the program when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "alu [program]",
	Short: "Find the highest and lowest model numbers an ALU program accepts",
	Long: `alu reads an ALU program from a file or standard input, reduces it to
per-chunk parameters and searches the highest and lowest digit sequences
that leave register z at zero.

Settings are read from .alu.yaml (or --config); flags override them.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("debug") {
			cfg.Debug = debug
		}
		if flags.Changed("verify") {
			cfg.Solver.Verify = verify
		}
		if flags.Changed("format") {
			cfg.Output.Format = format
		}
		if flags.Changed("query") {
			cfg.Output.Query = query
		}
		if flags.Changed("table") {
			cfg.Output.Table = table
		}
		return cfg.Validate()
	},
	RunE: runSolve,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: error, warn, info or debug")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Include the simplified formula of every chunk")
	rootCmd.PersistentFlags().BoolVar(&verify, "verify", false, "Check chunk parameters and results on the concrete machine")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVarP(&query, "query", "q", "", "jq expression applied to the JSON report")
	rootCmd.PersistentFlags().BoolVar(&table, "table", false, "Print the chunk table after a text report")

	listCmd.Flags().BoolVar(&listIndex, "index", true, "Show instruction indices")
	listCmd.Flags().BoolVar(&listParams, "params", true, "Show extracted chunk parameters")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(formulasCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(schemaCmd)
}

// readProgram parses the program named by args, or standard input when
// args is empty. A terminal on standard input is rejected.
func readProgram(args []string, stdin *os.File) (alu.Program, error) {
	var r io.Reader = stdin
	name := "<stdin>"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open program: %w", err)
		}
		defer f.Close()
		r, name = f, args[0]
	} else if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, fmt.Errorf("no program given: pass a file or pipe one on standard input")
	}

	prog, err := alu.ParseProgram(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return prog, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
