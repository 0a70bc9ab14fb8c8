package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/speakeasy-api/alu/pkg/alufmt"
	"github.com/speakeasy-api/alu/pkg/report"
)

var (
	listIndex  bool
	listParams bool
)

var listCmd = &cobra.Command{
	Use:   "list [program]",
	Short: "Print the program split into chunks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := readProgram(args, os.Stdin)
		if err != nil {
			return err
		}
		out, err := alufmt.Format(prog, alufmt.Config{Chunks: true, Index: listIndex, Params: listParams})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the json and yaml report formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.WriteSchema(cmd.OutOrStdout())
	},
}
