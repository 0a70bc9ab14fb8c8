package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/internal/columns"
	"github.com/speakeasy-api/alu/pkg/monad"
	"github.com/speakeasy-api/alu/symexec"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect-chunks <program>")
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	prog, err := alu.ParseProgram(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sym := symexec.Int64()
	for i, part := range prog.Split() {
		fmt.Printf("\n=== chunk %d ===\n", i)

		c, err := monad.Extract(part, i)
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("template: %s\n", line)
			}
		} else {
			fmt.Printf("params: %s divisor=%d\n", c, c.Divisor())
		}

		tb := columns.New(columns.Right, columns.Left, columns.Left, columns.Right)
		for j, ins := range part {
			src := ""
			if ins.Op != alu.OpInp {
				src = ins.Src.String()
			}
			tb.Row(strconv.Itoa(j)+":", ins.Op.String(), ins.Dst.String(), src)
		}
		if _, err := tb.WriteTo(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		formula, err := symexec.ChunkFormula(sym, part, symexec.DefaultOptions())
		if err != nil {
			fmt.Printf("formula error: %v\n", err)
			continue
		}
		fmt.Printf("z' = %s (%d nodes)\n", formula, symexec.Size[int64](formula))
	}
}
