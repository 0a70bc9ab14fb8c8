// Package alufmt renders ALU programs as readable listings.
package alufmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/internal/columns"
	"github.com/speakeasy-api/alu/pkg/monad"
)

// Config selects what a listing shows.
type Config struct {
	Chunks bool // header line before every chunk
	Index  bool // instruction index within the chunk
	Params bool // extracted chunk parameters in the header; needs Chunks
	Indent int  // spaces before each instruction when Chunks is set
}

// ValidateConfig checks cfg and fills in defaults.
func ValidateConfig(cfg Config) (Config, error) {
	if cfg.Params && !cfg.Chunks {
		return cfg, fmt.Errorf("params requires chunk headers")
	}
	if cfg.Indent < 0 {
		return cfg, fmt.Errorf("invalid indent %d", cfg.Indent)
	}
	if cfg.Chunks && cfg.Indent == 0 {
		cfg.Indent = 2
	}
	return cfg, nil
}

// Format renders prog according to cfg.
func Format(prog alu.Program, cfg Config) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	if !cfg.Chunks && !cfg.Index {
		return prog.String(), nil
	}

	parts := []alu.Program{prog}
	if cfg.Chunks {
		parts = prog.Split()
	}

	align := []columns.Align{columns.Left}
	if cfg.Index {
		align = []columns.Align{columns.Right, columns.Left}
	}
	tb := columns.New(align...).Indent(strings.Repeat(" ", cfg.Indent))
	for i, part := range parts {
		if cfg.Chunks {
			if i > 0 {
				tb.Line("")
			}
			header := fmt.Sprintf("; chunk %d", i)
			if cfg.Params {
				if c, err := monad.Extract(part, i); err == nil {
					header += " " + c.String()
				} else {
					header += " (?)"
				}
			}
			tb.Line(header)
		}
		for j, ins := range part {
			if cfg.Index {
				tb.Row(strconv.Itoa(j), ins.String())
			} else {
				tb.Row(ins.String())
			}
		}
	}
	return tb.String(), nil
}
