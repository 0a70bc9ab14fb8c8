// Package report renders solver results as text, JSON or YAML, describes
// the machine-readable form with a JSON schema and runs jq queries over it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/alu/internal/columns"
	"github.com/speakeasy-api/alu/pkg/monad"
)

// Format names an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Row describes one chunk in a report.
type Row struct {
	Index    int    `json:"index" yaml:"index"`
	Kind     string `json:"kind" yaml:"kind"`
	Divisor  int64  `json:"divisor" yaml:"divisor"`
	Offset   int64  `json:"offset" yaml:"offset"`
	Addition int64  `json:"addition" yaml:"addition"`
	High     int64  `json:"high,omitempty" yaml:"high,omitempty"`
	Low      int64  `json:"low,omitempty" yaml:"low,omitempty"`
	Formula  string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// Report is the serializable form of a monad.Result.
type Report struct {
	Solved  bool   `json:"solved" yaml:"solved"`
	Highest string `json:"highest,omitempty" yaml:"highest,omitempty"`
	Lowest  string `json:"lowest,omitempty" yaml:"lowest,omitempty"`
	Chunks  []Row  `json:"chunks" yaml:"chunks"`
}

// FromResult converts a solver result.
func FromResult(res *monad.Result) *Report {
	r := &Report{
		Solved: res.Solved,
		Chunks: make([]Row, len(res.Chunks)),
	}
	if res.Solved {
		r.Highest = res.Highest.Digits()
		r.Lowest = res.Lowest.Digits()
	}
	for i, c := range res.Chunks {
		row := Row{
			Index:    i,
			Kind:     "push",
			Divisor:  c.Divisor(),
			Offset:   c.Offset,
			Addition: c.Addition,
		}
		if c.Divide {
			row.Kind = "pop"
		}
		if res.Solved {
			row.High = res.Highest[i].N
			row.Low = res.Lowest[i].N
		}
		if i < len(res.Formulas) {
			row.Formula = res.Formulas[i]
		}
		r.Chunks[i] = row
	}
	return r
}

// Write encodes r to w in the given format. The machine-readable formats
// are checked against Schema first.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case JSON:
		if err := r.Check(); err != nil {
			return fmt.Errorf("report does not match schema: %w", err)
		}
		return r.WriteJSON(w)
	case YAML:
		if err := r.Check(); err != nil {
			return fmt.Errorf("report does not match schema: %w", err)
		}
		return r.WriteYAML(w)
	default:
		return r.WriteText(w)
	}
}

// WriteText writes the two model numbers in plain text.
func (r *Report) WriteText(w io.Writer) error {
	if !r.Solved {
		_, err := fmt.Fprintln(w, "No valid model number found")
		return err
	}
	_, err := fmt.Fprintf(w, "Highest valid model number: %s\nLowest valid model number: %s\n", r.Highest, r.Lowest)
	return err
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTable writes one aligned line per chunk. Formulas are not shown.
func (r *Report) WriteTable(w io.Writer) error {
	header := []string{"#", "kind", "div", "offset", "add"}
	if r.Solved {
		header = append(header, "high", "low")
	}
	tb := columns.New(columns.Right, columns.Left, columns.Right, columns.Right, columns.Right, columns.Right, columns.Right)
	tb.Row(header...)
	for _, c := range r.Chunks {
		row := []string{
			strconv.Itoa(c.Index),
			c.Kind,
			strconv.FormatInt(c.Divisor, 10),
			strconv.FormatInt(c.Offset, 10),
			strconv.FormatInt(c.Addition, 10),
		}
		if r.Solved {
			row = append(row, strconv.FormatInt(c.High, 10), strconv.FormatInt(c.Low, 10))
		}
		tb.Row(row...)
	}
	_, err := tb.WriteTo(w)
	return err
}

// toValue converts r to the generic JSON value tree used by Query and
// Validate.
func (r *Report) toValue() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
