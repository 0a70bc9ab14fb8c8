package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/speakeasy-api/alu"
	"github.com/speakeasy-api/alu/pkg/monad"
	"gopkg.in/yaml.v3"
)

func solved() *Report {
	return FromResult(&monad.Result{
		Chunks: []monad.Chunk{
			{Offset: 12, Addition: 4},
			{Divide: true, Offset: -7, Addition: 5},
		},
		Highest: monad.Route{{Z: 0, N: 9}, {Z: 13, N: 6}},
		Lowest:  monad.Route{{Z: 0, N: 4}, {Z: 8, N: 1}},
		Solved:  true,
	})
}

func TestFromResult(t *testing.T) {
	got := solved()
	want := &Report{
		Solved:  true,
		Highest: "96",
		Lowest:  "41",
		Chunks: []Row{
			{Index: 0, Kind: "push", Divisor: 1, Offset: 12, Addition: 4, High: 9, Low: 4},
			{Index: 1, Kind: "pop", Divisor: 26, Offset: -7, Addition: 5, High: 6, Low: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := solved().WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	want := "Highest valid model number: 96\nLowest valid model number: 41\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	unsolved := FromResult(&monad.Result{Chunks: []monad.Chunk{{Offset: 12, Addition: 4}}})
	if err := unsolved.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No valid model number") {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := solved().WriteTable(&buf); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"#  kind  div  offset  add  high  low\n" +
		"0  push    1      12    4     9    4\n" +
		"1  pop    26      -7    5     6    1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := solved().Write(&buf, YAML); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if back.Highest != "96" || len(back.Chunks) != 2 || back.Chunks[1].Kind != "pop" {
		t.Errorf("unexpected YAML report: %+v", back)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Text, false},
		{"JSON", JSON, false},
		{" yaml ", YAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuery(t *testing.T) {
	r := solved()

	tests := []struct {
		expr string
		want []any
	}{
		{".highest", []any{"96"}},
		{"[.chunks[] | select(.kind == \"pop\") | .offset]", []any{[]any{float64(-7)}}},
		{".chunks[].high", []any{float64(9), float64(6)}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Query(tt.expr)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := r.Query(".["); err == nil {
		t.Error("expected parse error")
	}
	if _, err := r.Query(".highest | error"); err == nil {
		t.Error("expected execution error")
	}
}

func TestSchemaValidate(t *testing.T) {
	if err := solved().Check(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  map[string]any
		path string
	}{
		{
			name: "missing_chunks",
			doc:  map[string]any{"solved": true},
			path: "$",
		},
		{
			name: "bad_digits",
			doc:  map[string]any{"solved": true, "highest": "90", "chunks": []any{}},
			path: "$.highest",
		},
		{
			name: "bad_divisor",
			doc: map[string]any{"solved": false, "chunks": []any{
				map[string]any{"index": float64(0), "kind": "pop", "divisor": float64(27), "offset": float64(1), "addition": float64(2)},
			}},
			path: "$.chunks[0].divisor",
		},
		{
			name: "wrong_type",
			doc:  map[string]any{"solved": "yes", "chunks": []any{}},
			path: "$.solved",
		},
		{
			name: "unknown_property",
			doc:  map[string]any{"solved": true, "chunks": []any{}, "extra": 1},
			path: "$",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Path != tt.path {
				t.Errorf("path = %s, want %s (%v)", ve.Path, tt.path, err)
			}
		})
	}
}

func TestWriteChecksSchema(t *testing.T) {
	bad := solved()
	bad.Highest = "906"
	bad.Chunks[1].Divisor = 27

	for _, f := range []Format{JSON, YAML} {
		var buf bytes.Buffer
		err := bad.Write(&buf, f)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", f, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: invalid report was written:\n%s", f, buf.String())
		}
		var paths []string
		collectPaths(err, &paths)
		if diff := cmp.Diff([]string{"$.chunks[1].divisor", "$.highest"}, paths, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
			t.Errorf("%s: paths mismatch (-want +got):\n%s", f, diff)
		}
	}

	if _, err := bad.Query(".highest"); err == nil {
		t.Error("Query accepted a report that does not match the schema")
	}

	var buf bytes.Buffer
	if err := bad.Write(&buf, Text); err != nil {
		t.Errorf("text output should not be schema checked: %v", err)
	}
}

func collectPaths(err error, paths *[]string) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectPaths(e, paths)
		}
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if inner := errors.Unwrap(err); inner != nil && inner != error(ve) {
			collectPaths(inner, paths)
			return
		}
		*paths = append(*paths, ve.Path)
	}
}

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSchema(&buf); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("schema is not YAML: %v", err)
	}
	if doc["type"] != "object" {
		t.Errorf("type = %v", doc["type"])
	}
	if doc["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", doc["additionalProperties"])
	}
	props, _ := doc["properties"].(map[string]any)
	chunks, _ := props["chunks"].(map[string]any)
	items, _ := chunks["items"].(map[string]any)
	if diff := cmp.Diff([]any{"index", "kind", "divisor", "offset", "addition"}, items["required"]); diff != "" {
		t.Errorf("row required mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatErrors(t *testing.T) {
	_, parseErr := alu.ParseString("inp w\nadd q 1\n")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "parse",
			err:  parseErr,
			want: []string{"not a valid instruction", "Location: line 2"},
		},
		{
			name: "template",
			err: fmt.Errorf("failed to extract chunk parameters: %w", errors.Join(
				&monad.TemplateError{Chunk: 0, Position: 6, Want: "eql x w", Got: "eql x y"},
				&monad.TemplateError{Chunk: 3, Position: -1, Want: "18 instructions", Got: "17"},
			)),
			want: []string{
				"Location: chunk 0, instruction 6",
				"Location: chunk 3\n",
				"does not have 18 instructions",
				"How to fix:",
			},
		},
		{
			name: "canceled",
			err:  context.Canceled,
			want: []string{"interrupted"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatErrors(tt.err)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
		})
	}

	if got := strings.Count(FormatErrors(tests[1].err), "\n- "); got != 2 {
		t.Errorf("got %d entries, want 2", got)
	}
}
