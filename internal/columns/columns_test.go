package columns

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTable(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Table
		want  string
	}{
		{
			name: "mixed_alignment",
			build: func() *Table {
				tb := New(Right, Left, Right)
				tb.Row("#", "kind", "div")
				tb.Row("0", "push", "1")
				tb.Row("12", "pop", "26")
				return tb
			},
			want: " #  kind  div\n 0  push    1\n12  pop    26\n",
		},
		{
			name: "raw_lines_and_indent",
			build: func() *Table {
				tb := New(Right).Indent("  ")
				tb.Line("; header")
				tb.Row("9", "inp w")
				tb.Row("10", "add z w")
				tb.Line("")
				return tb
			},
			want: "; header\n   9  inp w\n  10  add z w\n\n",
		},
		{
			name: "wide_runes",
			build: func() *Table {
				tb := New()
				tb.Row("日本", "x")
				tb.Row("a", "y")
				return tb
			},
			want: "日本  x\na     y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := tt.build().WriteTo(&buf); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
