package alufmt

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/alu"
)

const twoChunks = `inp w
mul x 0
add x z
mod x 26
div z 1
add x 12
eql x w
eql x 0
mul y 0
add y 25
mul y x
add y 1
mul z y
mul y 0
add y w
add y 4
mul y x
add z y
inp w
add z w
`

func TestFormat(t *testing.T) {
	prog, err := alu.ParseString(twoChunks)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config Config
		want   []string
		lines  int
	}{
		{
			name:   "plain",
			config: Config{},
			want:   []string{"inp w\nmul x 0\n"},
			lines:  20,
		},
		{
			name:   "index",
			config: Config{Index: true},
			want:   []string{" 0  inp w\n", "19  add z w\n"},
			lines:  20,
		},
		{
			name:   "chunks",
			config: Config{Chunks: true},
			want:   []string{"; chunk 0\n  inp w\n", "\n; chunk 1\n  inp w\n  add z w\n"},
			lines:  23,
		},
		{
			name:   "params",
			config: Config{Chunks: true, Index: true, Params: true, Indent: 4},
			want:   []string{"; chunk 0 (*,12,4)\n", "    17  add z y\n", "; chunk 1 (?)\n     0  inp w\n"},
			lines:  23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(prog, tt.config)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Format() missing %q in:\n%s", w, got)
				}
			}
			if n := strings.Count(got, "\n"); n != tt.lines {
				t.Errorf("Format() has %d lines, want %d", n, tt.lines)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults",
			config: Config{Chunks: true},
		},
		{
			name:    "params_without_chunks",
			config:  Config{Params: true},
			wantErr: true,
			errMsg:  "params requires",
		},
		{
			name:    "negative_indent",
			config:  Config{Indent: -1},
			wantErr: true,
			errMsg:  "invalid indent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateConfig(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("ValidateConfig() expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateConfig() error = %v, want substring %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateConfig() unexpected error = %v", err)
			}
			if tt.config.Chunks && got.Indent != 2 {
				t.Errorf("default indent = %d, want 2", got.Indent)
			}
		})
	}
}
