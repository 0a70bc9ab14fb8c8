package alu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError describes a line that is not a valid instruction.
type ParseError struct {
	Line int    // 1-based line number, 0 when parsing a single instruction
	Text string // offending line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

// Parse decodes a single instruction of the form "<mnemonic> <register> [<operand>]".
func Parse(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, &ParseError{Text: line, Msg: "empty instruction"}
	}

	op, ok := mnemonics[fields[0]]
	if !ok {
		return Instruction{}, &ParseError{Text: line, Msg: fmt.Sprintf("unknown mnemonic %q", fields[0])}
	}

	want := 3
	if op == OpInp {
		want = 2
	}
	if len(fields) != want {
		return Instruction{}, &ParseError{
			Text: line,
			Msg:  fmt.Sprintf("%s takes %d operand(s), got %d", op, want-1, len(fields)-1),
		}
	}

	dst, ok := ParseRegister(fields[1])
	if !ok {
		return Instruction{}, &ParseError{Text: line, Msg: fmt.Sprintf("unknown register %q", fields[1])}
	}

	ins := Instruction{Op: op, Dst: dst}
	if op == OpInp {
		return ins, nil
	}

	if r, ok := ParseRegister(fields[2]); ok {
		ins.Src = Reg(r)
		return ins, nil
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Instruction{}, &ParseError{Text: line, Msg: fmt.Sprintf("operand %q is neither a register nor an integer", fields[2])}
	}
	ins.Src = Lit(n)
	return ins, nil
}

// ParseProgram decodes one instruction per line. Blank lines are skipped.
// The first malformed line aborts parsing.
func ParseProgram(r io.Reader) (Program, error) {
	var prog Program
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		ins, err := Parse(text)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = lineNo
			}
			return nil, err
		}
		prog = append(prog, ins)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return prog, nil
}

// ParseString is a convenience wrapper around ParseProgram.
func ParseString(s string) (Program, error) {
	return ParseProgram(strings.NewReader(s))
}
