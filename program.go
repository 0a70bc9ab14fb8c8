package alu

import "strings"

// Program is a straight-line list of instructions.
type Program []Instruction

func (p Program) String() string {
	var b strings.Builder
	for _, ins := range p {
		b.WriteString(ins.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Inputs returns the number of inp instructions in the program.
func (p Program) Inputs() int {
	n := 0
	for _, ins := range p {
		if ins.Op == OpInp {
			n++
		}
	}
	return n
}

// Split breaks the program into chunks, each starting at an inp instruction.
// Instructions preceding the first inp form a leading chunk of their own.
// The returned chunks share the program's backing array.
func (p Program) Split() []Program {
	var chunks []Program
	start := 0
	for i, ins := range p {
		if ins.Op == OpInp && i > start {
			chunks = append(chunks, p[start:i:i])
			start = i
		}
	}
	if len(p) > start {
		chunks = append(chunks, p[start:len(p):len(p)])
	}
	return chunks
}
