package asm

import (
	"fmt"
	"strings"
)

// Lexer implements spec.md §4.7's single pass over the source text: strip
// comments, recognize label lines, split an instruction line into its
// mnemonic and comma-separated arguments, and reserve the instruction-word
// address each statement will occupy. Word-count reservation only ever
// looks at a line's own opcode/arguments (never at lines that follow), so a
// label's address is already final the moment the label line is seen and no
// second lexical pass is needed for addressing.
type Lexer struct{}

// NewLexer returns a Lexer. It carries no state between calls to Tokenize.
func NewLexer() Lexer { return Lexer{} }

// Tokenize walks source line by line and returns the ordered Program.
func (Lexer) Tokenize(source string) (Program, error) {
	var program Program
	pc := uint16(0)

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1

		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if name == "" {
				return nil, fmt.Errorf("asm: line %d: empty label", lineNo)
			}
			program = append(program, Label{Name: name, Addr: pc, Line: lineNo})
			continue
		}

		op, rest := splitOpcode(line)
		if op == "" {
			return nil, fmt.Errorf("asm: line %d: missing opcode", lineNo)
		}

		rest = stripInteriorWhitespace(rest)
		var args []string
		if rest != "" {
			args = strings.Split(rest, ",")
		}

		program = append(program, Instruction{Op: op, Args: args, Addr: pc, Line: lineNo})
		pc += wordsFor(op, args)
	}

	return program, nil
}

// stripComment cuts everything from the first '#' onward.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// splitOpcode separates the leading mnemonic token from its argument list.
// spec.md §4.7 describes the mnemonic as "the first 3 characters", which
// holds for every entry in spec.md §4.9's table except OR (2 characters);
// splitting on the first run of whitespace instead agrees with the
// 3-character rule for every 3-letter mnemonic and also handles OR.
func splitOpcode(line string) (op, rest string) {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// stripInteriorWhitespace removes every space/tab, per spec.md §4.7's "the
// remainder, with all interior whitespace removed".
func stripInteriorWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	return s
}

// wordsFor computes how many machine words op/args will eventually lower to,
// without consulting the symbol table: any reference to a $variable or
// @label argument requires a separate A-instruction ahead of the operation's
// own C-instruction (2 words); everything else is 1 word.
//
// STR is the exception: only a $variable in its first argument (the
// "STR $v, K" form: an A-load of the variable's address, then M <- K) costs
// 2 words. "STR A, $v" is a single A-instruction whose payload is the
// variable's address, so a $ in STR's second argument adds no word. See DESIGN.md for
// how this resolves spec.md §4.7's "symbolic target" wording against its own
// worked example ("STR A, $v" emits a single word).
func wordsFor(op string, args []string) uint16 {
	if op == "STR" {
		if len(args) > 0 && strings.HasPrefix(args[0], "$") {
			return 2
		}
		return 1
	}
	for _, a := range args {
		if strings.HasPrefix(a, "$") || strings.HasPrefix(a, "@") {
			return 2
		}
	}
	return 1
}
