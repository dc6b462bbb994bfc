package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"hacksim/pkg/asm"
	"hacksim/pkg/codegen"
	"hacksim/pkg/hack"
)

var Description = strings.ReplaceAll(`
The Hack Assembler takes assembly source written in this system's own mnemonic
language (STR/MOV/INC/DEC/NOT/NEG/AND/OR/ADD/SUB/JMP/J**) and translates it
into the 16-bit Hack machine code binary format, resolving labels and user
variables along the way.
`, "\n", " ")

var HackAssembler = cli.New(Description).
	WithArg(cli.NewArg("input", "The assembler (.asm) file to be compiled")).
	WithArg(cli.NewArg("output", "The compiled binary output (.hack)")).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	input, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	output, err := os.Create(args[1])
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	// Pass 1: lex the source into an ordered sequence of labels/instructions
	// and reserve every instruction's word address (spec.md §4.7).
	program, err := asm.NewLexer().Tokenize(string(input))
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'lexing' pass: %s\n", err)
		return -1
	}

	// Pass 2: resolve every symbol and lower each mnemonic to 1-2 Hack
	// instructions (spec.md §4.8-§4.9).
	generator := codegen.NewGenerator(program)
	lowered, err := generator.Lower()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	// Final pass: bit-pack each resolved instruction to its 16-character
	// binary text line.
	writer := hack.NewCodeGenerator(hack.Program(lowered))
	compiled, err := writer.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'encoding' pass: %s\n", err)
		return -1
	}

	for _, line := range compiled {
		fmt.Fprintf(output, "%s\n", line)
	}

	return 0
}

func main() { os.Exit(HackAssembler.Run(os.Args, os.Stdout)) }
