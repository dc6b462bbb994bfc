package asm_test

import (
	"testing"

	"hacksim/pkg/asm"
)

func TestLexerStripsCommentsAndBlankLines(t *testing.T) {
	src := "# a whole-line comment\n\nSTR A, 5 # trailing comment\n   \nMOV D, A\n"
	program, err := asm.NewLexer().Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(program), program)
	}

	str, ok := program[0].(asm.Instruction)
	if !ok || str.Op != "STR" {
		t.Fatalf("statement 0 = %+v, want STR instruction", program[0])
	}
	if len(str.Args) != 2 || str.Args[0] != "A" || str.Args[1] != "5" {
		t.Fatalf("STR args = %+v, want [A 5]", str.Args)
	}
}

func TestLexerRemovesInteriorWhitespace(t *testing.T) {
	program, err := asm.NewLexer().Tokenize("ADD  D ,  D , A\n")
	if err != nil {
		t.Fatal(err)
	}
	inst := program[0].(asm.Instruction)
	if len(inst.Args) != 3 || inst.Args[0] != "D" || inst.Args[1] != "D" || inst.Args[2] != "A" {
		t.Fatalf("args = %+v, want [D D A]", inst.Args)
	}
}

func TestLexerLabelsOccupyNoSlot(t *testing.T) {
	src := "LOOP:\nMOV D, A\nEND:\nMOV A, D\n"
	program, err := asm.NewLexer().Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}

	loop := program[0].(asm.Label)
	if loop.Name != "LOOP" || loop.Addr != 0 {
		t.Fatalf("LOOP = %+v, want addr 0", loop)
	}

	end := program[2].(asm.Label)
	if end.Name != "END" || end.Addr != 1 {
		t.Fatalf("END = %+v, want addr 1", end)
	}
}

func TestLexerPCReservation(t *testing.T) {
	// STR A, 5 -> 1 word; STR $sum, 0 -> 2 words; JMP @L -> 2 words.
	src := "STR A, 5\nSTR $sum, 0\nL:\nJMP @L\n"
	program, err := asm.NewLexer().Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}

	first := program[0].(asm.Instruction)
	if first.Addr != 0 {
		t.Fatalf("first instruction addr = %d, want 0", first.Addr)
	}
	second := program[1].(asm.Instruction)
	if second.Addr != 1 {
		t.Fatalf("second instruction addr = %d, want 1", second.Addr)
	}
	label := program[2].(asm.Label)
	if label.Addr != 3 {
		t.Fatalf("label L addr = %d, want 3 (1 + 2 words before it)", label.Addr)
	}
}

func TestLexerStrWithVariableSourceReservesOneWord(t *testing.T) {
	// "STR A, $v" is a single A-instruction (the variable IS the address
	// loaded into A), unlike "STR $v, K" which needs an A-load + C-write.
	program, err := asm.NewLexer().Tokenize("STR A, $v\n")
	if err != nil {
		t.Fatal(err)
	}
	next, err := asm.NewLexer().Tokenize("STR A, $v\nMOV D, A\n")
	if err != nil {
		t.Fatal(err)
	}
	mov := next[1].(asm.Instruction)
	if mov.Addr != 1 {
		t.Fatalf("instruction after 'STR A, $v' starts at %d, want 1", mov.Addr)
	}
	if len(program) != 1 {
		t.Fatalf("got %d statements, want 1", len(program))
	}
}

func TestLexerRejectsEmptyLabel(t *testing.T) {
	if _, err := asm.NewLexer().Tokenize(":\n"); err == nil {
		t.Fatal("expected an error for an empty label line")
	}
}
