package codegen_test

import (
	"testing"

	"hacksim/pkg/asm"
	"hacksim/pkg/codegen"
	"hacksim/pkg/hack"
)

func lower(t *testing.T, src string) []hack.Instruction {
	t.Helper()
	program, err := asm.NewLexer().Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	out, err := codegen.NewGenerator(program).Lower()
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	return out
}

func bits(t *testing.T, inst hack.Instruction) string {
	t.Helper()
	cg := hack.NewCodeGenerator(hack.Program{inst})
	out, err := cg.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return out[0]
}

// Locks in spec.md §8's codegen-determinism test case: ADD D, D, A emits
// 1 1 1 0 0 0 0 0 1 0 0 1 0 0 0 0 (am=0, comp=D+A, dest=D, jump=000).
func TestCodegenDeterminismAddDDA(t *testing.T) {
	out := lower(t, "ADD D, D, A\n")
	if len(out) != 1 {
		t.Fatalf("got %d instructions, want 1", len(out))
	}
	if got, want := bits(t, out[0]), "1110000010010000"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestSTRLiteralAddress(t *testing.T) {
	out := lower(t, "STR A, 5\n")
	if len(out) != 1 {
		t.Fatalf("got %d instructions, want 1", len(out))
	}
	a, ok := out[0].(hack.AInstruction)
	if !ok || a.Address != 5 {
		t.Fatalf("got %+v, want AInstruction{Address: 5}", out[0])
	}
}

func TestSTRVariableAddressEmitsTwoWords(t *testing.T) {
	out := lower(t, "STR $v, 1\n")
	if len(out) != 2 {
		t.Fatalf("got %d instructions, want 2", len(out))
	}
	a, ok := out[0].(hack.AInstruction)
	if !ok || a.Address != 16 {
		t.Fatalf("first word = %+v, want AInstruction{Address: 16}", out[0])
	}
	c, ok := out[1].(hack.CInstruction)
	if !ok || c.Comp != "1" || c.Dest != "M" {
		t.Fatalf("second word = %+v, want CInstruction{Comp: 1, Dest: M}", out[1])
	}
}

func TestSTRRejectsOutOfRangeConstant(t *testing.T) {
	_, err := codegen.NewGenerator(mustTokenize(t, "STR $v, 2\n")).Lower()
	if err == nil {
		t.Fatal("expected an error for STR $v, 2 (constant must be in {-1,0,1})")
	}
}

func TestSTRRejectsLiteralAboveAddressableRange(t *testing.T) {
	_, err := codegen.NewGenerator(mustTokenize(t, "STR A, 40000\n")).Lower()
	if err == nil {
		t.Fatal("expected an error for a literal above 2^15")
	}
}

// Symbol allocation per spec.md §8: $a -> 16, $b -> 17, 5 machine words total.
func TestSymbolAllocation(t *testing.T) {
	out := lower(t, "STR $a, 1\nSTR $b, 0\nSTR A, $a\n")
	if len(out) != 5 {
		t.Fatalf("got %d words, want 5", len(out))
	}

	a0, ok := out[0].(hack.AInstruction)
	if !ok || a0.Address != 16 {
		t.Fatalf("$a address = %+v, want 16", out[0])
	}
	a2, ok := out[2].(hack.AInstruction)
	if !ok || a2.Address != 17 {
		t.Fatalf("$b address = %+v, want 17", out[2])
	}
	a4, ok := out[4].(hack.AInstruction)
	if !ok || a4.Address != 16 {
		t.Fatalf("STR A, $a address = %+v, want 16 (reuses $a)", out[4])
	}
}

func TestBinaryOpRequiresDFirst(t *testing.T) {
	_, err := codegen.NewGenerator(mustTokenize(t, "AND D, A, D\n")).Lower()
	if err == nil {
		t.Fatal("expected an error: AND's first argument must be D")
	}
}

func TestSubEitherOrder(t *testing.T) {
	out := lower(t, "SUB D, D, A\n")
	c := out[0].(hack.CInstruction)
	if c.Comp != "D-A" {
		t.Fatalf("SUB D, D, A: comp = %q, want D-A", c.Comp)
	}

	out = lower(t, "SUB D, A, D\n")
	c = out[0].(hack.CInstruction)
	if c.Comp != "A-D" {
		t.Fatalf("SUB D, A, D: comp = %q, want A-D", c.Comp)
	}
}

func TestUnaryInPlaceOnSameVariableWritesBackToM(t *testing.T) {
	out := lower(t, "INC $v, $v\n")
	if len(out) != 2 {
		t.Fatalf("got %d words, want 2", len(out))
	}
	c := out[1].(hack.CInstruction)
	if c.Comp != "M+1" || c.Dest != "M" {
		t.Fatalf("got %+v, want comp M+1 dest M", c)
	}
}

func TestJmpUnconditional(t *testing.T) {
	out := lower(t, "L:\nJMP @L\n")
	if len(out) != 2 {
		t.Fatalf("got %d words, want 2", len(out))
	}
	a := out[0].(hack.AInstruction)
	if a.Address != 0 {
		t.Fatalf("JMP @L address = %d, want 0", a.Address)
	}
	c := out[1].(hack.CInstruction)
	if c.Comp != "0" || c.Jump != "JMP" {
		t.Fatalf("got %+v, want comp 0 jump JMP", c)
	}
}

func TestJmpRejectsExtraArguments(t *testing.T) {
	_, err := codegen.NewGenerator(mustTokenize(t, "L:\nJMP @L, A\n")).Lower()
	if err == nil {
		t.Fatal("expected an error: JMP takes exactly one argument")
	}
}

func TestConditionalJump(t *testing.T) {
	out := lower(t, "L:\nJGT D, @L\n")
	c := out[1].(hack.CInstruction)
	if c.Comp != "D" || c.Jump != "JGT" {
		t.Fatalf("got %+v, want comp D jump JGT", c)
	}
}

func mustTokenize(t *testing.T, src string) asm.Program {
	t.Helper()
	program, err := asm.NewLexer().Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return program
}
