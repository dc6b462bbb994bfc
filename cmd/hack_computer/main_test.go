package main

import (
	"strconv"
	"testing"

	"hacksim/pkg/word"
)

func TestDisassemble(t *testing.T) {
	test := func(bits, want string) {
		t.Helper()
		n, err := strconv.ParseUint(bits, 2, 16)
		if err != nil {
			t.Fatal(err)
		}
		if got := disassemble(word.Word(uint16(n))); got != want {
			t.Fatalf("disassemble(%s) = %q, want %q", bits, got, want)
		}
	}

	test("0000000000101010", "A = 42")
	test("1110000010010000", "D = D+A") // spec.md §8's codegen-determinism case
	test("1110101010000111", "0; JMP")
	test("1110001100001000", "M = D")
}

func TestHackComputerMicroProgram(t *testing.T) {
	status := Handler([]string{"../../testdata/two_plus_two_minus_one.hack"}, map[string]string{"ticks": "6"})
	if status != 0 {
		t.Fatalf("unexpected exit status: %d", status)
	}
}

func TestHackComputerTrace(t *testing.T) {
	status := Handler([]string{"../../testdata/two_plus_two_minus_one.hack"}, map[string]string{"ticks": "6", "trace": "true"})
	if status != 0 {
		t.Fatalf("unexpected exit status: %d", status)
	}
}

func TestHackComputerRejectsBadTicks(t *testing.T) {
	status := Handler([]string{"../../testdata/two_plus_two_minus_one.hack"}, map[string]string{"ticks": "not-a-number"})
	if status == 0 {
		t.Fatal("expected a non-zero exit status for a malformed --ticks value")
	}
}

func TestHackComputerRejectsMissingInput(t *testing.T) {
	status := Handler([]string{"does/not/exist.hack"}, nil)
	if status == 0 {
		t.Fatal("expected a non-zero exit status for a missing input file")
	}
}
