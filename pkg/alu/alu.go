// Package alu implements the Hack ALU's 18 canonical operations as a pure
// function over two words and a six-bit flag, in the functional style spec.md
// §9 explicitly allows in place of a NAND-gate composition.
package alu

import "hacksim/pkg/word"

// Flag is the six-bit control tuple (zx, nx, zy, ny, f, no) that fully
// determines which of the 18 canonical operations the ALU performs.
type Flag struct {
	Zx, Nx, Zy, Ny, F, No bool
}

// Named holds the canonical flag tuple for every mnemonic in spec.md §4.1's
// table, keyed the same way pkg/hack's CompTable keys its comp strings, so
// callers that already have a comp mnemonic can look an ALU behavior up
// directly (the ALU test suite looks its cases up this way).
var Named = map[string]Flag{
	"0":   {true, false, true, false, true, false},
	"1":   {true, true, true, true, true, true},
	"-1":  {true, true, true, false, true, false},
	"D":   {false, false, true, true, false, false},
	"A":   {true, true, false, false, false, false},
	"!D":  {false, false, true, true, false, true},
	"!A":  {true, true, false, false, false, true},
	"-D":  {false, false, true, true, true, true},
	"-A":  {true, true, false, false, true, true},
	"D+1": {false, true, true, true, true, true},
	"A+1": {true, true, false, true, true, true},
	"D-1": {false, false, true, true, true, false},
	"A-1": {true, true, false, false, true, false},
	"D+A": {false, false, false, false, true, false},
	"D-A": {false, true, false, false, true, true},
	"A-D": {false, false, false, true, true, true},
	"D&A": {false, false, false, false, false, false},
	"D|A": {false, true, false, true, false, true},
}

// Compute runs the six-step pipeline from spec.md §4.1 over x and y and
// returns the result together with the zero and negative status bits.
func Compute(x, y word.Word, f Flag) (out word.Word, zr, ng bool) {
	xi, yi := x, y

	if f.Zx {
		xi = 0
	}
	if f.Nx {
		xi = ^xi
	}
	if f.Zy {
		yi = 0
	}
	if f.Ny {
		yi = ^yi
	}

	var res word.Word
	if f.F {
		res = word.Word(uint16(xi) + uint16(yi))
	} else {
		res = xi & yi
	}
	if f.No {
		res = ^res
	}

	return res, res == 0, res.Bit(0) == 1
}
