package cpu

import (
	"hacksim/pkg/alu"
	"hacksim/pkg/word"
)

// CPU wires together the A/D registers, the PC, and the ALU into the one-tick
// datapath from spec.md §4.6. It has no knowledge of ROM/RAM storage itself;
// Computer supplies the fetched instruction and the current M[A] value and
// receives back the write pulse to apply to RAM.
type CPU struct {
	A, D Register
	PC   ProgramCounter
}

// NewCPU returns a CPU with A, D and PC all reset to zero.
func NewCPU() *CPU { return &CPU{} }

// Result reports a tick's observable outputs: the RAM write pulse and the
// new program counter.
type Result struct {
	WriteAddr word.Word
	WriteData word.Word
	WriteM    bool
	NextPC    word.Word
}

// Tick executes one fetch-decode-execute-writeback-PC-update cycle.
// instr is the instruction word already fetched from ROM at the CPU's
// current PC; inputM is the RAM's current value at the CPU's current A
// (Computer is responsible for that read, since RAM is Computer's to own).
//
// All writes this tick are computed from state as it stood at the START of
// the tick: the ALU's second input, the RAM write address and the PC jump
// target all use the OLD value of A, even when this same instruction also
// writes a new value into A (spec.md §5's synchronous-write ordering
// guarantee).
//
// reset is the external control bit from spec.md §6; when set, the PC always
// becomes 0 at the end of this tick regardless of the instruction.
func (c *CPU) Tick(instr, inputM word.Word, reset bool) Result {
	d := Decode(instr)
	oldA := c.A.Value()

	if !d.IsCInst {
		c.A.Tick(true, instr)
		c.PC.Tick(reset, false, 0)
		return Result{NextPC: c.PC.Value()}
	}

	y := oldA
	if d.AM {
		y = inputM
	}

	out, zr, ng := alu.Compute(c.D.Value(), y, d.Flags)

	writeA, writeD, writeM := writeControl(d)
	c.A.Tick(writeA, out)
	c.D.Tick(writeD, out)

	jump := jumpControl(zr, ng, d)
	c.PC.Tick(reset, jump, oldA)

	return Result{
		WriteAddr: oldA,
		WriteData: out,
		WriteM:    writeM,
		NextPC:    c.PC.Value(),
	}
}
