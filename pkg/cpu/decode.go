package cpu

import (
	"hacksim/pkg/alu"
	"hacksim/pkg/word"
)

// Decoded holds every field extracted from one fetched instruction word, per
// spec.md §4.4.
type Decoded struct {
	IsCInst bool // i[0]; false means this is an A-instruction
	AM      bool // i[3]: ALU second input is M[A] (true) instead of A (false)
	Flags   alu.Flag
	DestA   bool // i[10]
	DestD   bool // i[11]
	DestM   bool // i[12]
	JumpLT  bool // i[13]
	JumpEQ  bool // i[14]
	JumpGT  bool // i[15]
}

// Decode splits a 16-bit instruction word into its semantic fields. An
// A-instruction only sets IsCInst=false; all other fields are meaningless
// and left zero in that case.
func Decode(instr word.Word) Decoded {
	var d Decoded
	d.IsCInst = instr.Bit(0) == 1
	if !d.IsCInst {
		return d
	}

	d.AM = instr.Bit(3) == 1
	d.Flags = alu.Flag{
		Zx: instr.Bit(4) == 1,
		Nx: instr.Bit(5) == 1,
		Zy: instr.Bit(6) == 1,
		Ny: instr.Bit(7) == 1,
		F:  instr.Bit(8) == 1,
		No: instr.Bit(9) == 1,
	}
	d.DestA = instr.Bit(10) == 1
	d.DestD = instr.Bit(11) == 1
	d.DestM = instr.Bit(12) == 1
	d.JumpLT = instr.Bit(13) == 1
	d.JumpEQ = instr.Bit(14) == 1
	d.JumpGT = instr.Bit(15) == 1
	return d
}
