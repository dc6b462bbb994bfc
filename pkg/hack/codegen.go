package hack

import "fmt"

// ----------------------------------------------------------------------------
// Translation tables
//
// These translate the comp/dest/jump mnemonics into their bit-codes. They
// are unchanged from the teacher's tables: the 18-canonical-operation
// encoding is part of the Hack ISA itself, not something this spec redefines,
// and spec.md §8's codegen-determinism test case (ADD D, D, A -> bits
// 1110000010010000) checks out against CompTable["D+A"] unmodified.
var (
	CompTable = map[string]uint16{
		"0": 0b0101010, "1": 0b0111111, "-1": 0b0111010,
		"D": 0b0001100, "A": 0b0110000, "M": 0b1110000,
		"!D": 0b0001101, "!A": 0b0110001, "!M": 0b1110001,
		"-D": 0b0001111, "-A": 0b0110011, "-M": 0b1110011,
		"D+1": 0b0011111, "A+1": 0b0110111, "M+1": 0b1110111,
		"D-1": 0b0001110, "A-1": 0b0110010, "M-1": 0b1110010,
		"D+A": 0b0000010, "D+M": 0b1000010,
		"D-A": 0b0010011, "D-M": 0b1010011,
		"A-D": 0b0000111, "M-D": 0b1000111,
		"D&A": 0b0000000, "D&M": 0b1000000,
		"D|A": 0b0010101, "D|M": 0b1010101,
	}

	DestTable = map[string]uint16{
		"": 0b000, "M": 0b001, "D": 0b010, "A": 0b100,
		"MD": 0b011, "AM": 0b101, "AD": 0b110, "AMD": 0b111,
	}

	JumpTable = map[string]uint16{
		"": 0b000, "JGT": 0b001, "JEQ": 0b010, "JGE": 0b011,
		"JLT": 0b100, "JNE": 0b101, "JLE": 0b110, "JMP": 0b111,
	}
)

// CodeGenerator translates a resolved Program into Hack binary text, one
// 16-character line per instruction.
type CodeGenerator struct {
	program Program
}

// NewCodeGenerator returns a CodeGenerator for program.
func NewCodeGenerator(program Program) CodeGenerator {
	return CodeGenerator{program: program}
}

// Generate translates every instruction to its 16-bit binary text form.
func (cg *CodeGenerator) Generate() ([]string, error) {
	out := make([]string, 0, len(cg.program))

	for _, instruction := range cg.program {
		var generated string
		var err error

		switch inst := instruction.(type) {
		case AInstruction:
			generated, err = cg.generateAInst(inst)
		case CInstruction:
			generated, err = cg.generateCInst(inst)
		default:
			err = fmt.Errorf("unrecognized instruction type %T", instruction)
		}

		if err != nil {
			return nil, err
		}
		out = append(out, generated)
	}

	return out, nil
}

func (cg *CodeGenerator) generateAInst(inst AInstruction) (string, error) {
	if inst.Address > MaxAddress {
		return "", fmt.Errorf("address %d exceeds the addressable range (0..%d)", inst.Address, MaxAddress)
	}
	return fmt.Sprintf("%016b", inst.Address), nil
}

func (cg *CodeGenerator) generateCInst(inst CInstruction) (string, error) {
	command := uint16(0b111 << 13)

	opcode, found := CompTable[inst.Comp]
	if !found {
		return "", fmt.Errorf("unknown 'comp' opcode %q", inst.Comp)
	}
	command |= opcode << 6

	if opcode, found := DestTable[inst.Dest]; found {
		command |= opcode << 3
	} else {
		return "", fmt.Errorf("unknown 'dest' opcode %q", inst.Dest)
	}

	if opcode, found := JumpTable[inst.Jump]; found {
		command |= opcode
	} else {
		return "", fmt.Errorf("unknown 'jump' opcode %q", inst.Jump)
	}

	return fmt.Sprintf("%016b", command), nil
}
