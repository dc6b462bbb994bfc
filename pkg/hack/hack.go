// Package hack implements the Hack instruction-set encoding: the bit-packing
// tables and final translation from a resolved instruction to its 16-bit
// binary text form. All symbol resolution (labels, variables, virtual
// registers) happens upstream in pkg/symtab; by the time an Instruction
// reaches this package every address is already a concrete uint16.
package hack

// Instruction is implemented by AInstruction and CInstruction; a type switch
// in CodeGenerator.Generate disambiguates them.
type Instruction interface{}

// MaxAddress is the highest address an A-instruction can carry: addresses
// are the low 15 bits of a 16-bit word, so 0..32767 is valid.
const MaxAddress uint16 = 1<<15 - 1

// AInstruction loads a resolved 15-bit address into the A register. Unlike
// the teacher's AInstruction (which carried a LocType/LocName pair and
// resolved labels/variables/built-ins itself), resolution happens in
// pkg/symtab before an AInstruction is ever constructed, so it only needs to
// carry the final address.
type AInstruction struct {
	Address uint16
}

// CInstruction is the in-memory representation of a Hack C-instruction: the
// ALU computation to run, which destinations receive it, and under what
// condition to jump. Comp is mandatory; Dest and Jump default to "" (no
// destination / no jump) same as the teacher's CInstruction.
type CInstruction struct {
	Comp string
	Dest string
	Jump string
}

// Program is an ordered sequence of already-resolved instructions, ready for
// CodeGenerator to translate to Hack binary text.
type Program []Instruction
