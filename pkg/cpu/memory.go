package cpu

import (
	"fmt"

	"hacksim/pkg/word"
)

// MaxAddress is the highest addressable RAM/ROM cell: addresses are 15 bits,
// so the valid range is 0..32767. The teacher's equivalent constant
// (MaxAddressableMemory = 1<<15) paired with a ">" bound check let address
// 32768 slip through; this is the corrected bound.
const MaxAddress = 1<<15 - 1

// addressSpace is the number of words in a full ROM or RAM bank.
const addressSpace = MaxAddress + 1

// ROM is the computer's immutable, pre-loaded instruction memory.
type ROM struct {
	cells [addressSpace]word.Word
}

// NewROM builds a ROM from image, which must supply exactly one word per
// addressable cell (pad short programs with Pad first).
func NewROM(image []word.Word) (*ROM, error) {
	if len(image) != addressSpace {
		return nil, fmt.Errorf("cpu: ROM image must be exactly %d words, got %d", addressSpace, len(image))
	}
	rom := &ROM{}
	copy(rom.cells[:], image)
	return rom, nil
}

// Read returns the word stored at addr.
func (r *ROM) Read(addr word.Word) word.Word {
	return r.cells[addr.Uint16()&MaxAddress]
}

// RAM is the computer's mutable, word-addressable random access memory.
type RAM struct {
	cells [addressSpace]word.Word
}

// NewRAM returns a RAM bank initialized to all zeros.
func NewRAM() *RAM { return &RAM{} }

// Access reads the cell at addr, first writing data into it if write is set.
// A pure read is the same call with write = false.
func (m *RAM) Access(addr word.Word, data word.Word, write bool) word.Word {
	idx := addr.Uint16() & MaxAddress
	if write {
		m.cells[idx] = data
	}
	return m.cells[idx]
}

// Pad right-pads program with zero words up to a full 32Ki-word ROM image.
// Returns an error if program is already longer than that.
func Pad(program []word.Word) ([]word.Word, error) {
	if len(program) > addressSpace {
		return nil, fmt.Errorf("cpu: program has %d words, exceeds ROM capacity %d", len(program), addressSpace)
	}
	image := make([]word.Word, addressSpace)
	copy(image, program)
	return image, nil
}
