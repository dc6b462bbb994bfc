package cpu

import "hacksim/pkg/word"

// Computer is the top-level device from spec.md §4.6/§5: it owns the ROM
// image, the RAM bank, and a CPU, and exposes a single indivisible Tick
// operation. It is single-threaded and synchronous; an external driver
// decides the clock rate, which does not affect the result (spec.md §5).
type Computer struct {
	ROM *ROM
	RAM *RAM
	CPU *CPU
}

// NewComputer builds a Computer whose ROM is pre-loaded with image, which
// must be exactly one full 32Ki-word bank (see Pad for short programs).
func NewComputer(image []word.Word) (*Computer, error) {
	rom, err := NewROM(image)
	if err != nil {
		return nil, err
	}
	return &Computer{ROM: rom, RAM: NewRAM(), CPU: NewCPU()}, nil
}

// Tick fetches the instruction at the CPU's current PC, executes it, and
// applies any resulting RAM write. reset, held high, forces PC to 0 at the
// end of the tick.
func (c *Computer) Tick(reset bool) Result {
	instr := c.ROM.Read(c.CPU.PC.Value())
	inputM := c.RAM.Access(c.CPU.A.Value(), 0, false)

	result := c.CPU.Tick(instr, inputM, reset)
	if result.WriteM {
		c.RAM.Access(result.WriteAddr, result.WriteData, true)
	}
	return result
}

// NextInstruction returns the instruction word the CPU will fetch on the
// next call to Tick, for diagnostics (cmd/hack_computer's --trace option).
func (c *Computer) NextInstruction() word.Word {
	return c.ROM.Read(c.CPU.PC.Value())
}
