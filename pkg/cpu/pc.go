package cpu

import "hacksim/pkg/word"

// ProgramCounter is the 16-bit register driving instruction fetch. Its next
// value is computed from reset, jump and the jump target per spec.md §4.5's
// priority: reset beats jump beats the default increment.
type ProgramCounter struct {
	value word.Word
}

// Tick advances the counter in place. The caller must read Value() to fetch
// the current instruction BEFORE calling Tick for the same cycle.
func (pc *ProgramCounter) Tick(reset, jump bool, target word.Word) {
	switch {
	case reset:
		pc.value = 0
	case jump:
		pc.value = target
	default:
		pc.value = word.FromInt(pc.value.Int() + 1)
	}
}

// Value returns the counter's current value.
func (pc *ProgramCounter) Value() word.Word { return pc.value }
