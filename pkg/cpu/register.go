package cpu

import "hacksim/pkg/word"

// Register is a single 16-bit synchronous register: it only changes on a
// tick where load is asserted, and reads always return the value set on the
// previous tick (never the value presented during the current one).
type Register struct {
	value word.Word
}

// Tick replaces the register's contents with in when load is set, otherwise
// holds. Callers that need the pre-tick value (e.g. the CPU resolving a RAM
// write address or a PC jump target from the OLD A) must read Value() before
// calling Tick for the same cycle.
func (r *Register) Tick(load bool, in word.Word) {
	if load {
		r.value = in
	}
}

// Value returns the register's current (i.e. most recently committed) value.
func (r *Register) Value() word.Word { return r.value }
