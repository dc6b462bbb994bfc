// Package symtab implements the assembler's two-pass symbol resolution from
// spec.md §4.8: virtual registers $R0..$R15, user variables allocated from
// address 16 upward, and labels resolved to instruction indices.
package symtab

import "fmt"

// firstVariableAddress is where user-variable allocation begins; addresses
// below it are reserved for the sixteen virtual registers.
const firstVariableAddress uint16 = 16

// Table is the assembler's symbol table. The zero value is not usable;
// construct with New.
type Table struct {
	variables   map[string]uint16
	labels      map[string]uint16
	nextVarAddr uint16
}

// New returns a Table pre-populated with $R0..$R15 -> 0..15, per spec.md §3.
func New() *Table {
	t := &Table{
		variables:   make(map[string]uint16, 16),
		labels:      make(map[string]uint16),
		nextVarAddr: firstVariableAddress,
	}
	for n := 0; n < 16; n++ {
		t.variables[fmt.Sprintf("R%d", n)] = uint16(n)
	}
	return t
}

// DefineLabel records that name designates the instruction at address addr.
// Called once per label during the assembler's pass 1 (pkg/codegen's
// symbol population over the lexer's output); a label seen twice is a
// programmer error in the source (spec.md §3's invariant that every label
// token matches exactly one LABEL: line), so a second definition is an error.
func (t *Table) DefineLabel(name string, addr uint16) error {
	if _, found := t.labels[name]; found {
		return fmt.Errorf("symtab: label %q defined more than once", name)
	}
	t.labels[name] = addr
	return nil
}

// ResolveLabel looks up a previously defined label. Unlike variables, labels
// are never lazily allocated: every label reference must have a matching
// LABEL: line seen during pass 1.
func (t *Table) ResolveLabel(name string) (uint16, error) {
	addr, found := t.labels[name]
	if !found {
		return 0, fmt.Errorf("symtab: undefined label %q", name)
	}
	return addr, nil
}

// DefineVariable returns the address for name, a $-prefixed user variable,
// allocating the next free RAM slot (starting at 16) the first time name is
// seen. Safe to call repeatedly for the same name; it is idempotent.
func (t *Table) DefineVariable(name string) uint16 {
	if addr, found := t.variables[name]; found {
		return addr
	}
	addr := t.nextVarAddr
	t.variables[name] = addr
	t.nextVarAddr++
	return addr
}

// ResolveVariable looks up a variable or virtual register without allocating
// a new one; used once pass 1 has already populated every reference.
func (t *Table) ResolveVariable(name string) (uint16, bool) {
	addr, found := t.variables[name]
	return addr, found
}
