// Package codegen implements spec.md §4.9's mnemonic lowering: it walks an
// asm.Program, resolves every symbol it references through pkg/symtab, and
// emits the 1-2 hack.Instruction words each source line corresponds to.
//
// This is the piece the teacher's own pkg/asm.Lowerer plays for the
// Hack-native "dest=comp;jump" grammar, generalized to the STR/MOV/INC/...
// grammar spec.md §4.9 actually specifies and with symbol resolution
// factored out into its own package instead of being interleaved with
// lowering.
package codegen

import (
	"fmt"
	"strconv"

	"hacksim/pkg/asm"
	"hacksim/pkg/hack"
	"hacksim/pkg/symtab"
)

// jumpMnemonics maps the six conditional-jump opcodes to the jump bit-code
// name pkg/hack expects; JMP is handled separately since it carries no
// register operand to evaluate.
var jumpMnemonics = map[string]string{
	"JGT": "JGT", "JEQ": "JEQ", "JGE": "JGE",
	"JLT": "JLT", "JNE": "JNE", "JLE": "JLE",
}

// binaryOps maps AND/OR/ADD to the ALU operator symbol used to build the
// "D<op>Y" comp mnemonic pkg/hack's CompTable is keyed by.
var binaryOps = map[string]string{
	"AND": "&",
	"OR":  "|",
	"ADD": "+",
}

// Generator lowers one asm.Program to Hack machine instructions. Construct
// with NewGenerator and call Lower exactly once.
type Generator struct {
	program asm.Program
	symbols *symtab.Table
}

// NewGenerator returns a Generator for program, with a fresh symbol table
// pre-populated with the virtual registers (symtab.New).
func NewGenerator(program asm.Program) *Generator {
	return &Generator{program: program, symbols: symtab.New()}
}

// Lower runs both assembler passes: pass 1 resolves every label and user
// variable referenced anywhere in the program (spec.md §4.8); pass 2 walks
// the program again and emits the resolved Hack instructions in order.
func (g *Generator) Lower() ([]hack.Instruction, error) {
	if err := g.populateSymbols(); err != nil {
		return nil, err
	}

	var out []hack.Instruction
	for _, stmt := range g.program {
		inst, ok := stmt.(asm.Instruction)
		if !ok {
			continue // labels carry no instruction words of their own
		}
		emitted, err := g.lower(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, emitted...)
	}
	return out, nil
}

// Symbols exposes the table Lower populated.
func (g *Generator) Symbols() *symtab.Table { return g.symbols }

// populateSymbols is pass 1: every Label statement defines a label at its
// recorded address, and every $variable referenced anywhere in the program
// is allocated a RAM slot the first time it is seen (spec.md §4.8).
func (g *Generator) populateSymbols() error {
	for _, stmt := range g.program {
		switch s := stmt.(type) {
		case asm.Label:
			if err := g.symbols.DefineLabel(s.Name, s.Addr); err != nil {
				return fmt.Errorf("asm: line %d: %s", s.Line, err)
			}
		case asm.Instruction:
			for _, raw := range s.Args {
				arg, err := asm.ClassifyArg(raw)
				if err != nil {
					return fmt.Errorf("asm: line %d: %s", s.Line, err)
				}
				if arg.Kind == asm.ArgVariable {
					g.symbols.DefineVariable(arg.Text)
				}
			}
		}
	}
	return nil
}

func (g *Generator) lower(inst asm.Instruction) ([]hack.Instruction, error) {
	switch inst.Op {
	case "STR":
		return g.lowerStr(inst)
	case "MOV":
		return g.lowerMov(inst)
	case "INC":
		return g.lowerIncDec(inst, "+1")
	case "DEC":
		return g.lowerIncDec(inst, "-1")
	case "NOT":
		return g.lowerUnary(inst, "!")
	case "NEG":
		return g.lowerUnary(inst, "-")
	case "AND", "OR", "ADD":
		return g.lowerBinary(inst)
	case "SUB":
		return g.lowerSub(inst)
	case "JMP":
		return g.lowerJmp(inst)
	default:
		if _, ok := jumpMnemonics[inst.Op]; ok {
			return g.lowerCondJump(inst)
		}
		return nil, g.errf(inst, "unknown opcode %q", inst.Op)
	}
}

func (g *Generator) errf(inst asm.Instruction, format string, args ...interface{}) error {
	return fmt.Errorf("asm: line %d: %s", inst.Line, fmt.Sprintf(format, args...))
}

func (g *Generator) classify(inst asm.Instruction, raw string) (asm.Arg, error) {
	arg, err := asm.ClassifyArg(raw)
	if err != nil {
		return asm.Arg{}, g.errf(inst, "%s", err)
	}
	return arg, nil
}

// resolveSource turns a register/variable argument into the ALU-operand
// letter ("A"/"D"/"M") to use in a comp mnemonic, emitting an A-load
// instruction into out first when arg names a $variable.
func (g *Generator) resolveSource(inst asm.Instruction, arg asm.Arg, out *[]hack.Instruction) (string, error) {
	switch arg.Kind {
	case asm.ArgRegister:
		return arg.Text, nil
	case asm.ArgVariable:
		addr, found := g.symbols.ResolveVariable(arg.Text)
		if !found {
			return "", g.errf(inst, "undefined variable %q", arg.Text)
		}
		*out = append(*out, hack.AInstruction{Address: addr})
		return "M", nil
	default:
		return "", g.errf(inst, "unrecognized register token %q", arg.Text)
	}
}

// destFor applies spec.md §4.9's unary-op destination rule: when the
// destination and source name the same $variable, the result writes back to
// M in place; otherwise the destination must be a plain register letter.
func (g *Generator) destFor(inst asm.Instruction, dest, src asm.Arg) (string, error) {
	if dest.Kind == asm.ArgVariable {
		if src.Kind == asm.ArgVariable && src.Text == dest.Text {
			return "M", nil
		}
		return "", g.errf(inst, "destination token not in {A, D, M}")
	}
	if dest.Kind != asm.ArgRegister {
		return "", g.errf(inst, "destination token not in {A, D, M}")
	}
	return dest.Text, nil
}

func (g *Generator) lowerStr(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 2 {
		return nil, g.errf(inst, "STR requires exactly 2 arguments, got %d", len(inst.Args))
	}
	target, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	value, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}

	switch target.Kind {
	case asm.ArgRegister:
		if target.Text != "A" {
			return nil, g.errf(inst, "destination token not in {A, D, M}")
		}
		switch value.Kind {
		case asm.ArgLiteral:
			if value.Num < 0 {
				return nil, g.errf(inst, "literal %q is not a non-negative integer", value.Text)
			}
			if value.Num > int(hack.MaxAddress) {
				return nil, g.errf(inst, "literal %d exceeds the addressable range (0..%d)", value.Num, hack.MaxAddress)
			}
			return []hack.Instruction{hack.AInstruction{Address: uint16(value.Num)}}, nil
		case asm.ArgVariable:
			addr, found := g.symbols.ResolveVariable(value.Text)
			if !found {
				return nil, g.errf(inst, "undefined variable %q", value.Text)
			}
			return []hack.Instruction{hack.AInstruction{Address: addr}}, nil
		default:
			return nil, g.errf(inst, "STR A requires a literal address or a $variable")
		}

	case asm.ArgVariable:
		addr, found := g.symbols.ResolveVariable(target.Text)
		if !found {
			return nil, g.errf(inst, "undefined variable %q", target.Text)
		}
		if value.Kind != asm.ArgLiteral || (value.Num != -1 && value.Num != 0 && value.Num != 1) {
			return nil, g.errf(inst, "constant token %q for STR $v not in {0, 1, -1}", inst.Args[1])
		}
		return []hack.Instruction{
			hack.AInstruction{Address: addr},
			hack.CInstruction{Comp: strconv.Itoa(value.Num), Dest: "M"},
		}, nil

	default:
		return nil, g.errf(inst, "destination token not in {A, D, M}")
	}
}

func (g *Generator) lowerMov(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 2 {
		return nil, g.errf(inst, "MOV requires exactly 2 arguments, got %d", len(inst.Args))
	}
	dest, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	src, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}

	var out []hack.Instruction
	srcReg, err := g.resolveSource(inst, src, &out)
	if err != nil {
		return nil, err
	}
	destReg, err := g.destFor(inst, dest, src)
	if err != nil {
		return nil, err
	}
	out = append(out, hack.CInstruction{Comp: srcReg, Dest: destReg})
	return out, nil
}

func (g *Generator) lowerIncDec(inst asm.Instruction, suffix string) ([]hack.Instruction, error) {
	if len(inst.Args) != 1 && len(inst.Args) != 2 {
		return nil, g.errf(inst, "%s requires 1 or 2 arguments, got %d", inst.Op, len(inst.Args))
	}
	dest, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	src := dest
	if len(inst.Args) == 2 {
		src, err = g.classify(inst, inst.Args[1])
		if err != nil {
			return nil, err
		}
	}

	var out []hack.Instruction
	srcReg, err := g.resolveSource(inst, src, &out)
	if err != nil {
		return nil, err
	}
	destReg, err := g.destFor(inst, dest, src)
	if err != nil {
		return nil, err
	}
	out = append(out, hack.CInstruction{Comp: srcReg + suffix, Dest: destReg})
	return out, nil
}

func (g *Generator) lowerUnary(inst asm.Instruction, prefix string) ([]hack.Instruction, error) {
	if len(inst.Args) != 2 {
		return nil, g.errf(inst, "%s requires exactly 2 arguments, got %d", inst.Op, len(inst.Args))
	}
	dest, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	src, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}

	var out []hack.Instruction
	srcReg, err := g.resolveSource(inst, src, &out)
	if err != nil {
		return nil, err
	}
	destReg, err := g.destFor(inst, dest, src)
	if err != nil {
		return nil, err
	}
	out = append(out, hack.CInstruction{Comp: prefix + srcReg, Dest: destReg})
	return out, nil
}

func (g *Generator) lowerBinary(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 3 {
		return nil, g.errf(inst, "%s requires exactly 3 arguments, got %d", inst.Op, len(inst.Args))
	}
	dest, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	first, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}
	if first.Kind != asm.ArgRegister || first.Text != "D" {
		return nil, g.errf(inst, "the first argument of %s must be D", inst.Op)
	}
	second, err := g.classify(inst, inst.Args[2])
	if err != nil {
		return nil, err
	}

	var out []hack.Instruction
	secondReg, err := g.resolveSource(inst, second, &out)
	if err != nil {
		return nil, err
	}
	destReg, err := g.destFor(inst, dest, second)
	if err != nil {
		return nil, err
	}
	out = append(out, hack.CInstruction{Comp: "D" + binaryOps[inst.Op] + secondReg, Dest: destReg})
	return out, nil
}

func (g *Generator) lowerSub(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 3 {
		return nil, g.errf(inst, "SUB requires exactly 3 arguments, got %d", len(inst.Args))
	}
	dest, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	x, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}
	y, err := g.classify(inst, inst.Args[2])
	if err != nil {
		return nil, err
	}

	var out []hack.Instruction
	var comp, destReg string

	switch {
	case x.Kind == asm.ArgRegister && x.Text == "D":
		yReg, err := g.resolveSource(inst, y, &out)
		if err != nil {
			return nil, err
		}
		comp = "D-" + yReg
		destReg, err = g.destFor(inst, dest, y)
		if err != nil {
			return nil, err
		}
	case y.Kind == asm.ArgRegister && y.Text == "D":
		xReg, err := g.resolveSource(inst, x, &out)
		if err != nil {
			return nil, err
		}
		comp = xReg + "-D"
		destReg, err = g.destFor(inst, dest, x)
		if err != nil {
			return nil, err
		}
	default:
		return nil, g.errf(inst, "SUB requires one argument to be D")
	}

	out = append(out, hack.CInstruction{Comp: comp, Dest: destReg})
	return out, nil
}

func (g *Generator) lowerJmp(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 1 {
		return nil, g.errf(inst, "JMP takes exactly one argument, got %d", len(inst.Args))
	}
	target, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	if target.Kind != asm.ArgLabel {
		return nil, g.errf(inst, "JMP requires an @label argument")
	}
	addr, err := g.symbols.ResolveLabel(target.Text)
	if err != nil {
		return nil, g.errf(inst, "%s", err)
	}
	return []hack.Instruction{
		hack.AInstruction{Address: addr},
		hack.CInstruction{Comp: "0", Jump: "JMP"},
	}, nil
}

func (g *Generator) lowerCondJump(inst asm.Instruction) ([]hack.Instruction, error) {
	if len(inst.Args) != 2 {
		return nil, g.errf(inst, "%s requires exactly 2 arguments, got %d", inst.Op, len(inst.Args))
	}
	cond, err := g.classify(inst, inst.Args[0])
	if err != nil {
		return nil, err
	}
	if cond.Kind != asm.ArgRegister {
		return nil, g.errf(inst, "unrecognized register token %q", inst.Args[0])
	}
	target, err := g.classify(inst, inst.Args[1])
	if err != nil {
		return nil, err
	}
	if target.Kind != asm.ArgLabel {
		return nil, g.errf(inst, "%s requires an @label argument", inst.Op)
	}
	addr, err := g.symbols.ResolveLabel(target.Text)
	if err != nil {
		return nil, g.errf(inst, "%s", err)
	}
	return []hack.Instruction{
		hack.AInstruction{Address: addr},
		hack.CInstruction{Comp: cond.Text, Jump: jumpMnemonics[inst.Op]},
	}, nil
}
