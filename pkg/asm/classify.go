package asm

import (
	"fmt"
	"strconv"

	pc "github.com/prataprc/goparsec"
)

// ArgKind is the lexical category of one already comma-split instruction
// argument.
type ArgKind int

const (
	ArgRegister ArgKind = iota
	ArgLiteral
	ArgVariable
	ArgLabel
)

func (k ArgKind) String() string {
	switch k {
	case ArgRegister:
		return "register"
	case ArgLiteral:
		return "literal"
	case ArgVariable:
		return "variable"
	case ArgLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Arg is one classified operand: a register letter, a signed integer
// literal, a $variable reference, or an @label reference.
type Arg struct {
	Kind ArgKind
	Text string // register letter or symbol name, without its '$'/'@' sigil
	Num  int    // parsed value, only meaningful when Kind == ArgLiteral
}

// argAST is the goparsec AST used purely to classify one token at a time;
// it plays the same role here that the teacher's 'ast' package-level value
// plays for pDest/pComp/pJump/pLabel in pkg/asm/parsing.go, just applied to
// this system's own three-letter-mnemonic grammar instead of the Hack-native
// "dest=comp;jump" textual syntax.
var argAST = pc.NewAST("argument", 0)

var (
	pRegister = argAST.OrdChoice("register", nil,
		pc.Atom("A", "A"), pc.Atom("D", "D"), pc.Atom("M", "M"))

	pVariable = argAST.And("variable", nil,
		pc.Atom("$", "$"), pc.Token(`[A-Za-z_][0-9A-Za-z_]*`, "NAME"))

	pLabelRef = argAST.And("label", nil,
		pc.Atom("@", "@"), pc.Token(`[A-Za-z_][0-9A-Za-z_]*`, "NAME"))

	pLiteral = argAST.OrdChoice("literal", nil,
		pc.Atom("-1", "-1"), pc.Int())

	pArg = argAST.OrdChoice("arg", nil, pVariable, pLabelRef, pRegister, pLiteral)

	// pArgFull requires the whole token to be consumed, so a malformed
	// token like "A1" or "$" doesn't get silently accepted as a short
	// prefix match (spec.md §7(e)'s "unrecognized register token").
	pArgFull = argAST.And("full", nil, pArg, pc.End())
)

// ClassifyArg parses one comma-split argument token (e.g. "A", "$sum",
// "@LOOP", "17", "-1") and reports which of the four argument shapes it is.
func ClassifyArg(token string) (Arg, error) {
	full, success := argAST.Parsewith(pArgFull, pc.NewScanner([]byte(token)))
	if !success || full == nil || len(full.GetChildren()) == 0 {
		return Arg{}, fmt.Errorf("asm: unrecognized argument %q", token)
	}
	root := full.GetChildren()[0]

	switch root.GetName() {
	case "register":
		return Arg{Kind: ArgRegister, Text: root.GetValue()}, nil

	case "variable":
		children := root.GetChildren()
		if len(children) != 2 {
			return Arg{}, fmt.Errorf("asm: malformed variable reference %q", token)
		}
		return Arg{Kind: ArgVariable, Text: children[1].GetValue()}, nil

	case "label":
		children := root.GetChildren()
		if len(children) != 2 {
			return Arg{}, fmt.Errorf("asm: malformed label reference %q", token)
		}
		return Arg{Kind: ArgLabel, Text: children[1].GetValue()}, nil

	case "literal":
		n, err := strconv.Atoi(root.GetValue())
		if err != nil {
			return Arg{}, fmt.Errorf("asm: malformed literal %q: %s", token, err)
		}
		return Arg{Kind: ArgLiteral, Text: root.GetValue(), Num: n}, nil

	default:
		return Arg{}, fmt.Errorf("asm: unrecognized argument node %q", root.GetName())
	}
}
