package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/teris-io/cli"

	"hacksim/pkg/cpu"
	"hacksim/pkg/hack"
	"hacksim/pkg/word"
)

var Description = strings.ReplaceAll(`
The Hack Computer loads a compiled (.hack) binary image into the Computer
top-level device and runs it for a fixed number of ticks (spec.md §5's
"external driver" role), then dumps the final A/D/PC registers and the first
sixteen RAM cells (the R0..R15 virtual registers).
`, "\n", " ")

var HackComputer = cli.New(Description).
	WithArg(cli.NewArg("input", "The compiled (.hack) binary image to run")).
	WithOption(cli.NewOption("ticks", "Number of ticks to run (default 1000)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("trace", "Print each fetched instruction's mnemonic form before executing it").
		WithType(cli.TypeBool)).
	WithAction(Handler)

// loadImage parses a .hack file (one 16-character binary line per word) into
// a full 32Ki-word ROM image.
func loadImage(path string) ([]word.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var program []word.Word
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.ParseUint(line, 2, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: not valid 16-bit binary: %q: %w", lineNo, line, err)
		}
		program = append(program, word.Word(uint16(n)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cpu.Pad(program)
}

// reverse builds the inverse of one of pkg/hack's mnemonic -> bit-code
// tables, for --trace's diagnostic disassembly.
func reverse(table map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(table))
	for name, code := range table {
		out[code] = name
	}
	return out
}

var (
	reverseComp = reverse(hack.CompTable)
	reverseDest = reverse(hack.DestTable)
	reverseJump = reverse(hack.JumpTable)
)

// disassemble renders one fetched instruction the way
// original_source/nandcomp/utils.py's decode_ir does: "A = <n>" for an
// A-instruction, "[<dest> = ]<comp>[; <jump>]" for a C-instruction (the
// "<dest> = " part is left out when no destination bit is set).
func disassemble(instr word.Word) string {
	d := cpu.Decode(instr)
	if !d.IsCInst {
		return fmt.Sprintf("A = %d", instr.Uint16()&uint16(cpu.MaxAddress))
	}

	var compCode uint16
	if d.AM {
		compCode |= 1 << 6
	}
	if d.Flags.Zx {
		compCode |= 1 << 5
	}
	if d.Flags.Nx {
		compCode |= 1 << 4
	}
	if d.Flags.Zy {
		compCode |= 1 << 3
	}
	if d.Flags.Ny {
		compCode |= 1 << 2
	}
	if d.Flags.F {
		compCode |= 1 << 1
	}
	if d.Flags.No {
		compCode |= 1 << 0
	}
	comp := reverseComp[compCode]

	var destCode uint16
	if d.DestA {
		destCode |= 0b100
	}
	if d.DestD {
		destCode |= 0b010
	}
	if d.DestM {
		destCode |= 0b001
	}
	dest := reverseDest[destCode]

	var jumpCode uint16
	if d.JumpLT {
		jumpCode |= 0b100
	}
	if d.JumpEQ {
		jumpCode |= 0b010
	}
	if d.JumpGT {
		jumpCode |= 0b001
	}
	jump := reverseJump[jumpCode]

	switch {
	case dest != "" && jump != "":
		return fmt.Sprintf("%s = %s; %s", dest, comp, jump)
	case dest != "":
		return fmt.Sprintf("%s = %s", dest, comp)
	case jump != "":
		return fmt.Sprintf("%s; %s", comp, jump)
	default:
		return comp
	}
}

func Handler(args []string, options map[string]string) int {
	image, err := loadImage(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to load input image: %s\n", err)
		return -1
	}

	computer, err := cpu.NewComputer(image)
	if err != nil {
		fmt.Printf("ERROR: Unable to construct the Computer: %s\n", err)
		return -1
	}

	ticks := 1000
	if raw, ok := options["ticks"]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("ERROR: --ticks must be an integer: %s\n", err)
			return -1
		}
		ticks = n
	}
	_, trace := options["trace"]

	for i := 0; i < ticks; i++ {
		if trace {
			fmt.Println(disassemble(computer.NextInstruction()))
		}
		computer.Tick(false)
	}

	fmt.Printf("A = %d\n", computer.CPU.A.Value().Int())
	fmt.Printf("D = %d\n", computer.CPU.D.Value().Int())
	fmt.Printf("PC = %d\n", computer.CPU.PC.Value().Int())
	for addr := uint16(0); addr < 16; addr++ {
		fmt.Printf("RAM[%d] = %d\n", addr, computer.RAM.Access(word.Word(addr), 0, false).Int())
	}

	return 0
}

func main() { os.Exit(HackComputer.Run(os.Args, os.Stdout)) }
