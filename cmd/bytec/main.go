// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/bytec/cpu"
	"github.com/ezrec/bytec/emulator"
	"github.com/ezrec/bytec/translate"
)

// defineList collects repeated -D NAME=VALUE flags.
type defineList map[string]string

func (dl defineList) String() string {
	var defs []string
	for name, value := range dl {
		defs = append(defs, name+"="+value)
	}
	return strings.Join(defs, ",")
}

func (dl defineList) Set(text string) (err error) {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		value = "1"
	}
	if len(name) == 0 {
		err = cpu.ErrEquateSyntax
		return
	}
	dl[name] = value
	return
}

func main() {
	var compile string
	var save bool
	var input string
	var output string
	var steps int
	var memory uint64
	var verbose bool
	defines := defineList{}

	flag.StringVar(&compile, "c", "", ".bc file to assemble")
	flag.BoolVar(&save, "s", false, "Save program image to -o, do not execute")
	flag.StringVar(&input, "i", "", "Program image to execute")
	flag.StringVar(&output, "o", "", "Program image output")
	flag.IntVar(&steps, "n", 0, "Maximum instructions to execute (0 = unbounded)")
	flag.Uint64Var(&memory, "m", cpu.MEMORY_SIZE, "Memory size in bytes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(defines, "D", "Predefine NAME=VALUE (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(input) != 0 {
		log.Fatalf("%v: -c and -i are exclusive", os.Args[0])
	}

	if save && len(output) == 0 {
		log.Fatalf("%v: -s requires -o", os.Args[0])
	}

	if memory < cpu.WORD_SIZE || memory > 0xffff_ffff {
		log.Fatalf("%v: invalid memory size %v", os.Args[0], memory)
	}

	emu := emulator.NewEmulatorMemory(uint32(memory))
	emu.Verbose = verbose
	emu.StepLimit = steps
	emu.Output = os.Stdout

	prog := &cpu.Program{}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for name, value := range emu.Defines() {
			asm.Predefine(name, value)
		}
		for name, value := range defines {
			asm.Predefine(name, value)
		}

		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a saved program image.
	if len(input) != 0 {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()

		_, err = prog.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		_, err = prog.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	emu.Program = prog
	emu.Reset()

	err := emu.Run()
	if verbose {
		translate.Fprintf(os.Stderr, "%d instructions, %d program words\n", emu.Ticks(), prog.Len())
		if err != nil {
			log.Print(emu.Cpu.String())
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
