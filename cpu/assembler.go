// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bytec/binrepr"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"WORD_SIZE": fmt.Sprintf("%v", WORD_SIZE),
}

// linkPlaceholder spills in every layout, so a label reference always owns
// an overflow word that the link pass can patch.
const linkPlaceholder = ^uint32(0)

// Assembler is a single pass macro assembler for the bytec system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to program indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansion int // Count of macro expansions, for local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap is a map of register names to register indexes.
var registerMap = map[string]Register{
	"A":  REG_A,
	"B":  REG_B,
	"C":  REG_C,
	"D":  REG_D,
	"E":  REG_E,
	"F":  REG_F,
	"G":  REG_G,
	"H":  REG_H,
	"SP": REG_SP,
}

// opMap is a map of mnemonics to operations.
var opMap = func() map[string]Operation {
	ops := make(map[string]Operation, OP_COUNT)
	for n := range OP_COUNT {
		op := Operation(n)
		ops[op.String()] = op
	}
	return ops
}()

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word)
		return
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	// Negative values are two's complement.
	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// registerOf returns the register named by a word.
func (asm *Assembler) registerOf(word string) (reg Register, ok bool) {
	if equate, found := asm.Equate[word]; found {
		word = equate
	}

	reg, ok = registerMap[strings.ToUpper(word)]
	return
}

// labelOf returns the label name of a '@label' reference.
func labelOf(word string) (label string, ok bool) {
	label, ok = strings.CutPrefix(word, "@")
	ok = ok && len(label) > 0
	return
}

// operandOf parses an operand word. A label reference is returned as a
// placeholder argument, along with the label to link into its overflow word.
//
//	A .. H, SP    register
//	[A]           memory at register
//	[A+disp]      memory at register plus displacement
//	#value        immediate value
//	[address]     memory at address
//	@label        program index of a label
//	[@label]      memory at the program index of a label
func (asm *Assembler) operandOf(word string) (arg Argument, label string, err error) {
	defer func() {
		if err != nil {
			err = ErrParseOperand(word)
		}
	}()

	if reg, ok := asm.registerOf(word); ok {
		arg = reg
		return
	}

	if value, ok := strings.CutPrefix(word, "#"); ok {
		var imm uint32
		imm, err = asm.valueOf(value)
		arg = Immediate(imm)
		return
	}

	if name, ok := labelOf(word); ok {
		arg = Immediate(linkPlaceholder)
		label = name
		return
	}

	inner, ok := strings.CutPrefix(word, "[")
	if ok {
		inner, ok = strings.CutSuffix(inner, "]")
	}
	if !ok {
		err = ErrParseOperand(word)
		return
	}

	if base, disp, found := strings.Cut(inner, "+"); found {
		reg, ok := asm.registerOf(base)
		if !ok {
			err = ErrParseOperand(word)
			return
		}
		var value uint32
		value, err = asm.valueOf(disp)
		arg = Displaced{Register: reg, Disp: value}
		return
	}

	if reg, ok := asm.registerOf(inner); ok {
		arg = Indirect(reg)
		return
	}

	if name, ok := labelOf(inner); ok {
		arg = Address(linkPlaceholder)
		label = name
		return
	}

	var addr uint32
	addr, err = asm.valueOf(inner)
	arg = Address(addr)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	// Labels defined so far.
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeInt(pc)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reBracket    = regexp.MustCompile(`\[[^\]]*\]`)
	reLocal      = regexp.MustCompile(`(^|\s)%\w+:|@%\w+`)
)

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// [A + 8] => [A+8]
	line = reBracket.ReplaceAllStringFunc(line, func(str string) string {
		return strings.Join(strings.Fields(str), "")
	})

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '%name:' and '@%name' are labels local to this expansion.
		asm.expansion++
		local := fmt.Sprintf("%v_%d_", name, asm.expansion)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = reLocal.ReplaceAllStringFunc(line, func(label string) string {
				return strings.Replace(label, "%", local, 1)
			})
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the program index of the next generated word.
func (asm *Assembler) currentPc() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Pc + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.expansion = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for _, link := range op.Links {
			pc, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Codes[link.Index] = uint32(pc)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}
	for _, op := range prog.Opcodes {
		prog.Append(op.Codes...)
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint32
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Pc: asm.currentPc(), Words: initial_words, Codes: codes, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	// .word VALUE... emits raw words.
	if words[0] == ".word" {
		if len(words) < 2 {
			err = ErrOperandMissing
			return
		}
		for _, word := range words[1:] {
			if label, ok := labelOf(word); ok {
				links = append(links, Link{Index: len(codes), Label: label})
				codes = append(codes, linkPlaceholder)
				continue
			}
			var value uint32
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := opMap[strings.ToUpper(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]

	switch op.Arity() {
	case 1:
		if len(args) < 1 {
			err = ErrOperandMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var target Argument
		var label string
		target, label, err = asm.operandOf(args[0])
		if err != nil {
			return
		}
		if len(label) != 0 {
			links = append(links, Link{Index: 1, Label: label})
		}
		codes = Encode1(op, target)
	case 2:
		switch {
		case len(args) == 2:
			err = ErrArrowMissing
			return
		case len(args) < 3:
			err = ErrOperandMissing
			return
		case len(args) > 3:
			err = ErrOpcodeExtraArgs
			return
		case args[1] != "->":
			err = ErrArrowMissing
			return
		}
		var from, to Argument
		var from_label, to_label string
		from, from_label, err = asm.operandOf(args[0])
		if err != nil {
			return
		}
		to, to_label, err = asm.operandOf(args[2])
		if err != nil {
			return
		}
		index := 1
		if len(from_label) != 0 {
			links = append(links, Link{Index: index, Label: from_label})
		}
		if _, spill := from.Overflow(binrepr.Layout12); spill {
			index++
		}
		if len(to_label) != 0 {
			links = append(links, Link{Index: index, Label: to_label})
		}
		codes = Encode2(op, from, to)
	}

	return
}
