// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package dcpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// MEMORY_SIZE is the number of addressable words.
const MEMORY_SIZE = 0x10000

// Assembler is a two pass assembler for the DCPU-16.
//
// The first pass assigns a word address to every label and sizes every
// instruction. A label referenced before its declaration is always encoded
// as a next word literal, so the sizes of the first pass hold in the second
// pass, where forward references are bound and the words are emitted.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]int64 // Constants visible to $(...) expressions.
}

// Predefine defines a new constant or redefines an existing constant
// for use in $(...) expressions.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// statement is a parsed source line waiting for the second pass.
type statement struct {
	lineNo int
	line   string
	words  []string

	inst Instruction
	data []Operand // DAT values, one word each.
	dat  bool
}

// operands returns pointers to the operands of the statement.
func (stmt *statement) operands() (ops []*Operand) {
	if stmt.dat {
		for n := range stmt.data {
			ops = append(ops, &stmt.data[n])
		}
		return
	}
	ops = append(ops, &stmt.inst.A)
	if stmt.inst.Basic != OP_NONBASIC {
		ops = append(ops, &stmt.inst.B)
	}
	return
}

// size returns the number of words the statement emits.
func (stmt *statement) size() int {
	if stmt.dat {
		return len(stmt.data)
	}
	return stmt.inst.Size()
}

// emit encodes the statement.
func (stmt *statement) emit() (codes []uint16, err error) {
	if stmt.dat {
		for _, op := range stmt.data {
			codes = append(codes, op.Value)
		}
		return
	}

	code, err := stmt.inst.Encode()
	if err != nil {
		return
	}
	codes = code.Words()
	return
}

// Assemble assembles source text into a word sequence.
func Assemble(source string) (words []uint16, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	words = prog.Binary()
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	symbols := map[string]uint16{}
	var stmts []*statement
	address := 0

	// Pass 1: assign label addresses and size every statement.
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		line = text

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		words := LexLine(text)

		for len(words) > 0 && words[0] == ":" {
			if len(words) < 2 || !isIdentifier(words[1]) {
				label := ""
				if len(words) > 1 {
					label = words[1]
				}
				err = ErrLabelInvalid(label)
				return
			}
			label := words[1]
			if reserved(label) {
				err = ErrLabelReserved(label)
				return
			}
			_, ok := symbols[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			if address >= MEMORY_SIZE {
				err = ErrProgramSize
				return
			}
			symbols[label] = uint16(address)
			words = words[2:]
		}

		if len(words) == 0 {
			continue
		}

		stmt := &statement{lineNo: lineno, line: text, words: words}
		err = asm.parseStatement(stmt, symbols)
		if err != nil {
			return
		}

		stmts = append(stmts, stmt)
		address += stmt.size()
		if address > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		// The failed line was never returned by the scanner.
		lineno += 1
		line = ""
		return
	}

	// Pass 2: bind labels and emit.
	prog = &Program{
		Symbols: maps.Clone(symbols),
	}

	address = 0
	for _, stmt := range stmts {
		lineno = stmt.lineNo
		line = stmt.line

		for _, op := range stmt.operands() {
			if len(op.Label) == 0 {
				continue
			}
			addr, ok := symbols[op.Label]
			if !ok {
				err = ErrLabelMissing(op.Label)
				return
			}
			if op.Kind == OPERAND_LABEL {
				op.Kind = OPERAND_NEXT_WORD
			}
			op.Value = addr
		}

		var codes []uint16
		codes, err = stmt.emit()
		if err != nil {
			return
		}
		if len(codes) != stmt.size() {
			log.Panicf("line %d: sized %d words, emitted %d: %v", stmt.lineNo, stmt.size(), len(codes), stmt.words)
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:  stmt.lineNo,
			Address: address,
			Words:   stmt.words,
			Codes:   codes,
		})
		address += len(codes)
	}

	return
}

// parseStatement parses the mnemonic and operands of a statement.
func (asm *Assembler) parseStatement(stmt *statement, symbols map[string]uint16) (err error) {
	words := stmt.words
	mnemonic := strings.ToUpper(words[0])
	args := splitArgs(words[1:])

	if mnemonic == "DAT" {
		if len(words) == 1 {
			err = ErrOperandMissing
			return
		}
		stmt.dat = true
		for _, arg := range args {
			var value uint16
			var label string
			value, label, err = asm.parseValue(arg)
			if err != nil {
				return
			}
			op := MakeNextWord(value)
			op.Label = label
			stmt.data = append(stmt.data, op)
		}
		return
	}

	if op, ok := nonBasicMap[mnemonic]; ok {
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var arg Operand
		arg, err = asm.parseOperand(args[0], symbols)
		if err != nil {
			return
		}
		stmt.inst = MakeNonBasic(op, arg)
		return
	}

	op, ok := basicMap[mnemonic]
	if !ok {
		err = ErrMnemonic(words[0])
		return
	}

	switch {
	case len(words) == 1:
		err = ErrOperandMissing
		return
	case len(args) == 1:
		err = ErrCommaMissing
		return
	case len(args) > 2:
		err = ErrOpcodeExtraArgs
		return
	}

	dst, err := asm.parseOperand(args[0], symbols)
	if err != nil {
		return
	}
	src, err := asm.parseOperand(args[1], symbols)
	if err != nil {
		return
	}

	stmt.inst = MakeBasic(op, dst, src)
	return
}

// splitArgs splits operand tokens at each comma.
func splitArgs(words []string) (args [][]string) {
	arg := []string{}
	for _, word := range words {
		if word == "," {
			args = append(args, arg)
			arg = []string{}
			continue
		}
		arg = append(arg, word)
	}
	args = append(args, arg)
	return
}

// register returns the register named by word.
func register(word string) (reg Register, ok bool) {
	reg, ok = registerMap[strings.ToUpper(word)]
	return
}

// parseOperand parses the tokens of a single operand. Labels already in
// symbols are resolved, and sized by their address.
func (asm *Assembler) parseOperand(words []string, symbols map[string]uint16) (op Operand, err error) {
	if len(words) == 0 {
		err = ErrOperandMissing
		return
	}

	if words[0] == "[" {
		if len(words) < 3 || words[len(words)-1] != "]" {
			err = ErrParseValue(strings.Join(words, ""))
			return
		}
		inner := words[1 : len(words)-1]

		switch {
		case len(inner) == 1:
			reg, ok := register(inner[0])
			if ok {
				op = MakeRegisterIndirect(reg)
				return
			}
			if reserved(inner[0]) {
				err = ErrParseValue(strings.Join(words, ""))
				return
			}
			var addr uint16
			var label string
			addr, label, err = asm.parseValue(inner)
			if err != nil {
				return
			}
			op = MakeMemoryIndirect(addr)
			op.Label = label
		case len(inner) == 3 && inner[1] == "+":
			value := inner[0]
			reg, ok := register(inner[2])
			if !ok {
				// [register+offset]
				value = inner[2]
				reg, ok = register(inner[0])
			}
			if !ok || reserved(value) {
				err = ErrParseValue(strings.Join(words, ""))
				return
			}
			var offset uint16
			var label string
			offset, label, err = asm.parseValue([]string{value})
			if err != nil {
				return
			}
			op = MakeRegisterOffset(reg, offset)
			op.Label = label
		default:
			err = ErrParseValue(strings.Join(words, ""))
			return
		}

		if len(op.Label) != 0 {
			op.Value = symbols[op.Label]
		}
		return
	}

	if len(words) == 1 {
		reg, ok := register(words[0])
		if ok {
			op = MakeRegister(reg)
			return
		}
		sp, ok := specialMap[strings.ToUpper(words[0])]
		if ok {
			op = MakeSpecial(sp)
			return
		}
	}

	value, label, err := asm.parseValue(words)
	if err != nil {
		return
	}

	if len(label) == 0 {
		op = MakeLiteral(value)
		return
	}

	addr, ok := symbols[label]
	if !ok {
		// Forward reference.
		op = MakeLabel(label)
		return
	}

	op = MakeLiteral(addr)
	op.Label = label
	return
}

// parseValue parses a literal value, a negated literal value, or a label.
func (asm *Assembler) parseValue(words []string) (value uint16, label string, err error) {
	switch {
	case len(words) == 2 && words[0] == "-":
		value, err = asm.valueOf(words[1])
		value = -value
		return
	case len(words) != 1:
		err = ErrParseValue(strings.Join(words, " "))
		return
	}

	word := words[0]
	if reserved(word) {
		err = ErrParseValue(word)
		return
	}
	if isIdentifier(word) {
		label = word
		return
	}

	value, err = asm.valueOf(word)
	return
}

// valueOf returns the value of a number or $(...) expression.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if len(word) == 0 {
		err = ErrParseValue(word)
		return
	}

	if strings.HasPrefix(word, "$(") {
		return asm.parenEval(word)
	}

	if word[0] < '0' || word[0] > '9' {
		err = ErrParseValue(word)
		return
	}

	// Digit separators are not part of the assembly syntax.
	if strings.ContainsRune(word, '_') {
		err = ErrParseNumber(word)
		return
	}

	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(word string) (value uint16, err error) {
	if len(word) < 3 || word[len(word)-1] != ')' {
		err = ErrParseExpression(strings.TrimPrefix(word, "$("))
		return
	}
	expr := word[2 : len(word)-1]

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, value64 := range asm.predefine {
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}

	value = uint16(st_int64)
	return
}

// isIdentifier returns true if word may name a label.
func isIdentifier(word string) bool {
	if len(word) == 0 {
		return false
	}
	for n, c := range word {
		switch {
		case c == '_' || c == '.':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case n > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
