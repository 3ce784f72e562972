package dcpu

import (
	"strings"
)

// Register is a general purpose register index.
type Register uint8

const (
	REG_A = Register(0)
	REG_B = Register(1)
	REG_C = Register(2)
	REG_X = Register(3)
	REG_Y = Register(4)
	REG_Z = Register(5)
	REG_I = Register(6)
	REG_J = Register(7)
)

var registerNames = [...]string{"A", "B", "C", "X", "Y", "Z", "I", "J"}

func (reg Register) String() string {
	if int(reg) < len(registerNames) {
		return registerNames[reg]
	}
	return f("Register(%d)", uint8(reg))
}

// Special is a fixed operand slot. Its value is the operand field code.
type Special uint8

const (
	SPECIAL_POP  = Special(0x18)
	SPECIAL_PEEK = Special(0x19)
	SPECIAL_PUSH = Special(0x1a)
	SPECIAL_SP   = Special(0x1b)
	SPECIAL_PC   = Special(0x1c)
	SPECIAL_O    = Special(0x1d)
)

var specialNames = [...]string{"POP", "PEEK", "PUSH", "SP", "PC", "O"}

func (sp Special) String() string {
	if sp >= SPECIAL_POP && sp <= SPECIAL_O {
		return specialNames[sp-SPECIAL_POP]
	}
	return f("Special(0x%02x)", uint8(sp))
}

// BasicOp is a two operand opcode. Its value is the opcode nibble.
type BasicOp uint8

const (
	OP_NONBASIC = BasicOp(0x0)
	OP_SET      = BasicOp(0x1)
	OP_ADD      = BasicOp(0x2)
	OP_SUB      = BasicOp(0x3)
	OP_MUL      = BasicOp(0x4)
	OP_DIV      = BasicOp(0x5)
	OP_MOD      = BasicOp(0x6)
	OP_SHL      = BasicOp(0x7)
	OP_SHR      = BasicOp(0x8)
	OP_AND      = BasicOp(0x9)
	OP_BOR      = BasicOp(0xa)
	OP_XOR      = BasicOp(0xb)
	OP_IFE      = BasicOp(0xc)
	OP_IFN      = BasicOp(0xd)
	OP_IFG      = BasicOp(0xe)
	OP_IFB      = BasicOp(0xf)
)

// basicNames is indexed by opcode nibble - 1.
var basicNames = [...]string{
	"SET", "ADD", "SUB", "MUL", "DIV", "MOD", "SHL", "SHR",
	"AND", "BOR", "XOR", "IFE", "IFN", "IFG", "IFB",
}

func (op BasicOp) String() string {
	if op >= OP_SET && op <= OP_IFB {
		return basicNames[op-1]
	}
	return f("BasicOp(%d)", uint8(op))
}

// NonBasicOp is a single operand opcode, stored in bits 4-9 of the word.
type NonBasicOp uint8

const (
	NONBASIC_JSR = NonBasicOp(0x01)
)

func (op NonBasicOp) String() string {
	if op == NONBASIC_JSR {
		return "JSR"
	}
	return f("NonBasicOp(0x%02x)", uint8(op))
}

// Operand field codes.
const (
	FIELD_REGISTER          = 0x00 // Register, 0x00-0x07.
	FIELD_REGISTER_INDIRECT = 0x08 // [register], 0x08-0x0f.
	FIELD_REGISTER_OFFSET   = 0x10 // [next word + register], 0x10-0x17.
	FIELD_MEMORY_INDIRECT   = 0x1e // [next word]
	FIELD_NEXT_WORD         = 0x1f // next word
	FIELD_INLINE            = 0x20 // literal 0x00-0x1f, 0x20-0x3f.
	FIELD_MASK              = 0x3f

	INLINE_MAX = 0x1f // Largest literal encoded in the operand field.
)

// Mnemonic lookup tables, keyed by upper case name.
var (
	basicMap    = map[string]BasicOp{}
	nonBasicMap = map[string]NonBasicOp{"JSR": NONBASIC_JSR}
	registerMap = map[string]Register{}
	specialMap  = map[string]Special{}
)

func init() {
	for n, name := range basicNames {
		basicMap[name] = BasicOp(n + 1)
	}
	for n, name := range registerNames {
		registerMap[name] = Register(n)
	}
	for n, name := range specialNames {
		specialMap[name] = SPECIAL_POP + Special(n)
	}
}

// reserved returns true if word names a register or special register.
func reserved(word string) bool {
	word = strings.ToUpper(word)
	_, is_reg := registerMap[word]
	_, is_special := specialMap[word]
	return is_reg || is_special
}
