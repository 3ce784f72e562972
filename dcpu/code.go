package dcpu

import (
	"fmt"
)

// Instruction is a basic (two operand) or non-basic (single operand)
// instruction. When Basic is OP_NONBASIC, NonBasic selects the operation
// and A is its operand.
type Instruction struct {
	Basic    BasicOp
	NonBasic NonBasicOp
	A        Operand // Destination of a basic instruction.
	B        Operand // Source of a basic instruction.
}

// MakeBasic creates a two operand instruction.
func MakeBasic(op BasicOp, dst, src Operand) Instruction {
	return Instruction{Basic: op, A: dst, B: src}
}

// MakeNonBasic creates a single operand instruction.
func MakeNonBasic(op NonBasicOp, arg Operand) Instruction {
	return Instruction{Basic: OP_NONBASIC, NonBasic: op, A: arg}
}

// Operands returns the operands of the instruction in encoding order.
func (inst Instruction) Operands() []Operand {
	if inst.Basic == OP_NONBASIC {
		return []Operand{inst.A}
	}
	return []Operand{inst.A, inst.B}
}

// Size returns the number of words the instruction occupies.
func (inst Instruction) Size() (size int) {
	size = 1
	for _, op := range inst.Operands() {
		if op.NextWord() {
			size++
		}
	}
	return
}

// Encode encodes the instruction.
func (inst Instruction) Encode() (code Code, err error) {
	a, imm_a, err := inst.A.Encode()
	if err != nil {
		return
	}

	if inst.Basic == OP_NONBASIC {
		code = MakeCodeNonBasic(inst.NonBasic, a, imm_a...)
		return
	}

	b, imm_b, err := inst.B.Encode()
	if err != nil {
		return
	}

	code = MakeCodeBasic(inst.Basic, a, b, append(imm_a, imm_b...)...)
	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	if inst.Basic == OP_NONBASIC {
		return fmt.Sprintf("%v %v", inst.NonBasic, inst.A)
	}
	return fmt.Sprintf("%v %v, %v", inst.Basic, inst.A, inst.B)
}

// Code represents a single instruction word with its trailing literal words.
type Code struct {
	Word       uint16
	Immediates []uint16
}

// MakeCodeBasic creates a basic instruction word.
func MakeCodeBasic(op BasicOp, a, b uint8, imms ...uint16) Code {
	return Code{
		Word:       (uint16(b&FIELD_MASK) << 10) | (uint16(a&FIELD_MASK) << 4) | uint16(op&0xf),
		Immediates: imms,
	}
}

// MakeCodeNonBasic creates a non-basic instruction word.
func MakeCodeNonBasic(op NonBasicOp, a uint8, imms ...uint16) Code {
	return Code{
		Word:       (uint16(a&FIELD_MASK) << 10) | (uint16(op&FIELD_MASK) << 4),
		Immediates: imms,
	}
}

// Basic returns the opcode nibble of the instruction word.
func (code Code) Basic() BasicOp {
	return BasicOp(code.Word & 0xf)
}

// BasicDecode returns the operand fields of a basic instruction word.
func (code Code) BasicDecode() (op BasicOp, a, b uint8) {
	op = code.Basic()
	a = uint8((code.Word >> 4) & FIELD_MASK)
	b = uint8((code.Word >> 10) & FIELD_MASK)
	return
}

// NonBasicDecode returns the sub-opcode and operand field of a non-basic
// instruction word.
func (code Code) NonBasicDecode() (op NonBasicOp, a uint8) {
	op = NonBasicOp((code.Word >> 4) & FIELD_MASK)
	a = uint8((code.Word >> 10) & FIELD_MASK)
	return
}

// ImmediateNeed returns the number of literal words the instruction
// word requires. Unknown non-basic opcodes need none.
func (code Code) ImmediateNeed() (need int) {
	var fields []uint8

	if code.Basic() == OP_NONBASIC {
		op, a := code.NonBasicDecode()
		if op != NONBASIC_JSR {
			return
		}
		fields = []uint8{a}
	} else {
		_, a, b := code.BasicDecode()
		fields = []uint8{a, b}
	}

	for _, field := range fields {
		if (field >= FIELD_REGISTER_OFFSET && field < uint8(SPECIAL_POP)) ||
			field == FIELD_MEMORY_INDIRECT || field == FIELD_NEXT_WORD {
			need++
		}
	}

	return
}

// Words returns the instruction word followed by its literal words.
func (code Code) Words() []uint16 {
	return append([]uint16{code.Word}, code.Immediates...)
}

// Decode decodes the instruction starting at words[pos]. The next
// instruction begins at next. If ok is false the word is an unknown
// non-basic opcode, and only that word was consumed.
func Decode(words []uint16, pos int) (inst Instruction, ok bool, next int, err error) {
	word, next, err := readWord(words, pos)
	if err != nil {
		return
	}

	code := Code{Word: word}

	if code.Basic() == OP_NONBASIC {
		op, a := code.NonBasicDecode()
		if op != NONBASIC_JSR {
			return
		}
		var arg Operand
		arg, next, err = DecodeOperand(a, words, next)
		if err != nil {
			return
		}
		inst = MakeNonBasic(op, arg)
		ok = true
		return
	}

	op, a, b := code.BasicDecode()

	// Literal words follow the opcode in field a, field b order.
	dst, next, err := DecodeOperand(a, words, next)
	if err != nil {
		return
	}
	src, next, err := DecodeOperand(b, words, next)
	if err != nil {
		return
	}

	inst = MakeBasic(op, dst, src)
	ok = true
	return
}
