package dcpu

import (
	"fmt"
)

// OperandKind is the addressing mode of an operand.
type OperandKind int

const (
	OPERAND_REGISTER          = OperandKind(iota) // register
	OPERAND_REGISTER_INDIRECT                     // [register]
	OPERAND_REGISTER_OFFSET                       // [offset+register]
	OPERAND_SPECIAL                               // POP, PEEK, PUSH, SP, PC, O
	OPERAND_MEMORY_INDIRECT                       // [address]
	OPERAND_NEXT_WORD                             // literal in the next word
	OPERAND_INLINE                                // literal 0x00-0x1f in the field
	OPERAND_LABEL                                 // unresolved label literal
)

// Operand is a decoded or parsed instruction operand.
//
// Label is set by the assembler when Value is the address of a label. An
// OPERAND_LABEL operand has not been sized yet; the other kinds with a Label
// have their size fixed and only wait for Value.
type Operand struct {
	Kind     OperandKind
	Register Register // OPERAND_REGISTER, OPERAND_REGISTER_INDIRECT, OPERAND_REGISTER_OFFSET
	Special  Special  // OPERAND_SPECIAL
	Value    uint16   // Offset, address or literal.
	Label    string
}

// MakeRegister returns a register operand.
func MakeRegister(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: reg}
}

// MakeRegisterIndirect returns a [register] operand.
func MakeRegisterIndirect(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER_INDIRECT, Register: reg}
}

// MakeRegisterOffset returns a [offset+register] operand.
func MakeRegisterOffset(reg Register, offset uint16) Operand {
	return Operand{Kind: OPERAND_REGISTER_OFFSET, Register: reg, Value: offset}
}

// MakeSpecial returns a special register operand.
func MakeSpecial(sp Special) Operand {
	return Operand{Kind: OPERAND_SPECIAL, Special: sp}
}

// MakeMemoryIndirect returns a [address] operand.
func MakeMemoryIndirect(addr uint16) Operand {
	return Operand{Kind: OPERAND_MEMORY_INDIRECT, Value: addr}
}

// MakeNextWord returns a literal operand that always uses a trailing word.
func MakeNextWord(value uint16) Operand {
	return Operand{Kind: OPERAND_NEXT_WORD, Value: value}
}

// MakeLiteral returns the most compact literal operand for value.
func MakeLiteral(value uint16) Operand {
	if value <= INLINE_MAX {
		return Operand{Kind: OPERAND_INLINE, Value: value}
	}
	return MakeNextWord(value)
}

// MakeLabel returns an unresolved label reference.
func MakeLabel(label string) Operand {
	return Operand{Kind: OPERAND_LABEL, Label: label}
}

// NextWord returns true if the operand is followed by a literal word.
// An unresolved label is sized as a next word literal.
func (op Operand) NextWord() bool {
	switch op.Kind {
	case OPERAND_REGISTER_OFFSET, OPERAND_MEMORY_INDIRECT, OPERAND_NEXT_WORD, OPERAND_LABEL:
		return true
	}
	return false
}

// Encode returns the 6-bit operand field and the trailing literal words.
func (op Operand) Encode() (field uint8, imms []uint16, err error) {
	switch op.Kind {
	case OPERAND_REGISTER:
		field = FIELD_REGISTER + uint8(op.Register&7)
	case OPERAND_REGISTER_INDIRECT:
		field = FIELD_REGISTER_INDIRECT + uint8(op.Register&7)
	case OPERAND_REGISTER_OFFSET:
		field = FIELD_REGISTER_OFFSET + uint8(op.Register&7)
		imms = []uint16{op.Value}
	case OPERAND_SPECIAL:
		if op.Special < SPECIAL_POP || op.Special > SPECIAL_O {
			err = ErrOperandField(op.Special)
			return
		}
		field = uint8(op.Special)
	case OPERAND_MEMORY_INDIRECT:
		field = FIELD_MEMORY_INDIRECT
		imms = []uint16{op.Value}
	case OPERAND_NEXT_WORD:
		field = FIELD_NEXT_WORD
		imms = []uint16{op.Value}
	case OPERAND_INLINE:
		if op.Value > INLINE_MAX {
			err = ErrOperandField(FIELD_INLINE + op.Value)
			return
		}
		field = FIELD_INLINE + uint8(op.Value)
	case OPERAND_LABEL:
		err = ErrLabelMissing(op.Label)
	default:
		err = ErrParseValue(fmt.Sprintf("%#v", op))
	}

	return
}

// DecodeOperand decodes the operand field bits. words[pos] is the next
// unread word; next is the position after any literal word consumed.
//
// Fields wider than six bits panic with ErrOperandField.
func DecodeOperand(bits uint8, words []uint16, pos int) (op Operand, next int, err error) {
	next = pos

	switch {
	case bits > FIELD_MASK:
		panic(ErrOperandField(bits))
	case bits < FIELD_REGISTER_INDIRECT:
		op = MakeRegister(Register(bits))
	case bits < FIELD_REGISTER_OFFSET:
		op = MakeRegisterIndirect(Register(bits - FIELD_REGISTER_INDIRECT))
	case bits < uint8(SPECIAL_POP):
		var offset uint16
		offset, next, err = readWord(words, pos)
		op = MakeRegisterOffset(Register(bits-FIELD_REGISTER_OFFSET), offset)
	case bits < FIELD_MEMORY_INDIRECT:
		op = MakeSpecial(Special(bits))
	case bits == FIELD_MEMORY_INDIRECT:
		var addr uint16
		addr, next, err = readWord(words, pos)
		op = MakeMemoryIndirect(addr)
	case bits == FIELD_NEXT_WORD:
		var value uint16
		value, next, err = readWord(words, pos)
		op = MakeNextWord(value)
	default:
		op = Operand{Kind: OPERAND_INLINE, Value: uint16(bits - FIELD_INLINE)}
	}

	return
}

// readWord reads words[pos], returning the position after it.
func readWord(words []uint16, pos int) (value uint16, next int, err error) {
	if pos >= len(words) {
		return 0, pos, ErrWordsTruncated
	}
	return words[pos], pos + 1, nil
}

// String returns the assembly representation of the operand.
func (op Operand) String() string {
	value := func() string {
		if len(op.Label) != 0 {
			return op.Label
		}
		return fmt.Sprintf("%#x", op.Value)
	}

	switch op.Kind {
	case OPERAND_REGISTER:
		return op.Register.String()
	case OPERAND_REGISTER_INDIRECT:
		return "[" + op.Register.String() + "]"
	case OPERAND_REGISTER_OFFSET:
		return "[" + value() + "+" + op.Register.String() + "]"
	case OPERAND_SPECIAL:
		return op.Special.String()
	case OPERAND_MEMORY_INDIRECT:
		return "[" + value() + "]"
	case OPERAND_NEXT_WORD, OPERAND_INLINE, OPERAND_LABEL:
		return value()
	}

	return fmt.Sprintf("%#v", op)
}
