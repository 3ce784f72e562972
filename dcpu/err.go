package dcpu

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Disassembler errors
	ErrWordsTruncated = errors.New(f("word stream truncated"))

	// Assembler errors
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrCommaMissing    = errors.New(f("comma missing between operands"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrProgramSize     = errors.New(f("program exceeds memory"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrLabelInvalid string

func (el ErrLabelInvalid) Error() string {
	return f("'%v' is not a valid label", string(el))
}

type ErrLabelReserved string

func (el ErrLabelReserved) Error() string {
	return f("label %v is a register name", string(el))
}

type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("'%v' is not an instruction", string(em))
}

// ErrOperandField is the fault raised when an operand field does not fit
// in six bits. It cannot come from a decoded opcode word.
type ErrOperandField uint8

func (eo ErrOperandField) Error() string {
	return f("operand field 0x%02x out of range", uint8(eo))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrDecode indicates the address of the instruction that failed to decode.
type ErrDecode struct {
	Address int
	Err     error
}

func (err ErrDecode) Error() string {
	return f("address 0x%04x %v", err.Address, err.Err)
}

func (err ErrDecode) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
