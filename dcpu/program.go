package dcpu

import (
	"iter"
	"slices"

	"github.com/ezrec/dcpu16/internal"
)

// Opcode represents a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo  int      // Source line number, starting at 1.
	Address int      // Word address of the first generated word.
	Words   []string // Source tokens, without label declarations.
	Codes   []uint16 // Generated words.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
	Symbols map[string]uint16 // Label word addresses.
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that generated the word at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(address) >= op.Address && int(address) < op.Address+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(address) - op.Address,
			}
			break
		}
	}

	return
}

// words returns every generated word in address order.
func (prog *Program) words() iter.Seq[uint16] {
	seqs := make([]iter.Seq[uint16], 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		seqs = append(seqs, slices.Values(op.Codes))
	}
	return internal.IterSeqConcat(seqs...)
}

// Binary returns the program as a word sequence.
func (prog *Program) Binary() (bins []uint16) {
	return slices.Collect(prog.words())
}

// Codes returns an iterator of addresses and their words.
func (prog *Program) Codes() iter.Seq2[uint16, uint16] {
	return internal.IterSeqCount(0, prog.words())
}
