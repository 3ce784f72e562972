package dcpu

import (
	"iter"
	"strings"
)

// Listing is a single disassembled instruction.
type Listing struct {
	Address     int      // Address of the instruction word.
	Words       []uint16 // Instruction word and its literal words.
	Instruction Instruction
}

// String returns the assembly language text of the listing.
func (listing Listing) String() string {
	return listing.Instruction.String()
}

// Instructions walks the word sequence from address 0, yielding one
// listing per decoded instruction. Unknown non-basic opcodes are skipped.
// After an error the walk stops.
func Instructions(words []uint16) iter.Seq2[Listing, error] {
	return func(yield func(Listing, error) bool) {
		pos := 0
		for pos < len(words) {
			inst, ok, next, err := Decode(words, pos)
			if err != nil {
				yield(Listing{Address: pos}, &ErrDecode{Address: pos, Err: err})
				return
			}

			listing := Listing{
				Address:     pos,
				Words:       words[pos:next],
				Instruction: inst,
			}
			pos = next

			if !ok {
				continue
			}

			if !yield(listing, nil) {
				return
			}
		}
	}
}

// Disassemble renders a word sequence as newline separated assembly text.
func Disassemble(words []uint16) (text string, err error) {
	var lines []string

	for listing, err := range Instructions(words) {
		if err != nil {
			return "", err
		}
		lines = append(lines, listing.String())
	}

	text = strings.Join(lines, "\n")
	return
}
