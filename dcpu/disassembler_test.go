package dcpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemblerScenario(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble([]uint16{0x7c01, 0x0030})
	assert.NoError(err)
	assert.Equal("SET A, 0x30", text)
}

func TestDisassemblerFixture(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble(fixtureWords)
	assert.NoError(err)
	assert.Equal(fixtureText, text)
}

func TestDisassemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble(nil)
	assert.NoError(err)
	assert.Equal("", text)

	// Unknown non-basic opcodes produce no text.
	text, err = Disassemble([]uint16{0x0000, 0x7c20, 0x0000})
	assert.NoError(err)
	assert.Equal("", text)
}

func TestDisassemblerSkipNonBasic(t *testing.T) {
	assert := assert.New(t)

	// 0x7c20 is an unknown non-basic opcode with a next word field;
	// only the opcode word is consumed, so 0x8401 decodes next.
	var addresses []int
	var lines []string
	for listing, err := range Instructions([]uint16{0x7c20, 0x8401, 0xe010}) {
		assert.NoError(err)
		addresses = append(addresses, listing.Address)
		lines = append(lines, listing.String())
	}

	assert.Equal([]int{1, 2}, addresses)
	assert.Equal([]string{"SET A, 0x1", "JSR 0x18"}, lines)
}

func TestDisassemblerListing(t *testing.T) {
	assert := assert.New(t)

	var listings []Listing
	for listing, err := range Instructions(fixtureWords) {
		assert.NoError(err)
		listings = append(listings, listing)
	}

	assert.Equal(17, len(listings))

	assert.Equal(0, listings[0].Address)
	assert.Equal([]uint16{0x7c01, 0x0030}, listings[0].Words)

	assert.Equal(2, listings[1].Address)
	assert.Equal([]uint16{0x7de1, 0x1000, 0x0020}, listings[1].Words)

	assert.Equal(0x1a, listings[16].Address)
	assert.Equal([]uint16{0x7dc1, 0x001a}, listings[16].Words)
	assert.Equal(MakeBasic(OP_SET, MakeSpecial(SPECIAL_PC), MakeNextWord(0x1a)), listings[16].Instruction)
}

func TestDisassemblerStreaming(t *testing.T) {
	assert := assert.New(t)

	seq := Instructions(fixtureWords)

	var first []string
	for listing, err := range seq {
		assert.NoError(err)
		first = append(first, listing.String())
		if len(first) == 3 {
			break
		}
	}
	assert.Equal([]string{"SET A, 0x30", "SET [0x1000], 0x20", "SUB A, [0x1000]"}, first)

	// The sequence restarts from address 0.
	var again []string
	for listing, err := range seq {
		assert.NoError(err)
		again = append(again, listing.String())
	}
	assert.Equal(strings.Split(fixtureText, "\n"), again)
}

func TestDisassemblerTruncated(t *testing.T) {
	assert := assert.New(t)

	text, err := Disassemble([]uint16{0x7c01, 0x0030, 0x7de1, 0x1000})
	assert.Equal("", text)
	assert.ErrorIs(err, ErrWordsTruncated)

	var de *ErrDecode
	assert.True(errors.As(err, &de))
	assert.Equal(2, de.Address)
}

func TestDisassemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Without forward references, reassembly reproduces the words.
	sources := []string{
		fixtureText,
		":top SET A, 1\nSET PC, top\nJSR top",
		strings.Repeat("SET A, B\n", 0x20) + ":far SET PC, far\nSET [far+J], [far]",
	}

	for _, source := range sources {
		words, err := Assemble(source)
		assert.NoError(err)

		text, err := Disassemble(words)
		assert.NoError(err)

		again, err := Assemble(text)
		assert.NoError(err)
		assert.Equal(words, again)
	}
}

func FuzzDisassembler(f *testing.F) {
	f.Add(uint16(0x7c01), uint16(0x0030), uint16(0x7de1), uint16(0x1000))
	f.Add(uint16(0x2161), uint16(0x2000), uint16(0x7c10), uint16(0x0018))
	f.Add(uint16(0x0000), uint16(0x7c20), uint16(0xffff), uint16(0x61c1))
	f.Add(uint16(0x7def), uint16(0x8000), uint16(0xffff), uint16(0xe5c1))

	f.Fuzz(func(t *testing.T, w0, w1, w2, w3 uint16) {
		assert := assert.New(t)

		words := []uint16{w0, w1, w2, w3}

		text, err := Disassemble(words)
		if err != nil {
			assert.ErrorIs(err, ErrWordsTruncated)
			return
		}

		// Reassembly may compact literals, but renders the same text.
		again, err := Assemble(text)
		assert.NoError(err, text)
		assert.LessOrEqual(len(again), len(words))

		text_again, err := Disassemble(again)
		assert.NoError(err)
		assert.Equal(text, text_again)
	})
}
