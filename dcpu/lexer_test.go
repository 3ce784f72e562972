package dcpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexLine(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		words []string
	}){
		{"SET X, 2", []string{"SET", "X", ",", "2"}},
		{"SET X, 2 ; foo", []string{"SET", "X", ",", "2"}},
		{"; only a comment", nil},
		{"", nil},
		{"   \t  ", nil},
		{"SET [0x1000+I], [A]", []string{"SET", "[", "0x1000", "+", "I", "]", ",", "[", "A", "]"}},
		{":loop SET PC, 0x01", []string{":", "loop", "SET", "PC", ",", "0x01"}},
		{":crash", []string{":", "crash"}},
		{"SET A,-1", []string{"SET", "A", ",", "-", "1"}},
		{"SET A, B\r", []string{"SET", "A", ",", "B"}},
		{"SET A, $(SIZE - 1) ; expr", []string{"SET", "A", ",", "$(SIZE - 1)"}},
		{"SET A,$((1+2)*3)+B", []string{"SET", "A", ",", "$((1+2)*3)", "+", "B"}},
		{"SET A, $(1 + ", []string{"SET", "A", ",", "$(1 + "}},
	}

	for _, entry := range table {
		assert.Equal(entry.words, LexLine(entry.line), entry.line)
	}
}

func TestLex(t *testing.T) {
	assert := assert.New(t)

	lines := Lex("SET A, 0x30\n\n; comment\n:end SUB A, 1")
	assert.Equal([][]string{
		{"SET", "A", ",", "0x30"},
		nil,
		nil,
		{":", "end", "SUB", "A", ",", "1"},
	}, lines)
}
