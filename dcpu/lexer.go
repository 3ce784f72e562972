package dcpu

import (
	"strings"
)

const (
	separators = ":,[]+-" // Always tokens of their own.
	whitespace = " \t\r\v\f"
)

// Lex splits source text into one token line per source line.
func Lex(source string) (lines [][]string) {
	for _, line := range strings.Split(source, "\n") {
		lines = append(lines, LexLine(line))
	}
	return
}

// LexLine splits a single source line into tokens, dropping any comment.
//
// A $(...) expression is returned as a single token.
func LexLine(line string) (words []string) {
	line, _, _ = strings.Cut(line, ";")

	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case c == '$' && n+1 < len(line) && line[n+1] == '(':
			flush()
			end := expressionEnd(line[n:])
			words = append(words, line[n:n+end])
			n += end - 1
		case strings.IndexByte(separators, c) >= 0:
			flush()
			words = append(words, string(c))
		case strings.IndexByte(whitespace, c) >= 0:
			flush()
		default:
			word.WriteByte(c)
		}
	}
	flush()

	return
}

// expressionEnd returns the length of the $(...) expression at the start
// of text, or len(text) if it is not terminated.
func expressionEnd(text string) int {
	depth := 0
	for n := 1; n < len(text); n++ {
		switch text[n] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return n + 1
			}
		}
	}
	return len(text)
}
