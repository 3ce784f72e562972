package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const wordsPerLine = 8

// WriteWords writes words as a hex dump, eight words to a line.
func WriteWords(w io.Writer, words []uint16) (err error) {
	for n, word := range words {
		sep := " "
		if n%wordsPerLine == wordsPerLine-1 || n == len(words)-1 {
			sep = "\n"
		}
		_, err = fmt.Fprintf(w, "%04x%v", word, sep)
		if err != nil {
			return
		}
	}
	return
}

// ReadWords reads a hex dump of whitespace separated words. Words may
// have a 0x prefix, and ';' starts a comment.
func ReadWords(r io.Reader) (words []uint16, err error) {
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line, _, _ := strings.Cut(scanner.Text(), ";")
		for _, field := range strings.Fields(line) {
			hex := strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			var value uint64
			value, err = strconv.ParseUint(hex, 16, 16)
			if err != nil {
				err = fmt.Errorf("line %d: '%v' is not a hex word", lineno, field)
				return
			}
			words = append(words, uint16(value))
		}
	}

	err = scanner.Err()
	return
}
