package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeqCount pairs each value of seq with a running index starting at base.
func IterSeqCount[T any](base uint16, seq iter.Seq[T]) iter.Seq2[uint16, T] {
	return func(yield func(uint16, T) bool) {
		n := base
		for val := range seq {
			if !yield(n, val) {
				return
			}
			n++
		}
	}
}
