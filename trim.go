package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var ErrAmbiguous = errors.New("ambiguous bases")

// Trim cuts the window out of the read sequence. With strict set, any base
// outside ACGT rejects the read with ErrAmbiguous.
func Trim(r *Read, w Window, strict bool) (string, error) {
	if w.Start < 0 || w.End > len(r.Sequence) || w.Start > w.End {
		return "", fmt.Errorf("%w: read %d: window [%d,%d) outside sequence of length %d",
			ErrMalformed, r.Ordinal, w.Start, w.End, len(r.Sequence))
	}
	sub := r.Sequence[w.Start:w.End]
	if strict && !unambiguous(sub) {
		return "", ErrAmbiguous
	}
	return sub, nil
}

func unambiguous(seq string) bool {
	return seq != "" && lo.EveryBy([]byte(seq), func(b byte) bool {
		return b == 'A' || b == 'C' || b == 'G' || b == 'T'
	})
}

// Genomic DNA linker motifs left over from library preparation.
var linkers = []string{
	"ATCCCCGA",
	"ATCCCCAA",
	"ATCTAACAG",
}

// IsLinker reports whether seq starts with a known linker motif.
func IsLinker(seq string) bool {
	for _, l := range linkers {
		if strings.HasPrefix(seq, l) {
			return true
		}
	}
	return false
}
