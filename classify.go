package main

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Trace holds one pass/fail symbol per base.
type Trace []bool

// String renders passing bases as '-' and failing bases as 'x'.
func (t Trace) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, pass := range t {
		if pass {
			b.WriteByte('-')
		} else {
			b.WriteByte('x')
		}
	}
	return b.String()
}

// Passing counts the bases that passed.
func (t Trace) Passing() int {
	return lo.Count(t, true)
}

// Classifier converts the quality evidence of a read into a Trace.
type Classifier interface {
	Classify(r *Read) Trace
}

// IntensityClassifier passes a base when its brightest channel reaches
// Threshold and leads the runner-up by at least Difference.
type IntensityClassifier struct {
	Threshold  int
	Difference int
}

func (c IntensityClassifier) Classify(r *Read) Trace {
	trace := make(Trace, len(r.Quartets))
	for i, q := range r.Quartets {
		hi, second := topTwo(q)
		trace[i] = hi >= c.Threshold && hi-second >= c.Difference
	}
	return trace
}

func topTwo(q [4]int) (int, int) {
	s := q[:]
	sort.Sort(sort.Reverse(sort.IntSlice(s)))
	return s[0], s[1]
}

// ExportClassifier reads the combined-probability quality characters found
// in export files.
type ExportClassifier struct {
	Threshold int
}

func (c ExportClassifier) Classify(r *Read) Trace {
	trace := make(Trace, len(r.Quality))
	for i := 0; i < len(r.Quality); i++ {
		trace[i] = exportPhred(r.Quality[i]) >= float64(c.Threshold)
	}
	return trace
}

// exportPhred converts an export quality character into an approximate
// Phred score. log10 is taken as ln(x)/ln(10) to keep numeric parity with
// existing trim results.
func exportPhred(qual byte) float64 {
	return 10 * math.Log(1+math.Pow(10, float64(int(qual)-64)/10.0)) / math.Log(10)
}

// FastqClassifier subtracts Offset from each quality character. Scores are
// not clamped and may be negative.
type FastqClassifier struct {
	Threshold int
	Offset    int
}

func (c FastqClassifier) Classify(r *Read) Trace {
	trace := make(Trace, len(r.Quality))
	for i := 0; i < len(r.Quality); i++ {
		trace[i] = fastqPhred(r.Quality[i], c.Offset) >= c.Threshold
	}
	return trace
}

func fastqPhred(qual byte, offset int) int {
	return int(qual) - offset
}
