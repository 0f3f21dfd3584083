package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/shenwei356/xopen"
)

const stampLayout = "2006-01-02 15:04"

// Counts tracks what happened to the reads of one run.
type Counts struct {
	Total     int64 // reads examined
	Passed    int64 // reads with a window meeting the minimum run
	Ambiguous int64 // windows holding a non-ACGT base
	Linker    int64 // windows starting with a linker motif
	Malformed int64 // records skipped with --skip-malformed
	Usable    int64 // reads written
}

// FastaWriter writes one two-line FASTA entry per accepted read.
type FastaWriter struct {
	w io.Writer
}

func NewFastaWriter(w io.Writer) *FastaWriter {
	return &FastaWriter{w: w}
}

func (f *FastaWriter) Write(header, seq string) error {
	_, err := fmt.Fprintf(f.w, ">%s\n%s\n", header, seq)
	return err
}

func createOutputFile(path string) (*xopen.Writer, error) {
	w, err := xopen.Wopen(path)
	if err != nil {
		return nil, fmt.Errorf("can not write to %s: %w", path, err)
	}
	return w, nil
}

// runLog records the invocation and the final counts next to the input.
type runLog struct {
	w   io.Writer
	err error
}

func (l *runLog) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format, args...)
}

func (l *runLog) header(o *Options, fasta string) {
	l.printf("\nRunning:\n%s\n", strings.Join(o.Command, " "))
	for _, p := range o.parameters() {
		l.printf("%s %s\n", p[0], p[1])
	}
	l.printf("Fasta file: %s\n\n", fasta)
}

func (l *runLog) stamp(label string, t time.Time) {
	l.printf("\n%s: %s\n", label, t.Format(stampLayout))
}

func (l *runLog) counts(o *Options, c Counts, fasta string) {
	switch o.Variant {
	case Intensity:
		l.printf("%d out of %d sequences passed your filter (I >= %d and D >= %d and L >= %d)\n",
			c.Passed, c.Total, o.Threshold, o.Difference, o.MinRun)
		l.printf("%d sequences contained ambiguous bases\n", c.Ambiguous)
		l.printf("%d out of %d sequences appear to be usable, after filtering out sequences hard-coded in this program * %d gDNA linker sequences*\n",
			c.Usable, c.Total, c.Linker)
	default:
		l.printf("%d out of %d sequences passed your filter (-t >= %d and -c >= %d)\n",
			c.Passed, c.Total, o.Threshold, o.MinRun)
	}
	if c.Malformed > 0 {
		l.printf("%d malformed records were skipped\n", c.Malformed)
	}
	l.printf("DNA sequences have been trimmed accordingly and placed in %s\n", fasta)
}

// printSummary reports the run on the console.
func printSummary(w io.Writer, o *Options, c Counts, elapsed time.Duration) {
	pct := 0.0
	if c.Total > 0 {
		pct = float64(c.Usable) / float64(c.Total) * 100
	}
	hi := color.New(color.FgHiMagenta)

	fmt.Fprintf(w, "\nTotal reads: %s\n", Comma(c.Total))
	fmt.Fprintf(w, "Passed %s filter: %s\n", o.Variant, Comma(c.Passed))
	fmt.Fprintf(w, "Usable reads: %s\n", Comma(c.Usable))
	color.New(color.FgHiGreen).Fprintf(w, "Percentage of usable reads: %.2f%%\n", pct)
	if o.Variant == Intensity {
		hi.Fprintf(w, "\nAmbiguous base count: %s\n", Comma(c.Ambiguous))
		hi.Fprintf(w, "Linker count: %s\n", Comma(c.Linker))
	}
	if c.Malformed > 0 {
		hi.Fprintf(w, "Malformed record count: %s\n", Comma(c.Malformed))
	}
	fmt.Fprintf(w, "\nExecution time: %s\n", elapsed)
}

// Comma formats n with thousands separators.
func Comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
