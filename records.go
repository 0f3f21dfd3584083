package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
)

var (
	ErrMalformed      = errors.New("malformed record")
	ErrStreamMismatch = errors.New("quality and sequence files differ in read count")
)

// Read is one sequencing read with its quality evidence. Quality carries the
// ASCII quality string (export, fastq); Quartets the per-base channel
// intensities (intensity).
type Read struct {
	Ordinal  int
	ID       string
	Sequence string
	Quality  string
	Quartets [][4]int
}

// rawRecord holds the input lines making up one read before parsing.
type rawRecord struct {
	ordinal int
	lines   []string
}

type recordParser func(rawRecord) (*Read, error)

// readFile loads a whole input file, decompressing it when it starts with
// the gzip magic number.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if sig, _ := br.Peek(2); len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	}
	return io.ReadAll(r)
}

// splitLines drops line endings and trailing blank lines.
func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func loadLines(path string) ([]string, int64, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("could not read from %s: %w", path, err)
	}
	return splitLines(data), int64(len(data)), nil
}

// loadRecords reads every input of the run into memory and groups the lines
// into raw records. The returned size is the number of bytes loaded.
func loadRecords(o *Options) ([]rawRecord, recordParser, int64, error) {
	lines, size, err := loadLines(o.Input)
	if err != nil {
		return nil, nil, 0, err
	}
	switch o.Variant {
	case Intensity:
		qual, qsize, err := loadLines(o.QualFile)
		if err != nil {
			return nil, nil, 0, err
		}
		recs, err := pairIntensity(qual, lines)
		return recs, parseIntensity, size + qsize, err
	case FastqPhred:
		recs, err := splitFastq(lines)
		return recs, parseFastq, size, err
	default:
		return splitExport(lines), parseExport, size, nil
	}
}

// pairIntensity matches the n-th quality line with the n-th sequence line.
// Files of different length are rejected outright.
func pairIntensity(qual, seq []string) ([]rawRecord, error) {
	if len(qual) != len(seq) {
		return nil, fmt.Errorf("%w: %d quality lines, %d sequence lines", ErrStreamMismatch, len(qual), len(seq))
	}
	recs := make([]rawRecord, len(qual))
	for i := range qual {
		recs[i] = rawRecord{ordinal: i + 1, lines: []string{qual[i], seq[i]}}
	}
	return recs, nil
}

func splitExport(lines []string) []rawRecord {
	recs := make([]rawRecord, len(lines))
	for i, l := range lines {
		recs[i] = rawRecord{ordinal: i + 1, lines: []string{l}}
	}
	return recs
}

func splitFastq(lines []string) ([]rawRecord, error) {
	if len(lines)%4 != 0 {
		return nil, fmt.Errorf("%w: fastq has %d lines, not a multiple of 4", ErrMalformed, len(lines))
	}
	recs := make([]rawRecord, 0, len(lines)/4)
	for i := 0; i < len(lines); i += 4 {
		recs = append(recs, rawRecord{ordinal: i/4 + 1, lines: lines[i : i+4]})
	}
	return recs, nil
}

func malformed(n int, format string, args ...any) error {
	return fmt.Errorf("%w: read %d: %s", ErrMalformed, n, fmt.Sprintf(format, args...))
}

// parseIntensity builds a read from a prb line (tab separated groups of four
// intensities) and a seq line (lane, tile, x, y, sequence).
func parseIntensity(raw rawRecord) (*Read, error) {
	fields := strings.Split(raw.lines[1], "\t")
	if len(fields) < 5 {
		return nil, malformed(raw.ordinal, "expected 5 sequence fields, got %d", len(fields))
	}
	groups := strings.Split(raw.lines[0], "\t")
	quartets := make([][4]int, len(groups))
	for i, g := range groups {
		vals := strings.Fields(g)
		if len(vals) != 4 {
			return nil, malformed(raw.ordinal, "base %d: expected 4 intensities, got %d", i+1, len(vals))
		}
		for j, v := range vals {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, malformed(raw.ordinal, "base %d: %v", i+1, err)
			}
			quartets[i][j] = n
		}
	}
	seq := fields[4]
	if len(seq) != len(quartets) {
		return nil, malformed(raw.ordinal, "sequence has %d bases, quality has %d", len(seq), len(quartets))
	}
	return &Read{
		Ordinal:  raw.ordinal,
		ID:       strings.Join(fields[:4], "-"),
		Sequence: seq,
		Quartets: quartets,
	}, nil
}

// parseExport reads a whitespace separated export line: fields 1-4 locate
// the cluster, 5 is the pair indicator, 6 the sequence and 7 the quality.
func parseExport(raw rawRecord) (*Read, error) {
	fields := strings.Fields(raw.lines[0])
	if len(fields) < 8 {
		return nil, malformed(raw.ordinal, "expected at least 8 fields, got %d", len(fields))
	}
	seq, qual := fields[6], fields[7]
	if len(seq) != len(qual) {
		return nil, malformed(raw.ordinal, "sequence and quality lengths differ: %d and %d", len(seq), len(qual))
	}
	return &Read{
		Ordinal:  raw.ordinal,
		ID:       strings.Join(fields[1:5], "-") + pairSuffix(fields[5]),
		Sequence: seq,
		Quality:  qual,
	}, nil
}

func pairSuffix(pair string) string {
	switch pair {
	case "1":
		return "a"
	case "2":
		return "b"
	}
	return ""
}

func parseFastq(raw rawRecord) (*Read, error) {
	id := strings.TrimSpace(raw.lines[0])
	seq := strings.TrimSpace(raw.lines[1])
	plus := strings.TrimSpace(raw.lines[2])
	qual := strings.TrimSpace(raw.lines[3])
	if !strings.HasPrefix(id, "@") {
		return nil, malformed(raw.ordinal, "expected '@' at the beginning of header line, got: %s", id)
	}
	if !strings.HasPrefix(plus, "+") {
		return nil, malformed(raw.ordinal, "expected '+' line, got: %s", plus)
	}
	if len(seq) != len(qual) {
		return nil, malformed(raw.ordinal, "sequence and quality strings must have the same length, got: %d and %d", len(seq), len(qual))
	}
	return &Read{
		Ordinal:  raw.ordinal,
		ID:       id,
		Sequence: seq,
		Quality:  qual,
	}, nil
}
