package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := pgzip.NewWriter(f)
	_, err = gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	content := "@r1\nACGT\n+\nIIII\n"

	plain := filepath.Join(dir, "plain.fq")
	require.NoError(t, os.WriteFile(plain, []byte(content), 0o644))
	got, err := readFile(plain)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	gz := filepath.Join(dir, "reads.fq.gz")
	writeGzip(t, gz, content)
	got, err = readFile(gz)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	_, err = readFile(filepath.Join(dir, "missing.fq"))
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines([]byte("a\r\nb\r\n\n\n")))
	assert.Equal(t, []string{"a", "", "b"}, splitLines([]byte("a\n\nb")))
	assert.Empty(t, splitLines([]byte("")))
}

func TestPairIntensity(t *testing.T) {
	recs, err := pairIntensity([]string{"q1", "q2"}, []string{"s1", "s2"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rawRecord{ordinal: 2, lines: []string{"q2", "s2"}}, recs[1])

	_, err = pairIntensity([]string{"q1", "q2"}, []string{"s1"})
	assert.ErrorIs(t, err, ErrStreamMismatch)
}

func TestParseIntensity(t *testing.T) {
	qual := "40 -10 -20 -30\t-5 30 -10 -40\t1 2 3 4"

	read, err := parseIntensity(rawRecord{ordinal: 3, lines: []string{qual, "7\t1\t255\t669\tACG"}})
	require.NoError(t, err)
	assert.Equal(t, &Read{
		Ordinal:  3,
		ID:       "7-1-255-669",
		Sequence: "ACG",
		Quartets: [][4]int{{40, -10, -20, -30}, {-5, 30, -10, -40}, {1, 2, 3, 4}},
	}, read)

	bad := []struct {
		name string
		qual string
		seq  string
	}{
		{"NonInteger", "40 -10 -20 abc\t1 2 3 4\t1 2 3 4", "7\t1\t255\t669\tACG"},
		{"ThreeIntensities", "40 -10 -20\t1 2 3 4\t1 2 3 4", "7\t1\t255\t669\tACG"},
		{"TrailingTab", qual + "\t", "7\t1\t255\t669\tACG"},
		{"MissingSequenceField", qual, "7\t1\t255\t669"},
		{"LengthMismatch", qual, "7\t1\t255\t669\tACGT"},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseIntensity(rawRecord{ordinal: 1, lines: []string{tc.qual, tc.seq}})
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseExport(t *testing.T) {
	line := "SOLEXA3_77_30V9CAAXX\t\t4\t1\t1068\t522\t\t1\tGGACAGCT\tYYYYYYJY\tchr13\t\t36311743\tF"

	read, err := parseExport(rawRecord{ordinal: 1, lines: []string{line}})
	require.NoError(t, err)
	assert.Equal(t, "4-1-1068-522a", read.ID)
	assert.Equal(t, "GGACAGCT", read.Sequence)
	assert.Equal(t, "YYYYYYJY", read.Quality)

	read, err = parseExport(rawRecord{ordinal: 1, lines: []string{strings.Replace(line, "\t1\tGG", "\t2\tGG", 1)}})
	require.NoError(t, err)
	assert.Equal(t, "4-1-1068-522b", read.ID)

	read, err = parseExport(rawRecord{ordinal: 1, lines: []string{strings.Replace(line, "\t1\tGG", "\t0\tGG", 1)}})
	require.NoError(t, err)
	assert.Equal(t, "4-1-1068-522", read.ID)

	_, err = parseExport(rawRecord{ordinal: 2, lines: []string{"a b c d e f g"}})
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = parseExport(rawRecord{ordinal: 2, lines: []string{"a 4 1 2 3 1 ACGT YYY"}})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseFastq(t *testing.T) {
	read, err := parseFastq(rawRecord{ordinal: 1, lines: []string{"@r1 extra\r", "ACGT ", "+r1", "IIII"}})
	require.NoError(t, err)
	assert.Equal(t, &Read{Ordinal: 1, ID: "@r1 extra", Sequence: "ACGT", Quality: "IIII"}, read)

	tests := []struct {
		name  string
		lines []string
	}{
		{"MissingAt", []string{"r1", "ACGT", "+", "IIII"}},
		{"MissingPlus", []string{"@r1", "ACGT", "-", "IIII"}},
		{"LengthMismatch", []string{"@r1", "ACGT", "+", "III"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFastq(rawRecord{ordinal: 1, lines: tc.lines})
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestSplitFastq(t *testing.T) {
	lines := []string{"@r1", "ACGT", "+", "IIII", "@r2", "TTTT", "+", "IIII"}
	recs, err := splitFastq(lines)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[1].ordinal)
	assert.Equal(t, "@r2", recs[1].lines[0])

	_, err = splitFastq(lines[:7])
	assert.ErrorIs(t, err, ErrMalformed)
}
