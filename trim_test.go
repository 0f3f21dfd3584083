package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		window  Window
		strict  bool
		want    string
		wantErr error
	}{
		{"WholeRead", "ACGTACGT", Window{0, 8}, true, "ACGTACGT", nil},
		{"Slice", "NNACGTNN", Window{2, 6}, true, "ACGT", nil},
		{"AmbiguousStrict", "ACNTACGT", Window{0, 8}, true, "", ErrAmbiguous},
		{"AmbiguousLenient", "ACNTACGT", Window{0, 8}, false, "ACNTACGT", nil},
		{"DotIsAmbiguous", "AC.TACGT", Window{0, 4}, true, "", ErrAmbiguous},
		{"LowercaseIsAmbiguous", "acgt", Window{0, 4}, true, "", ErrAmbiguous},
		{"OutsideSequence", "ACGT", Window{0, 8}, false, "", ErrMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Trim(&Read{Ordinal: 1, Sequence: tc.seq}, tc.window, tc.strict)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTrimIsIdempotent(t *testing.T) {
	read := &Read{Sequence: "TTTTGGGGACGTACGTACGTACGTACGTCCCC"}
	trace := traceOf("xxxx" + strings.Repeat("-", 24) + "xxxx")

	w, ok := FindRun(trace, 15, len(read.Sequence))
	require.True(t, ok)
	first, err := Trim(read, w, true)
	require.NoError(t, err)

	again := &Read{Sequence: first}
	w, ok = FindRun(traceOf(strings.Repeat("-", len(first))), 15, len(first))
	require.True(t, ok)
	second, err := Trim(again, w, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIsLinker(t *testing.T) {
	tests := []struct {
		seq  string
		want bool
	}{
		{"ATCCCCGAGGTTACGTACGT", true},
		{"ATCCCCAAGGTTACGTACGT", true},
		{"ATCCCCTAGGTTACGTACGT", false},
		{"ATCCCCGTGGTTACGTACGT", false},
		{"ATCTAACAGTTACGTACGTA", true},
		{"ATCTAACATTTACGTACGTA", false},
		{"GATCTAACAGTTACGTACGT", false},
		{"ATCCCC", false},
	}
	for _, tc := range tests {
		t.Run(tc.seq, func(t *testing.T) {
			assert.Equal(t, tc.want, IsLinker(tc.seq))
		})
	}
}
