package main

import (
	"errors"
	"fmt"
)

// Variant selects how per-base quality evidence is encoded.
type Variant int

const (
	Intensity Variant = iota
	ExportPhred
	FastqPhred
)

func (v Variant) String() string {
	switch v {
	case Intensity:
		return "intensity"
	case ExportPhred:
		return "export"
	case FastqPhred:
		return "fastq"
	default:
		return "unknown"
	}
}

const (
	minReadLength    = 15
	maxReadLength    = 200
	minIntensityRun  = 16
	minPhredRun      = 15
	phred33, phred64 = 33, 64
)

var ErrConfig = errors.New("invalid configuration")

type Options struct {
	Variant Variant

	// Input is the sequence file (intensity), the export file or the fastq file.
	Input string
	// QualFile is the prb intensity file, intensity only.
	QualFile string

	Threshold  int
	Difference int
	MinRun     int
	ReadLength int
	Encoding   int

	Verbose       bool
	Progress      bool
	SkipMalformed bool

	// Command is the invocation echoed into the run log.
	Command []string
}

// Validate checks the numeric ranges accepted by each variant. It must run
// before any output file is created.
func (o *Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("%w: input file is required", ErrConfig)
	}
	switch o.Variant {
	case Intensity:
		if o.QualFile == "" {
			return fmt.Errorf("%w: quality file is required", ErrConfig)
		}
		if o.ReadLength < minReadLength || o.ReadLength > maxReadLength {
			return fmt.Errorf("%w: -l must be a number between %d and %d", ErrConfig, minReadLength, maxReadLength)
		}
		if o.MinRun < minIntensityRun || o.MinRun > o.ReadLength {
			return fmt.Errorf("%w: -c must be a number between %d and -l", ErrConfig, minIntensityRun)
		}
	case ExportPhred, FastqPhred:
		if o.MinRun < minPhredRun {
			return fmt.Errorf("%w: -c must be a number larger than %d", ErrConfig, minPhredRun)
		}
		if o.Variant == FastqPhred && o.Encoding != phred33 && o.Encoding != phred64 {
			return fmt.Errorf("%w: -e must be either %d or %d", ErrConfig, phred33, phred64)
		}
	default:
		return fmt.Errorf("%w: unknown variant %d", ErrConfig, o.Variant)
	}
	return nil
}

// FastaPath derives the output name from the input name and the run parameters.
func (o *Options) FastaPath() string {
	switch o.Variant {
	case Intensity:
		return fmt.Sprintf("%s_I%dD%dL%d.trim.fa", o.Input, o.Threshold, o.Difference, o.MinRun)
	case FastqPhred:
		return fmt.Sprintf("%s_T%dC%dE%d.trim.fa", o.Input, o.Threshold, o.MinRun, o.Encoding)
	default:
		return fmt.Sprintf("%s_T%dC%d.trim.fa", o.Input, o.Threshold, o.MinRun)
	}
}

func (o *Options) LogPath() string {
	return o.Input + ".log"
}

// Classifier returns the quality classifier for the configured variant.
func (o *Options) Classifier() Classifier {
	switch o.Variant {
	case Intensity:
		return IntensityClassifier{Threshold: o.Threshold, Difference: o.Difference}
	case FastqPhred:
		return FastqClassifier{Threshold: o.Threshold, Offset: o.Encoding}
	default:
		return ExportClassifier{Threshold: o.Threshold}
	}
}

// maxRun is the upper bound on a trim window for read r. Intensity runs use
// the configured cycle count, the other variants the length of the read.
func (o *Options) maxRun(r *Read) int {
	if o.Variant == Intensity {
		return o.ReadLength
	}
	return len(r.Sequence)
}

// parameters lists the flags echoed into the run log, in display order.
func (o *Options) parameters() [][2]string {
	d := func(n int) string { return fmt.Sprint(n) }
	switch o.Variant {
	case Intensity:
		return [][2]string{
			{"-f", o.Input}, {"-q", o.QualFile}, {"-l", d(o.ReadLength)},
			{"-c", d(o.MinRun)}, {"-t", d(o.Threshold)}, {"-d", d(o.Difference)},
		}
	case FastqPhred:
		return [][2]string{
			{"-f", o.Input}, {"-c", d(o.MinRun)}, {"-t", d(o.Threshold)}, {"-e", d(o.Encoding)},
		}
	default:
		return [][2]string{
			{"-f", o.Input}, {"-c", d(o.MinRun)}, {"-t", d(o.Threshold)},
		}
	}
}
