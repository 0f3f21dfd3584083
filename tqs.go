package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/cheggaaa/pb/v3"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// trimmer runs records through classification, run finding, trimming and
// linker filtering, writing accepted reads to out.
type trimmer struct {
	opts       *Options
	classifier Classifier
	parse      recordParser
	out        *FastaWriter
	logger     *slog.Logger
	bar        *pb.ProgressBar
}

func (t *trimmer) run(recs []rawRecord) (Counts, error) {
	var c Counts
	strict := t.opts.Variant == Intensity
	for _, raw := range recs {
		if t.bar != nil {
			t.bar.Increment()
		}
		c.Total++

		read, err := t.parse(raw)
		if err != nil {
			if t.opts.SkipMalformed && errors.Is(err, ErrMalformed) {
				t.logger.Warn("skipping record", "err", err)
				c.Malformed++
				continue
			}
			return c, err
		}

		trace := t.classifier.Classify(read)
		w, ok := FindRun(trace, t.opts.MinRun, t.opts.maxRun(read))
		if !ok {
			continue
		}
		c.Passed++

		seq, err := Trim(read, w, strict)
		if errors.Is(err, ErrAmbiguous) {
			c.Ambiguous++
			continue
		}
		if err != nil {
			return c, err
		}
		if strict && IsLinker(seq) {
			c.Linker++
			continue
		}

		if err := t.out.Write(read.ID, seq); err != nil {
			return c, err
		}
		c.Usable++
		t.logger.Debug("passed", "read", read.Ordinal, "id", read.ID, "trace", trace.String(),
			"pass", trace.Passing(), "start", w.Start, "end", w.End, "seq", seq)
	}
	return c, nil
}

// ProcessReads trims every read of the configured input and writes the FASTA
// and log files next to it.
func ProcessReads(o *Options) (err error) {
	startTime := time.Now()

	if err := o.Validate(); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, o.Verbose)

	recs, parse, size, err := loadRecords(o)
	if err != nil {
		return err
	}
	logger.Info("records loaded", "variant", o.Variant, "records", len(recs), "size", bytefmt.ByteSize(uint64(size)))

	fastaPath := o.FastaPath()
	fastaFile, err := createOutputFile(fastaPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fastaFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	logFile, err := createOutputFile(o.LogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rl := &runLog{w: logFile}
	rl.header(o, fastaPath)
	if o.Variant == Intensity {
		rl.stamp("Reading Quality File", startTime)
	}
	rl.stamp("Trimming low quality bases", time.Now())

	t := &trimmer{
		opts:       o,
		classifier: o.Classifier(),
		parse:      parse,
		out:        NewFastaWriter(fastaFile),
		logger:     logger,
	}
	if o.Progress {
		t.bar = pb.Full.Start64(int64(len(recs)))
		defer t.bar.Finish()
	}

	counts, err := t.run(recs)
	if err != nil {
		return fmt.Errorf("trimming %s: %w", o.Input, err)
	}
	rl.counts(o, counts, fastaPath)
	if rl.err != nil {
		return rl.err
	}

	printSummary(os.Stdout, o, counts, time.Since(startTime))
	return nil
}
