package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// commonFlags binds the switches shared by every variant.
func commonFlags(cmd *cobra.Command, o *Options) {
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false, "Log every read passing the filters")
	cmd.Flags().BoolVar(&o.Progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVar(&o.SkipMalformed, "skip-malformed", false, "Skip and count malformed records instead of aborting")
}

func runCommand(o *Options) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		o.Command = os.Args
		if err := ProcessReads(o); err != nil {
			return err
		}
		fmt.Println("\nTrimming completed")
		return nil
	}
}

func intensityCommand() *cobra.Command {
	o := &Options{Variant: Intensity}
	cmd := &cobra.Command{
		Use:   "intensity",
		Short: "Trim reads from a _seq.txt file using the matching _prb.txt intensities",
		RunE:  runCommand(o),
	}
	cmd.Flags().StringVarP(&o.Input, "seq", "f", "", "Illumina sequence file (_seq.txt) (required)")
	cmd.Flags().StringVarP(&o.QualFile, "qual", "q", "", "Illumina intensity file (_prb.txt) (required)")
	cmd.Flags().IntVarP(&o.ReadLength, "length", "l", 36, "Length of sequence reads (number of cycles)")
	cmd.Flags().IntVarP(&o.Threshold, "threshold", "t", 5, "Base intensity threshold value (-40 to 40)")
	cmd.Flags().IntVarP(&o.Difference, "difference", "d", 5, "Intensity difference between top and second best (1 to 80)")
	cmd.Flags().IntVarP(&o.MinRun, "consec", "c", 20, "Minimum number of consecutive bases passing threshold values")
	commonFlags(cmd, o)
	_ = cmd.MarkFlagRequired("seq")
	_ = cmd.MarkFlagRequired("qual")
	return cmd
}

func exportCommand() *cobra.Command {
	o := &Options{Variant: ExportPhred}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Trim reads from an Illumina export file",
		RunE:  runCommand(o),
	}
	cmd.Flags().StringVarP(&o.Input, "export", "f", "", "Illumina export file (required)")
	cmd.Flags().IntVarP(&o.Threshold, "threshold", "t", 10, "Phred quality threshold (0 to 40)")
	cmd.Flags().IntVarP(&o.MinRun, "consec", "c", 20, "Minimum number of consecutive bases passing threshold values")
	commonFlags(cmd, o)
	_ = cmd.MarkFlagRequired("export")
	return cmd
}

func fastqCommand() *cobra.Command {
	o := &Options{Variant: FastqPhred}
	cmd := &cobra.Command{
		Use:   "fastq",
		Short: "Trim reads from a FASTQ file",
		RunE:  runCommand(o),
	}
	cmd.Flags().StringVarP(&o.Input, "fastq", "f", "", "FASTQ file, ASCII+33 or ASCII+64 qualities (required)")
	cmd.Flags().IntVarP(&o.Threshold, "threshold", "t", 10, "Phred quality threshold (0 to 40)")
	cmd.Flags().IntVarP(&o.MinRun, "consec", "c", 20, "Minimum number of consecutive bases passing threshold values")
	cmd.Flags().IntVarP(&o.Encoding, "encoding", "e", 64, "ASCII encoding offset: 33 (standard) or 64 (illumina)")
	commonFlags(cmd, o)
	_ = cmd.MarkFlagRequired("fastq")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tqs v%s\n", version)
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "tqs",
		Short:         "Trim quality sequences: keep the first long run of good bases of each read",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(intensityCommand())
	rootCmd.AddCommand(exportCommand())
	rootCmd.AddCommand(fastqCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error processing reads: %v", err)
	}
}
