package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	summarizeFeatures  []string
	summarizeThreshold float64
	summarizeFormat    string
	summarizeOut       string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <fit.json>",
	Short: "Build the annotated posterior report for a stored fit",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringSliceVar(&summarizeFeatures, "features", nil, "restrict the report to these coefficients")
	summarizeCmd.Flags().Float64Var(&summarizeThreshold, "threshold", 0, "correlation annotation threshold (default from config)")
	summarizeCmd.Flags().StringVar(&summarizeFormat, "format", "", "output format: text, csv, tsv, markdown, json, html")
	summarizeCmd.Flags().StringVarP(&summarizeOut, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fit, err := loadFit(args[0])
	if err != nil {
		return err
	}

	s, err := summarizerFor(fit, cfg, summarizeFeatures, summarizeThreshold)
	if err != nil {
		return err
	}
	rep, err := s.Report()
	if err != nil {
		return fmt.Errorf("summarizing fit: %w", err)
	}

	format := summarizeFormat
	if format == "" {
		format = cfg.Format
	}
	out, err := openOutput(summarizeOut)
	if err != nil {
		return err
	}
	defer out.Close()
	return writeReport(out, rep, format)
}
