package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/posterior"
	"github.com/tsawler/posterior/extract"
	"github.com/tsawler/posterior/internal/config"
	"github.com/tsawler/posterior/model"
	"github.com/tsawler/posterior/summary"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "posterior",
	Short: "Summarize fitted Bayesian GLMs into annotated reports and forest plots",
	Long: `posterior post-processes the output of a Bayesian GLM fit: it extracts
coefficient posteriors from the fit's summary table, flags strongly
correlated parameter pairs from the covariance matrix, and produces an
ordered report or a forest plot.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
}

// loadConfig returns the file config when --config is set, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// loadFit reads a FitResult stored as JSON.
func loadFit(path string) (*model.FitResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fit: %w", err)
	}
	fit := &model.FitResult{}
	if err := json.Unmarshal(raw, fit); err != nil {
		return nil, fmt.Errorf("parsing fit %s: %w", path, err)
	}
	return fit, nil
}

// summarizerFor configures the fluent pipeline from config plus command
// flags.
func summarizerFor(fit *model.FitResult, cfg *config.Config, features []string, threshold float64) (*posterior.Summarizer, error) {
	s := posterior.From(fit)

	layout := extract.DefaultLayout()
	switch cfg.Layout {
	case "", "auto":
	case "positional":
		layout.Mode = extract.ModePositional
	case "named":
		layout.Mode = extract.ModeNamed
	default:
		return nil, fmt.Errorf("unknown layout %q", cfg.Layout)
	}
	s = s.Layout(layout)

	if threshold == 0 {
		threshold = cfg.Threshold
	}
	s = s.Threshold(threshold)

	if len(features) == 0 {
		features = cfg.Features
	}
	if len(features) > 0 {
		s = s.Features(features...)
	}
	if !cfg.StrictFeatures() {
		s = s.Lenient()
	}
	if cfg.PlotWidth > 0 || cfg.PlotHeight > 0 {
		s = s.PlotSize(cfg.PlotWidth, cfg.PlotHeight)
	}
	return s, nil
}

// writeReport writes a report in the named format.
func writeReport(w io.Writer, rep *model.Report, format string) error {
	switch format {
	case "", "text":
		_, err := io.WriteString(w, rep.String())
		return err
	case "csv":
		_, err := io.WriteString(w, rep.ToCSV())
		return err
	case "tsv":
		_, err := io.WriteString(w, rep.ToTSV())
		return err
	case "markdown", "md":
		_, err := io.WriteString(w, rep.ToMarkdown())
		return err
	case "json":
		return summary.WriteJSON(w, rep)
	case "html":
		return summary.WriteHTML(w, rep)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// openOutput returns stdout for "" or "-", otherwise the named file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
