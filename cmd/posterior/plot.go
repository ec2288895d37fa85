package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	plotFeatures  []string
	plotThreshold float64
	plotOut       string
)

var plotCmd = &cobra.Command{
	Use:   "plot <fit.json>",
	Short: "Render a forest plot of a stored fit's coefficient posteriors",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().StringSliceVar(&plotFeatures, "features", nil, "restrict the plot to these coefficients")
	plotCmd.Flags().Float64Var(&plotThreshold, "threshold", 0, "correlation annotation threshold (default from config)")
	plotCmd.Flags().StringVarP(&plotOut, "output", "o", "effects.png", "PNG output file")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fit, err := loadFit(args[0])
	if err != nil {
		return err
	}

	s, err := summarizerFor(fit, cfg, plotFeatures, plotThreshold)
	if err != nil {
		return err
	}

	f, err := os.Create(plotOut)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer f.Close()

	if err := s.RenderPNG(f); err != nil {
		return fmt.Errorf("rendering forest plot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", plotOut)
	return nil
}
