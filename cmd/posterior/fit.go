package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kshedden/dstream/dstream"
	"github.com/kshedden/dstream/formula"
	"github.com/kshedden/statmodel/glm"
	"github.com/spf13/cobra"

	"github.com/tsawler/posterior/cohort"
	"github.com/tsawler/posterior/glmfit"
)

var (
	fitClinical   string
	fitMutations  string
	fitCohortName string
	fitResponse   string
	fitCovariates []string
	fitGenes      []string
	fitFamily     string
	fitEncoding   string
	fitSaveFit    string
	fitFormat     string
	fitOut        string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a GLM over a cohort and report the coefficient posteriors",
	Long: `fit joins a clinical covariate table with somatic mutation calls on
sample identifier, fits a GLM of the response on the covariates and the
per-gene mutation indicators, and prints the annotated posterior report.

With --config pointing at a file that sets cache_path, loaded cohort tables
are cached in sqlite and reused on later runs.`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitClinical, "clinical", "", "clinical covariate CSV (sample id in the first column)")
	fitCmd.Flags().StringVar(&fitMutations, "mutations", "", "somatic mutation call CSV (sample,gene per row)")
	fitCmd.Flags().StringVar(&fitCohortName, "cohort", "cohort", "cohort name used for caching")
	fitCmd.Flags().StringVar(&fitResponse, "response", "", "numeric clinical column to model")
	fitCmd.Flags().StringSliceVar(&fitCovariates, "covariates", nil, "numeric clinical columns used as predictors")
	fitCmd.Flags().StringSliceVar(&fitGenes, "genes", nil, "genes whose mutation status enters the model (default: all)")
	fitCmd.Flags().StringVar(&fitFamily, "family", "gaussian", "GLM family: gaussian or binomial")
	fitCmd.Flags().StringVar(&fitEncoding, "encoding", "", "source encoding: utf-8, latin-1, windows-1252")
	fitCmd.Flags().StringVar(&fitSaveFit, "save-fit", "", "also write the fit as JSON to this path")
	fitCmd.Flags().StringVar(&fitFormat, "format", "", "report format: text, csv, tsv, markdown, json, html")
	fitCmd.Flags().StringVarP(&fitOut, "output", "o", "", "report output file (default stdout)")
	fitCmd.MarkFlagRequired("response")
	rootCmd.AddCommand(fitCmd)
}

// loadCohort reads the clinical and mutation tables, going through the
// sqlite cache when one is configured.
func loadCohort(cachePath string) (*cohort.ClinicalTable, *cohort.MutationMatrix, error) {
	var store *cohort.Store
	if cachePath != "" {
		var err error
		store, err = cohort.OpenStore(cachePath)
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()
	}

	opts := cohort.ReadOptions{Encoding: fitEncoding}

	clin, err := loadClinical(store, opts)
	if err != nil {
		return nil, nil, err
	}
	mut, err := loadMutations(store, opts)
	if err != nil {
		return nil, nil, err
	}
	return clin, mut, nil
}

func loadClinical(store *cohort.Store, opts cohort.ReadOptions) (*cohort.ClinicalTable, error) {
	if fitClinical == "" && store != nil {
		clin, err := store.LoadClinical(fitCohortName)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cohort %q not cached; pass --clinical", fitCohortName)
		}
		return clin, err
	}
	if fitClinical == "" {
		return nil, fmt.Errorf("--clinical is required without a cache")
	}

	f, err := os.Open(fitClinical)
	if err != nil {
		return nil, fmt.Errorf("opening clinical table: %w", err)
	}
	defer f.Close()
	clin, err := cohort.ReadClinical(f, opts)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.SaveClinical(fitCohortName, clin); err != nil {
			return nil, fmt.Errorf("caching clinical table: %w", err)
		}
	}
	return clin, nil
}

func loadMutations(store *cohort.Store, opts cohort.ReadOptions) (*cohort.MutationMatrix, error) {
	if fitMutations == "" && store != nil {
		mut, err := store.LoadMutations(fitCohortName)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cohort %q not cached; pass --mutations", fitCohortName)
		}
		return mut, err
	}
	if fitMutations == "" {
		return nil, fmt.Errorf("--mutations is required without a cache")
	}

	f, err := os.Open(fitMutations)
	if err != nil {
		return nil, fmt.Errorf("opening mutation calls: %w", err)
	}
	defer f.Close()
	mut, err := cohort.ReadMutations(f, opts)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.SaveMutations(fitCohortName, mut); err != nil {
			return nil, fmt.Errorf("caching mutation calls: %w", err)
		}
	}
	return mut, nil
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clin, mut, err := loadCohort(cfg.CachePath)
	if err != nil {
		return err
	}

	genes := fitGenes
	if len(genes) == 0 {
		genes = mut.Genes
	}
	design, err := cohort.Join(clin, mut, genes)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := design.WriteCSV(&buf); err != nil {
		return err
	}

	numeric := append([]string{fitResponse}, fitCovariates...)
	numeric = append(numeric, genes...)
	tc := &dstream.CSVTypeConf{
		Float64: numeric,
		String:  []string{"sample"},
	}
	ds := dstream.FromCSV(&buf).TypeConf(tc).ChunkSize(100).HasHeader().Done()
	ds = dstream.MemCopy(ds, false)

	terms := append(append([]string(nil), fitCovariates...), genes...)
	fml := "1 + " + strings.Join(terms, " + ")
	f1 := formula.New(fml, ds).Keep(fitResponse).Done()
	f2 := dstream.MemCopy(f1, false)
	f2 = dstream.DropNA(f2)

	var fam *glm.Family
	switch fitFamily {
	case "gaussian":
		fam = glm.NewFamily(glm.GaussianFamily)
	case "binomial":
		fam = glm.NewFamily(glm.BinomialFamily)
	default:
		return fmt.Errorf("unknown family %q", fitFamily)
	}

	m := glm.NewGLM(f2, fitResponse).Family(fam).Done()
	rslt := m.Fit()

	names := glmfit.CoefficientNames(f2, fitResponse)
	diag := glmfit.Diagnostics{
		Scale:   rslt.Scale(),
		MeanPPD: responseMean(design, fitResponse),
	}
	fit, err := glmfit.FromResults(names, rslt, diag)
	if err != nil {
		return fmt.Errorf("adapting fit: %w", err)
	}

	if fitSaveFit != "" {
		raw, err := json.MarshalIndent(fit, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(fitSaveFit, raw, 0o644); err != nil {
			return fmt.Errorf("writing fit: %w", err)
		}
	}

	s, err := summarizerFor(fit, cfg, nil, 0)
	if err != nil {
		return err
	}
	rep, err := s.Report()
	if err != nil {
		return fmt.Errorf("summarizing fit: %w", err)
	}

	format := fitFormat
	if format == "" {
		format = cfg.Format
	}
	out, err := openOutput(fitOut)
	if err != nil {
		return err
	}
	defer out.Close()
	return writeReport(out, rep, format)
}

// responseMean averages the response column over the design rows, the
// point-estimate stand-in for a mean posterior predictive draw.
func responseMean(d *cohort.Design, response string) float64 {
	col := -1
	for i, c := range d.Columns {
		if c == response {
			col = i
			break
		}
	}
	if col < 0 || len(d.Rows) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, row := range d.Rows {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
