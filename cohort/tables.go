package cohort

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	// ErrBadHeader indicates an input table without the expected columns.
	ErrBadHeader = errors.New("cohort: malformed table header")

	// ErrNoSamples indicates a join with no sample present in both tables.
	ErrNoSamples = errors.New("cohort: no overlapping samples")

	// ErrUnknownGene indicates a requested gene absent from the mutation
	// table.
	ErrUnknownGene = errors.New("cohort: unknown gene")

	// ErrUnknownEncoding indicates an unsupported character encoding name.
	ErrUnknownEncoding = errors.New("cohort: unknown encoding")
)

// ReadOptions configures table parsing.
type ReadOptions struct {
	// Encoding names the source character encoding: "", "utf-8",
	// "latin-1", or "windows-1252". Empty means UTF-8.
	Encoding string
}

func decoded(r io.Reader, opts ReadOptions) (io.Reader, error) {
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin-1", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, opts.Encoding)
	}
}

// ClinicalTable is a clinical covariate table: one row per sample, one
// column per covariate. Values are kept as strings; typing happens when the
// design table is streamed into the fitting engine.
type ClinicalTable struct {
	Samples    []string
	Covariates []string
	Values     [][]string // row per sample, aligned with Covariates
}

// ReadClinical parses a clinical CSV export. The first column is the sample
// identifier; every remaining column is a covariate.
func ReadClinical(r io.Reader, opts ReadOptions) (*ClinicalTable, error) {
	src, err := decoded(r, opts)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(src)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading clinical table: %w", err)
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: need a sample column and at least one covariate", ErrBadHeader)
	}

	t := &ClinicalTable{Covariates: records[0][1:]}
	for _, rec := range records[1:] {
		t.Samples = append(t.Samples, rec[0])
		t.Values = append(t.Values, rec[1:])
	}
	return t, nil
}

// MutationMatrix is a binary mutation-by-sample matrix built from somatic
// mutation calls.
type MutationMatrix struct {
	Samples []string
	Genes   []string
	calls   map[string]map[string]bool // sample -> gene -> mutated
}

// Mutated reports whether the gene carries a somatic call in the sample.
func (m *MutationMatrix) Mutated(sample, gene string) bool {
	return m.calls[sample][gene]
}

// ReadMutations parses a long-format mutation call CSV: a header row, then
// one (sample, gene) pair per call. Extra columns are ignored. Samples and
// genes keep first-appearance order.
func ReadMutations(r io.Reader, opts ReadOptions) (*MutationMatrix, error) {
	src, err := decoded(r, opts)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mutation calls: %w", err)
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: need sample and gene columns", ErrBadHeader)
	}

	m := &MutationMatrix{calls: make(map[string]map[string]bool)}
	seenGene := make(map[string]bool)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		sample, gene := rec[0], rec[1]
		if _, ok := m.calls[sample]; !ok {
			m.calls[sample] = make(map[string]bool)
			m.Samples = append(m.Samples, sample)
		}
		if !m.calls[sample][gene] {
			m.calls[sample][gene] = true
		}
		if !seenGene[gene] {
			seenGene[gene] = true
			m.Genes = append(m.Genes, gene)
		}
	}
	return m, nil
}

// Design is the merged analysis table: clinical covariates plus one 0/1
// mutation-status column per gene, one row per sample present in both
// source tables.
type Design struct {
	Columns []string   // "sample", covariates, then gene columns
	Rows    [][]string // aligned with Columns
}

// Join merges a clinical table with a mutation matrix on sample identifier.
// genes selects the mutation columns; nil means every gene in the matrix.
// Samples missing from either table are dropped; an empty intersection is
// an error. Sample order follows the clinical table.
func Join(clin *ClinicalTable, mut *MutationMatrix, genes []string) (*Design, error) {
	if genes == nil {
		genes = mut.Genes
	} else {
		known := make(map[string]bool, len(mut.Genes))
		for _, g := range mut.Genes {
			known[g] = true
		}
		for _, g := range genes {
			if !known[g] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGene, g)
			}
		}
	}

	inMut := make(map[string]bool, len(mut.Samples))
	for _, s := range mut.Samples {
		inMut[s] = true
	}

	d := &Design{Columns: append([]string{"sample"}, clin.Covariates...)}
	d.Columns = append(d.Columns, genes...)

	for i, sample := range clin.Samples {
		if !inMut[sample] {
			continue
		}
		row := append([]string{sample}, clin.Values[i]...)
		for _, g := range genes {
			if mut.Mutated(sample, g) {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		d.Rows = append(d.Rows, row)
	}
	if len(d.Rows) == 0 {
		return nil, ErrNoSamples
	}
	return d, nil
}

// MutationRate returns the fraction of design rows carrying a mutation in
// each gene column, keyed by gene name.
func (d *Design) MutationRate(genes []string) map[string]float64 {
	idx := make(map[string]int, len(d.Columns))
	for i, c := range d.Columns {
		idx[c] = i
	}
	out := make(map[string]float64, len(genes))
	for _, g := range genes {
		col, ok := idx[g]
		if !ok {
			continue
		}
		n := 0
		for _, row := range d.Rows {
			if row[col] == "1" {
				n++
			}
		}
		out[g] = float64(n) / float64(len(d.Rows))
	}
	return out
}

// WriteCSV writes the design table with a header row.
func (d *Design) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("writing design header: %w", err)
	}
	for _, row := range d.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing design row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SortedGenes returns the matrix's genes sorted by descending mutation
// frequency, ties alphabetical. Useful for picking the head of a cohort's
// mutation spectrum as model features.
func (m *MutationMatrix) SortedGenes() []string {
	count := make(map[string]int, len(m.Genes))
	for _, calls := range m.calls {
		for g := range calls {
			count[g]++
		}
	}
	out := append([]string(nil), m.Genes...)
	sort.SliceStable(out, func(i, j int) bool {
		if count[out[i]] != count[out[j]] {
			return count[out[i]] > count[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
