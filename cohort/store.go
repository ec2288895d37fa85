package cohort

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a sqlite-backed cache for cohort tables keyed by cohort name.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) a cohort cache at path. Use
// ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cohort store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS clinical_columns (
		cohort TEXT NOT NULL,
		pos    INTEGER NOT NULL,
		name   TEXT NOT NULL,
		PRIMARY KEY (cohort, pos)
	);
	CREATE TABLE IF NOT EXISTS clinical_rows (
		cohort TEXT NOT NULL,
		pos    INTEGER NOT NULL,
		sample TEXT NOT NULL,
		PRIMARY KEY (cohort, pos)
	);
	CREATE TABLE IF NOT EXISTS clinical_values (
		cohort TEXT NOT NULL,
		sample TEXT NOT NULL,
		col    INTEGER NOT NULL,
		value  TEXT NOT NULL,
		PRIMARY KEY (cohort, sample, col)
	);
	CREATE TABLE IF NOT EXISTS mutation_calls (
		cohort TEXT NOT NULL,
		pos    INTEGER NOT NULL,
		sample TEXT NOT NULL,
		gene   TEXT NOT NULL,
		PRIMARY KEY (cohort, pos)
	);
	CREATE INDEX IF NOT EXISTS idx_mutation_calls_cohort ON mutation_calls(cohort);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cohort schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveClinical replaces the cached clinical table for a cohort.
func (s *Store) SaveClinical(cohort string, t *ClinicalTable) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"clinical_columns", "clinical_rows", "clinical_values"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE cohort = ?", cohort); err != nil {
			return err
		}
	}
	for i, name := range t.Covariates {
		if _, err := tx.Exec(
			"INSERT INTO clinical_columns (cohort, pos, name) VALUES (?, ?, ?)",
			cohort, i, name); err != nil {
			return err
		}
	}
	for i, sample := range t.Samples {
		if _, err := tx.Exec(
			"INSERT INTO clinical_rows (cohort, pos, sample) VALUES (?, ?, ?)",
			cohort, i, sample); err != nil {
			return err
		}
		for j, v := range t.Values[i] {
			if _, err := tx.Exec(
				"INSERT INTO clinical_values (cohort, sample, col, value) VALUES (?, ?, ?, ?)",
				cohort, sample, j, v); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// LoadClinical returns the cached clinical table for a cohort, or
// sql.ErrNoRows when nothing is cached under that name.
func (s *Store) LoadClinical(cohort string) (*ClinicalTable, error) {
	t := &ClinicalTable{}

	rows, err := s.db.Query(
		"SELECT name FROM clinical_columns WHERE cohort = ? ORDER BY pos", cohort)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		t.Covariates = append(t.Covariates, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(t.Covariates) == 0 {
		return nil, sql.ErrNoRows
	}

	rows, err = s.db.Query(
		"SELECT sample FROM clinical_rows WHERE cohort = ? ORDER BY pos", cohort)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sample string
		if err := rows.Scan(&sample); err != nil {
			rows.Close()
			return nil, err
		}
		t.Samples = append(t.Samples, sample)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, sample := range t.Samples {
		vals := make([]string, len(t.Covariates))
		vrows, err := s.db.Query(
			"SELECT col, value FROM clinical_values WHERE cohort = ? AND sample = ? ORDER BY col",
			cohort, sample)
		if err != nil {
			return nil, err
		}
		for vrows.Next() {
			var col int
			var v string
			if err := vrows.Scan(&col, &v); err != nil {
				vrows.Close()
				return nil, err
			}
			if col >= 0 && col < len(vals) {
				vals[col] = v
			}
		}
		vrows.Close()
		if err := vrows.Err(); err != nil {
			return nil, err
		}
		t.Values = append(t.Values, vals)
	}
	return t, nil
}

// SaveMutations replaces the cached mutation calls for a cohort.
func (s *Store) SaveMutations(cohort string, m *MutationMatrix) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mutation_calls WHERE cohort = ?", cohort); err != nil {
		return err
	}
	pos := 0
	for _, sample := range m.Samples {
		for _, gene := range m.Genes {
			if !m.Mutated(sample, gene) {
				continue
			}
			if _, err := tx.Exec(
				"INSERT INTO mutation_calls (cohort, pos, sample, gene) VALUES (?, ?, ?, ?)",
				cohort, pos, sample, gene); err != nil {
				return err
			}
			pos++
		}
	}
	return tx.Commit()
}

// LoadMutations returns the cached mutation matrix for a cohort, or
// sql.ErrNoRows when nothing is cached under that name.
func (s *Store) LoadMutations(cohort string) (*MutationMatrix, error) {
	rows, err := s.db.Query(
		"SELECT sample, gene FROM mutation_calls WHERE cohort = ? ORDER BY pos", cohort)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := &MutationMatrix{calls: make(map[string]map[string]bool)}
	seenGene := make(map[string]bool)
	for rows.Next() {
		var sample, gene string
		if err := rows.Scan(&sample, &gene); err != nil {
			return nil, err
		}
		if _, ok := m.calls[sample]; !ok {
			m.calls[sample] = make(map[string]bool)
			m.Samples = append(m.Samples, sample)
		}
		m.calls[sample][gene] = true
		if !seenGene[gene] {
			seenGene[gene] = true
			m.Genes = append(m.Genes, gene)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(m.Samples) == 0 {
		return nil, sql.ErrNoRows
	}
	return m, nil
}
