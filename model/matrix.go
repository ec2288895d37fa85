package model

import (
	"encoding/json"
	"fmt"
)

// Matrix is a square matrix indexed by parameter name as well as by
// position. The name-to-index table is built once at construction, so code
// that consumes a Matrix never has to assume a particular column layout.
type Matrix struct {
	names []string
	index map[string]int
	data  []float64 // row-major, len = n*n
}

// NewMatrix creates a Matrix over the given parameter names from row-major
// data. The data length must be len(names) squared.
func NewMatrix(names []string, data []float64) (*Matrix, error) {
	n := len(names)
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: %d names but %d entries", ErrDimensionMismatch, n, len(data))
	}
	index := make(map[string]int, n)
	for i, na := range names {
		if _, dup := index[na]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrDimensionMismatch, na)
		}
		index[na] = i
	}
	m := &Matrix{
		names: append([]string(nil), names...),
		index: index,
		data:  append([]float64(nil), data...),
	}
	return m, nil
}

// Dim returns the number of rows (and columns).
func (m *Matrix) Dim() int {
	return len(m.names)
}

// Names returns the parameter names in column order. The returned slice is a
// copy.
func (m *Matrix) Names() []string {
	return append([]string(nil), m.names...)
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*len(m.names)+j]
}

// AtName returns the entry for the named row and column pair, and whether
// both names are present.
func (m *Matrix) AtName(row, col string) (float64, bool) {
	i, ok := m.index[row]
	if !ok {
		return 0, false
	}
	j, ok := m.index[col]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// Index returns the column index for a parameter name, and whether the name
// is present.
func (m *Matrix) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Minor returns a copy of the matrix with row and column k removed. The
// intercept sits at index 0 in fitting-engine output, so Minor(0) is the
// coefficient-only covariance.
func (m *Matrix) Minor(k int) *Matrix {
	n := len(m.names)
	if k < 0 || k >= n {
		out, _ := NewMatrix(m.names, m.data)
		return out
	}
	names := make([]string, 0, n-1)
	for i, na := range m.names {
		if i != k {
			names = append(names, na)
		}
	}
	data := make([]float64, 0, (n-1)*(n-1))
	for i := 0; i < n; i++ {
		if i == k {
			continue
		}
		for j := 0; j < n; j++ {
			if j == k {
				continue
			}
			data = append(data, m.At(i, j))
		}
	}
	out, _ := NewMatrix(names, data)
	return out
}

type matrixJSON struct {
	Names []string  `json:"names"`
	Data  []float64 `json:"data"`
}

// MarshalJSON encodes the matrix as its names plus row-major data.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(matrixJSON{Names: m.names, Data: m.data})
}

// UnmarshalJSON decodes a matrix encoded by MarshalJSON, re-validating the
// name/data shape.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var mj matrixJSON
	if err := json.Unmarshal(b, &mj); err != nil {
		return err
	}
	built, err := NewMatrix(mj.Names, mj.Data)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}
