/*
Package dataset loads queueing simulation tables and prepares them for training.

The input is a delimited file with at least 7 columns addressed by position:
column 0 is the arrival rate λ, column 3 is the utilization ρ, column 4 is the
expected wait time Wq and column 6 is the expected queue length Lq. Files with
an .xz suffix are decompressed transparently.
*/
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"
)

// ErrLoad is returned when the input file is missing or its rows
// do not carry the expected columns.
var ErrLoad = xerrors.New("cannot load dataset")

// Positional column contract of the simulation output files.
const (
	ColLambda = 0
	ColRho    = 3
	ColWq     = 4
	ColLq     = 6

	minColumns = 7
)

/*
Table is an ordered collection of samples. Lambda and Lq are the model
features, Wq is the target, Rho is kept only for diagnostics.
*/
type Table struct {
	Lambda []float64
	Rho    []float64
	Wq     []float64
	Lq     []float64
}

func (t *Table) Len() int { return len(t.Lambda) }

// Features returns the (λ, Lq) rows fed to the regressor.
func (t *Table) Features() [][]float64 {
	r := make([][]float64, t.Len())
	for i := range r {
		r[i] = []float64{t.Lambda[i], t.Lq[i]}
	}
	return r
}

// Targets returns the Wq column.
func (t *Table) Targets() []float64 {
	r := make([]float64, t.Len())
	copy(r, t.Wq)
	return r
}

/*
Load reads a table from a CSV file honoring the positional column contract.
A leading header row is detected and skipped. Cells that do not parse as a
number become NaN and are dropped later by Filter.
*/
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrLoad)
	}
	defer f.Close()

	var rd io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if rd, err = xz.NewReader(f); err != nil {
			return nil, xerrors.Errorf("%s: %v: %w", path, err, ErrLoad)
		}
	}

	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := &Table{}
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("%s: %v: %w", path, err, ErrLoad)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if len(rec) < minColumns {
			return nil, xerrors.Errorf("%s: row has %d columns, want at least %d: %w",
				path, len(rec), minColumns, ErrLoad)
		}
		t.Lambda = append(t.Lambda, cell(rec, ColLambda))
		t.Rho = append(t.Rho, cell(rec, ColRho))
		t.Wq = append(t.Wq, cell(rec, ColWq))
		t.Lq = append(t.Lq, cell(rec, ColLq))
	}
	if t.Len() == 0 {
		return nil, xerrors.Errorf("%s: no data rows: %w", path, ErrLoad)
	}
	return t, nil
}

/*
Filter removes rows where λ, Lq or Wq is NaN or infinite. Relative order of
the remaining rows is preserved. Returns the filtered table and the count of
rows removed.
*/
func (t *Table) Filter() (*Table, int) {
	r := &Table{}
	removed := 0
	for i := 0; i < t.Len(); i++ {
		if !finite(t.Lambda[i]) || !finite(t.Lq[i]) || !finite(t.Wq[i]) {
			removed++
			continue
		}
		r.Lambda = append(r.Lambda, t.Lambda[i])
		r.Rho = append(r.Rho, t.Rho[i])
		r.Wq = append(r.Wq, t.Wq[i])
		r.Lq = append(r.Lq, t.Lq[i])
	}
	return r, removed
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func cell(rec []string, i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// the first row is a header if any contract column is not a number
func isHeader(rec []string) bool {
	if len(rec) < minColumns {
		return true
	}
	for _, i := range []int{ColLambda, ColRho, ColWq, ColLq} {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err != nil {
			return true
		}
	}
	return false
}
