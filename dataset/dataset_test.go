package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/assert"
)

const sampleCSV = `lambda,mu,c,rho,Wq,L,Lq
0.5,1.0,1,0.5,1.0,1.5,10
1.0,2.0,1,0.5,0.5,1.0,5
2.0,4.0,1,0.5,0.25,0.5,8
0.1,1.0,1,0.1,0.011,0.111,2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load(t *testing.T) {
	tbl, err := Load(writeFile(t, "q.csv", sampleCSV))
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 4)
	assert.DeepEqual(t, tbl.Lambda, []float64{0.5, 1.0, 2.0, 0.1})
	assert.DeepEqual(t, tbl.Rho, []float64{0.5, 0.5, 0.5, 0.1})
	assert.DeepEqual(t, tbl.Wq, []float64{1.0, 0.5, 0.25, 0.011})
	assert.DeepEqual(t, tbl.Lq, []float64{10, 5, 8, 2})
}

func Test_LoadNoHeader(t *testing.T) {
	tbl, err := Load(writeFile(t, "q.csv", "0.5,1.0,1,0.5,1.0,1.5,10\n"))
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 1)
	assert.Equal(t, tbl.Lambda[0], 0.5)
}

func Test_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Assert(t, errors.Is(err, ErrLoad))
}

func Test_LoadShortRow(t *testing.T) {
	_, err := Load(writeFile(t, "q.csv", "lambda,mu,c,rho,Wq,L,Lq\n1,2,3\n"))
	assert.Assert(t, errors.Is(err, ErrLoad))
}

func Test_LoadEmpty(t *testing.T) {
	_, err := Load(writeFile(t, "q.csv", "lambda,mu,c,rho,Wq,L,Lq\n"))
	assert.Assert(t, errors.Is(err, ErrLoad))
}

func Test_LoadXz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.csv.xz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	w, err := xz.NewWriter(f)
	assert.NilError(t, err)
	_, err = w.Write([]byte(sampleCSV))
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.NilError(t, f.Close())

	tbl, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 4)
	assert.Equal(t, tbl.Lq[3], 2.0)
}

func Test_FilterRemovesInvalid(t *testing.T) {
	tbl := &Table{
		Lambda: []float64{0.5, math.NaN(), 1.0, 2.0},
		Rho:    []float64{0.5, 0.5, 0.5, 0.5},
		Wq:     []float64{1.0, 1.0, math.Inf(1), 0.25},
		Lq:     []float64{10, 5, 5, 8},
	}
	filtered, removed := tbl.Filter()
	assert.Equal(t, removed, 2)
	assert.DeepEqual(t, filtered.Lambda, []float64{0.5, 2.0})
	assert.DeepEqual(t, filtered.Wq, []float64{1.0, 0.25})
	assert.DeepEqual(t, filtered.Lq, []float64{10, 8})
}

func Test_FilterCleanPassthrough(t *testing.T) {
	tbl, err := Load(writeFile(t, "q.csv", sampleCSV))
	assert.NilError(t, err)
	filtered, removed := tbl.Filter()
	assert.Equal(t, removed, 0)
	assert.DeepEqual(t, filtered.Lambda, tbl.Lambda)
	assert.DeepEqual(t, filtered.Rho, tbl.Rho)
	assert.DeepEqual(t, filtered.Wq, tbl.Wq)
	assert.DeepEqual(t, filtered.Lq, tbl.Lq)
}

func Test_UnparsableCellBecomesNaN(t *testing.T) {
	tbl, err := Load(writeFile(t, "q.csv", "lambda,mu,c,rho,Wq,L,Lq\n0.5,1,1,0.5,oops,1.5,10\n1,1,1,0.5,0.5,1,5\n"))
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 2)
	filtered, removed := tbl.Filter()
	assert.Equal(t, removed, 1)
	assert.Equal(t, filtered.Len(), 1)
	assert.Equal(t, filtered.Wq[0], 0.5)
}
