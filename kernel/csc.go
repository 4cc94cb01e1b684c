package kernel

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrIndexOutOfBounds is returned when a CSC triple has row indices that
// fall outside the declared number of rows.
var ErrIndexOutOfBounds = errors.New("kernel: csc index out of bounds")

// CSC is a Compressed Sparse Column matrix: indptr has length nCols+1,
// ind/data have length nnz, and for column j the entries ind[indptr[j]:indptr[j+1]]
// (with matching data) give the row indices (and values) of the non-zero
// elements of that column, in ascending row order.
//
// This mirrors the field layout of the teacher's compressedSparse/CSC type
// (i, j int; indptr, ind []int; data []float64) but is column-oriented only
// — the LCQP kernel never needs CSR.
type CSC struct {
	rows, cols int
	indptr     []int
	ind        []int
	data       []float64
}

// NewCSC constructs a CSC matrix of shape rows x cols from the given
// indptr/ind/data triple. The slices are used as-is (no copy); len(indptr)
// must equal cols+1.
func NewCSC(rows, cols int, indptr, ind []int, data []float64) *CSC {
	if rows < 0 || cols < 0 {
		panic(mat.ErrRowAccess)
	}
	if len(indptr) != cols+1 {
		panic(ErrShape)
	}
	return &CSC{rows: rows, cols: cols, indptr: indptr, ind: ind, data: data}
}

// Dims returns the number of rows and columns of the matrix.
func (c *CSC) Dims() (int, int) { return c.rows, c.cols }

// NNZ returns the number of stored (non-zero) entries.
func (c *CSC) NNZ() int { return len(c.data) }

// Indptr, Ind, Data expose the backing CSC triple for callers (subsolver,
// conversions) that need direct access.
func (c *CSC) Indptr() []int     { return c.indptr }
func (c *CSC) Ind() []int        { return c.ind }
func (c *CSC) Data() []float64   { return c.data }
func (c *CSC) SetData(d []float64) {
	if len(d) != len(c.data) {
		panic(ErrShape)
	}
	c.data = d
}

// At returns the element at (i, j), scanning the column's stored entries.
func (c *CSC) At(i, j int) float64 {
	if uint(i) >= uint(c.rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.cols) {
		panic(mat.ErrColAccess)
	}
	for k := c.indptr[j]; k < c.indptr[j+1]; k++ {
		if c.ind[k] == i {
			return c.data[k]
		}
	}
	return 0
}

// T returns the transpose. Since the kernel only ever needs matrix-vector
// products (with or without transpose), this returns a thin view rather
// than materializing a CSR copy.
func (c *CSC) T() mat.Matrix {
	return transposeView{c}
}

type transposeView struct{ csc *CSC }

func (t transposeView) Dims() (int, int) {
	r, c := t.csc.Dims()
	return c, r
}
func (t transposeView) At(i, j int) float64 { return t.csc.At(j, i) }
func (t transposeView) T() mat.Matrix       { return t.csc }

// DoColNonZero calls f(i, v) for every stored non-zero entry of column j,
// in ascending row order.
func (c *CSC) DoColNonZero(j int, f func(i int, v float64)) {
	for k := c.indptr[j]; k < c.indptr[j+1]; k++ {
		f(c.ind[k], c.data[k])
	}
}

// DoNonZero calls f(i, j, v) for every stored non-zero entry of the matrix,
// column by column.
func (c *CSC) DoNonZero(f func(i, j int, v float64)) {
	for j := 0; j < c.cols; j++ {
		c.DoColNonZero(j, func(i int, v float64) { f(i, j, v) })
	}
}

// Clone returns a structural deep copy: independent backing slices holding
// the same sparsity pattern and values.
func (c *CSC) Clone() *CSC {
	indptr := make([]int, len(c.indptr))
	copy(indptr, c.indptr)
	ind := make([]int, len(c.ind))
	copy(ind, c.ind)
	data := make([]float64, len(c.data))
	copy(data, c.data)
	return &CSC{rows: c.rows, cols: c.cols, indptr: indptr, ind: ind, data: data}
}
