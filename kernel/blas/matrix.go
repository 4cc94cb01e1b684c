package blas

// SparseMatrix is the minimal column-oriented (CSC-shaped) backing store
// the level-2 routines in this package operate on: I rows, J columns,
// indptr of length J+1, and parallel ind/data slices of length nnz.
type SparseMatrix struct {
	I, J   int
	Indptr []int
	Ind    []int
	Data   []float64
}
