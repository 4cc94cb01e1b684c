package kernel

import "github.com/lcqpow/lcqpow/kernel/blas"

func (c *CSC) toBLAS() *blas.SparseMatrix {
	return &blas.SparseMatrix{I: c.rows, J: c.cols, Indptr: c.indptr, Ind: c.ind, Data: c.data}
}

// CSCMatVec returns A*x for a CSC matrix A and dense vector x of length
// equal to A's column count.
func CSCMatVec(A *CSC, x []float64) []float64 {
	_, cols := A.Dims()
	rows, _ := A.Dims()
	if len(x) != cols {
		panic(ErrShape)
	}
	y := GetFloats(rows, true)
	blas.Dusmv(false, 1, A.toBLAS(), x, 1, y, 1)
	return y
}

// CSCMatVecT returns Aᵀx for a CSC matrix A and dense vector x of length
// equal to A's row count.
func CSCMatVecT(A *CSC, x []float64) []float64 {
	rows, cols := A.Dims()
	if len(x) != rows {
		panic(ErrShape)
	}
	y := GetFloats(cols, true)
	blas.Dusmv(true, 1, A.toBLAS(), x, 1, y, 1)
	return y
}

// CSCAff returns d = alpha*A*b + c for a CSC matrix A (m x n), b of length
// n, c of length m.
func CSCAff(alpha float64, A *CSC, b, c []float64) []float64 {
	rows, cols := A.Dims()
	if len(b) != cols || len(c) != rows {
		panic(ErrShape)
	}
	d := GetFloats(rows, false)
	copy(d, c)
	blas.Dusmv(false, alpha, A.toBLAS(), b, 1, d, 1)
	return d
}

// CSCQForm returns pᵀAp for a square CSC matrix A and vector p.
func CSCQForm(A *CSC, p []float64) float64 {
	rows, cols := A.Dims()
	if rows != cols || len(p) != rows {
		panic(ErrShape)
	}
	Ap := CSCMatVec(A, p)
	return Dot(p, Ap)
}

// CSCSymProduct computes the structurally-correct sparse symmetrization
// C = AᵀB + BᵀA for CSC matrices A, B of identical shape (m x n), returning
// an (n x n) CSC matrix. The implementation accumulates AᵀB + BᵀA into a
// dense n x n scratch array from the stored non-zeros of A and B, then
// stores every entry whose accumulated value is non-zero, in ascending row
// order within each column; an entry whose two contributions cancel to
// exactly zero is not stored.
func CSCSymProduct(A, B *CSC) *CSC {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	if ar != br || ac != bc {
		panic(ErrShape)
	}
	n := ac

	// Dense accumulation is acceptable here: C is at most nV x nV and is
	// computed once per problem load, not per inner iteration.
	acc := make([][]float64, n)
	for i := range acc {
		acc[i] = make([]float64, n)
	}

	// AᵀB: for each column k of A and column l of B, contribution to
	// (AᵀB)[k,l] = sum_i A[i,k]*B[i,l]. Walk column k of A, and for each
	// nonzero row i, scatter A[i,k]*B[i,:] into row k of the accumulator.
	for k := 0; k < n; k++ {
		A.DoColNonZero(k, func(i int, av float64) {
			for l := 0; l < n; l++ {
				bv := B.At(i, l)
				if bv != 0 {
					acc[k][l] += av * bv
				}
			}
		})
	}
	for k := 0; k < n; k++ {
		B.DoColNonZero(k, func(i int, bv float64) {
			for l := 0; l < n; l++ {
				av := A.At(i, l)
				if av != 0 {
					acc[k][l] += bv * av
				}
			}
		})
	}

	indptr := make([]int, n+1)
	var ind []int
	var data []float64
	for j := 0; j < n; j++ {
		indptr[j] = len(data)
		for i := 0; i < n; i++ {
			if acc[i][j] != 0 {
				ind = append(ind, i)
				data = append(data, acc[i][j])
			}
		}
	}
	indptr[n] = len(data)
	return NewCSC(n, n, indptr, ind, data)
}
