package blas

// Dusmv (sparse matrix/vector multiply: y <- alpha*A*x + y, or
// y <- alpha*Aᵀ*x + y) multiplies the dense vector x by the CSC-shaped
// sparse matrix a (or its transpose when transA is true) and accumulates
// the result into the dense vector y. incx/incy give the strides to use
// when indexing x and y respectively.
//
// a is interpreted column-wise: column j occupies a.Indptr[j]:a.Indptr[j+1]
// in a.Ind/a.Data.
//
//   - transA == false computes y += alpha*A*x: each column j scatters
//     alpha*x[j]*A[:,j] into the rows it touches.
//   - transA == true computes y += alpha*Aᵀ*x: each column j accumulates
//     alpha*dot(A[:,j], x) into y[j].
func Dusmv(transA bool, alpha float64, a *SparseMatrix, x []float64, incx int, y []float64, incy int) {
	if alpha == 0 {
		return
	}

	if transA {
		for j := 0; j < a.J; j++ {
			begin, end := a.Indptr[j], a.Indptr[j+1]
			y[j*incy] += alpha * Dusdot(a.Data[begin:end], a.Ind[begin:end], x, incx)
		}
	} else {
		for j := 0; j < a.J; j++ {
			begin, end := a.Indptr[j], a.Indptr[j+1]
			Dusaxpy(alpha*x[j*incx], a.Data[begin:end], a.Ind[begin:end], y, incy)
		}
	}
}
