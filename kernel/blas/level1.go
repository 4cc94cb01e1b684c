package blas

// Dusaxpy (sparse update: y <- alpha*x + y) scales the sparse vector x
// (values x, row indices indx) by alpha and accumulates it into the dense
// vector y, using incy as the stride into y.
func Dusaxpy(alpha float64, x []float64, indx []int, y []float64, incy int) {
	for i, index := range indx {
		y[index*incy] += alpha * x[i]
	}
}

// Dusdot (sparse dot product: r <- xᵀy) computes the inner product of the
// sparse vector x (values x, row indices indx) with the dense vector y,
// using incy as the stride into y.
func Dusdot(x []float64, indx []int, y []float64, incy int) (dot float64) {
	for i, index := range indx {
		dot += x[i] * y[index*incy]
	}
	return dot
}
