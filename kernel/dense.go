package kernel

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned (via panic, matching gonum's own mat.ErrShape
// convention) when operands passed to a kernel routine have mismatched
// dimensions. These are programmer errors in the caller, not runtime
// conditions triggered by user-supplied problem data.
var ErrShape = errors.New("kernel: dimension mismatch")

// MatMul computes C = A*B for A (m x n), B (n x p), C (m x p), all
// row-major dense matrices.
func MatMul(A, B *mat.Dense, m, n, p int) *mat.Dense {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	if ar != m || ac != n || br != n || bc != p {
		panic(ErrShape)
	}
	C := mat.NewDense(m, p, nil)
	C.Mul(A, B)
	return C
}

// MatMulT computes C = AᵀB for A (m x n), B (m x p), C (n x p).
func MatMulT(A, B *mat.Dense, m, n, p int) *mat.Dense {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	if ar != m || ac != n || br != m || bc != p {
		panic(ErrShape)
	}
	C := mat.NewDense(n, p, nil)
	C.Mul(A.T(), B)
	return C
}

// SymProduct computes C = AᵀB + BᵀA for A, B both (m x n), returning the
// symmetric (n x n) result. Used to build the complementarity matrix
// C = S1ᵀS2 + S2ᵀS1.
func SymProduct(A, B *mat.Dense, m, n int) *mat.SymDense {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	if ar != m || ac != n || br != m || bc != n {
		panic(ErrShape)
	}

	var t1, t2 mat.Dense
	t1.Mul(A.T(), B)
	t2.Mul(B.T(), A)

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := t1.At(i, j) + t2.At(i, j)
			out.SetSym(i, j, v)
		}
	}
	return out
}

// Aff computes d = alpha*A*b + c for A (m x n), b (length n), c (length m).
func Aff(alpha float64, A *mat.Dense, b, c []float64, m, n int) []float64 {
	ar, ac := A.Dims()
	if ar != m || ac != n || len(b) != n || len(c) != m {
		panic(ErrShape)
	}
	d := GetFloats(m, false)
	bv := mat.NewVecDense(n, b)
	var av mat.VecDense
	av.MulVec(A, bv)
	for i := 0; i < m; i++ {
		d[i] = alpha*av.AtVec(i) + c[i]
	}
	return d
}

// MatVec computes y = A*x for A (m x n), x of length n.
func MatVec(A *mat.Dense, x []float64, m, n int) []float64 {
	ar, ac := A.Dims()
	if ar != m || ac != n || len(x) != n {
		panic(ErrShape)
	}
	xv := mat.NewVecDense(n, x)
	var yv mat.VecDense
	yv.MulVec(A, xv)
	y := GetFloats(m, false)
	for i := range y {
		y[i] = yv.AtVec(i)
	}
	return y
}

// MatVecT computes y = Aᵀx for A (m x n), x of length m, y of length n.
func MatVecT(A *mat.Dense, x []float64, m, n int) []float64 {
	ar, ac := A.Dims()
	if ar != m || ac != n || len(x) != m {
		panic(ErrShape)
	}
	xv := mat.NewVecDense(m, x)
	var yv mat.VecDense
	yv.MulVec(A.T(), xv)
	y := GetFloats(n, false)
	for i := range y {
		y[i] = yv.AtVec(i)
	}
	return y
}

// MatWAdd computes C = alpha*A + beta*B elementwise for equally-shaped
// (m x n) dense matrices. Used to build the penalty-augmented Hessian
// Qk = H + rho*C.
func MatWAdd(alpha float64, A *mat.Dense, beta float64, B *mat.Dense, m, n int) *mat.Dense {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	if ar != m || ac != n || br != m || bc != n {
		panic(ErrShape)
	}
	C := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			C.Set(i, j, alpha*A.At(i, j)+beta*B.At(i, j))
		}
	}
	return C
}

// WAdd computes C = alpha*A + beta*B elementwise, for equally-shaped slices.
func WAdd(alpha float64, A []float64, beta float64, B []float64) []float64 {
	if len(A) != len(B) {
		panic(ErrShape)
	}
	C := GetFloats(len(A), false)
	for i := range A {
		C[i] = alpha*A[i] + beta*B[i]
	}
	return C
}

// QForm returns pᵀQp for a symmetric Q represented as a dense (m x m)
// matrix and vector p of length m.
func QForm(Q *mat.Dense, p []float64, m int) float64 {
	qr, qc := Q.Dims()
	if qr != m || qc != m || len(p) != m {
		panic(ErrShape)
	}
	pv := mat.NewVecDense(m, p)
	var tmp mat.VecDense
	tmp.MulVec(Q, pv)
	return mat.Dot(pv, &tmp)
}

// Dot returns the inner product aᵀb.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(ErrShape)
	}
	return floats.Dot(a, b)
}

// MaxAbs returns the infinity-norm (max absolute value) of a.
func MaxAbs(a []float64) float64 {
	var m float64
	for _, v := range a {
		av := v
		if av < 0 {
			av = -av
		}
		if av > m {
			m = av
		}
	}
	return m
}
