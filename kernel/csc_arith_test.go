package kernel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func denseMatVec(A *mat.Dense, x []float64) []float64 {
	rows, _ := A.Dims()
	y := make([]float64, rows)
	v := mat.NewVecDense(len(x), x)
	var out mat.VecDense
	out.MulVec(A, v)
	for i := 0; i < rows; i++ {
		y[i] = out.AtVec(i)
	}
	return y
}

func TestCSCMatVecMatchesDense(t *testing.T) {
	dense := mat.NewDense(3, 2, []float64{1, 0, 0, 2, 3, 4})
	csc := DenseToCSC(dense)
	x := []float64{5, 7}

	got := CSCMatVec(csc, x)
	want := denseMatVec(dense, x)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("CSCMatVec = %v, want %v", got, want)
		}
	}
}

func TestCSCMatVecTMatchesDense(t *testing.T) {
	dense := mat.NewDense(3, 2, []float64{1, 0, 0, 2, 3, 4})
	csc := DenseToCSC(dense)
	x := []float64{1, 1, 1}

	got := CSCMatVecT(csc, x)
	var want mat.VecDense
	want.MulVec(dense.T(), mat.NewVecDense(3, x))
	for i := range got {
		if math.Abs(got[i]-want.AtVec(i)) > 1e-12 {
			t.Fatalf("CSCMatVecT = %v, want %v", got, mat.Formatted(&want))
		}
	}
}

func TestCSCSymProductIsSymmetric(t *testing.T) {
	A := DenseToCSC(mat.NewDense(3, 2, []float64{1, 2, 0, 4, 5, 0}))
	B := DenseToCSC(mat.NewDense(3, 2, []float64{0, 1, 2, 0, 3, 4}))
	C := CSCSymProduct(A, B)
	n, _ := C.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if C.At(i, j) != C.At(j, i) {
				t.Fatalf("CSCSymProduct not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestCSCSymProductMatchesDense(t *testing.T) {
	Ad := mat.NewDense(3, 2, []float64{1, 2, 0, 4, 5, 0})
	Bd := mat.NewDense(3, 2, []float64{0, 1, 2, 0, 3, 4})
	A := DenseToCSC(Ad)
	B := DenseToCSC(Bd)

	wantDense := SymProduct(Ad, Bd, 3, 2)
	got := CSCSymProduct(A, B)
	n, _ := got.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(got.At(i, j)-wantDense.At(i, j)) > 1e-12 {
				t.Fatalf("CSCSymProduct mismatch at (%d,%d): got %v want %v", i, j, got.At(i, j), wantDense.At(i, j))
			}
		}
	}
}

func TestCSCQForm(t *testing.T) {
	Q := DenseToCSC(mat.NewDense(2, 2, []float64{2, 0, 0, 2}))
	p := []float64{1, 1}
	if got := CSCQForm(Q, p); got != 4 {
		t.Fatalf("CSCQForm = %v, want 4", got)
	}
}
