package kernel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMatMul(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	B := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	C := MatMul(A, B, 2, 2, 2)
	want := mat.NewDense(2, 2, []float64{19, 22, 43, 50})
	if !mat.EqualApprox(C, want, 1e-12) {
		t.Fatalf("MatMul = %v, want %v", mat.Formatted(C), mat.Formatted(want))
	}
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on shape mismatch")
		}
	}()
	A := mat.NewDense(2, 3, nil)
	B := mat.NewDense(2, 2, nil)
	MatMul(A, B, 2, 3, 2)
}

func TestSymProductIsSymmetric(t *testing.T) {
	A := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	B := mat.NewDense(3, 2, []float64{6, 5, 4, 3, 2, 1})
	C := SymProduct(A, B, 3, 2)
	n, _ := C.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if C.At(i, j) != C.At(j, i) {
				t.Fatalf("SymProduct not symmetric at (%d,%d): %v != %v", i, j, C.At(i, j), C.At(j, i))
			}
		}
	}
}

func TestAff(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	b := []float64{1, 2}
	c := []float64{10, 20}
	d := Aff(2, A, b, c, 2, 2)
	want := []float64{12, 24}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Fatalf("Aff = %v, want %v", d, want)
		}
	}
}

func TestWAdd(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{3, 2, 1}
	c := WAdd(2, a, -1, b)
	want := []float64{-1, 2, 5}
	for i := range want {
		if c[i] != want[i] {
			t.Fatalf("WAdd = %v, want %v", c, want)
		}
	}
}

func TestQForm(t *testing.T) {
	Q := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	p := []float64{1, 1}
	if got := QForm(Q, p, 2); got != 4 {
		t.Fatalf("QForm = %v, want 4", got)
	}
}

func TestDotAndMaxAbs(t *testing.T) {
	a := []float64{1, -2, 3}
	b := []float64{1, 1, 1}
	if Dot(a, b) != 2 {
		t.Fatalf("Dot = %v, want 2", Dot(a, b))
	}
	if MaxAbs(a) != 3 {
		t.Fatalf("MaxAbs = %v, want 3", MaxAbs(a))
	}
}

func TestMatVecAndMatVecT(t *testing.T) {
	A := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	x := []float64{1, 1, 1}
	y := MatVec(A, x, 2, 3)
	wantY := []float64{6, 15}
	for i := range wantY {
		if math.Abs(y[i]-wantY[i]) > 1e-12 {
			t.Fatalf("MatVec = %v, want %v", y, wantY)
		}
	}

	z := []float64{1, 1}
	w := MatVecT(A, z, 2, 3)
	wantW := []float64{5, 7, 9}
	for i := range wantW {
		if math.Abs(w[i]-wantW[i]) > 1e-12 {
			t.Fatalf("MatVecT = %v, want %v", w, wantW)
		}
	}
}

func TestMatWAdd(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	B := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	C := MatWAdd(2, A, 3, B, 2, 2)
	want := mat.NewDense(2, 2, []float64{5, 7, 9, 11})
	if !mat.EqualApprox(C, want, 1e-12) {
		t.Fatalf("MatWAdd = %v, want %v", mat.Formatted(C), mat.Formatted(want))
	}
}
