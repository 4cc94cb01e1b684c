package kernel

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestRoundTripDenseCSC checks spec property: csc_to_dns(dns_to_csc(M)) == M
// elementwise, for 100 random 2x5 matrices with ~25% density.
func TestRoundTripDenseCSC(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		data := make([]float64, 10)
		for i := range data {
			if rnd.Float64() < 0.25 {
				data[i] = rnd.NormFloat64()
				if data[i] == 0 {
					data[i] = 1
				}
			}
		}
		M := mat.NewDense(2, 5, data)
		csc := DenseToCSC(M)
		back, err := CSCToDense(csc)
		if err != nil {
			t.Fatalf("trial %d: CSCToDense error: %v", trial, err)
		}
		if !mat.Equal(M, back) {
			t.Fatalf("trial %d: round trip mismatch: got %v want %v", trial, mat.Formatted(back), mat.Formatted(M))
		}
	}
}

func TestDenseToCSCDropsExactZeros(t *testing.T) {
	M := mat.NewDense(2, 2, []float64{0, 1, 0, 0})
	csc := DenseToCSC(M)
	if csc.NNZ() != 1 {
		t.Fatalf("NNZ = %d, want 1", csc.NNZ())
	}
}

func TestCSCToDenseRejectsBadIndices(t *testing.T) {
	csc := NewCSC(2, 1, []int{0, 1}, []int{5}, []float64{1})
	if _, err := CSCToDense(csc); err != ErrIndexOutOfBounds {
		t.Fatalf("err = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestCSCClone(t *testing.T) {
	csc := NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{3, 4})
	clone := csc.Clone()
	clone.data[0] = 99
	if csc.data[0] == 99 {
		t.Fatal("Clone shares backing storage with original")
	}
	r, c := clone.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("Clone dims = (%d,%d), want (2,2)", r, c)
	}
}
