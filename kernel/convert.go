package kernel

import "gonum.org/v1/gonum/mat"

// DenseToCSC converts a dense matrix to CSC format, dropping exact-zero
// values. Entries are visited column-major so the resulting ind/data slices
// are emitted in ascending row order within each column, matching the
// ordering CSCSymProduct and the CSC matvec routines assume.
func DenseToCSC(A *mat.Dense) *CSC {
	rows, cols := A.Dims()
	indptr := make([]int, cols+1)
	var ind []int
	var data []float64
	for j := 0; j < cols; j++ {
		indptr[j] = len(data)
		for i := 0; i < rows; i++ {
			v := A.At(i, j)
			if v != 0 {
				ind = append(ind, i)
				data = append(data, v)
			}
		}
	}
	indptr[cols] = len(data)
	return NewCSC(rows, cols, indptr, ind, data)
}

// CSCToDense converts a CSC matrix back to dense form, rejecting malformed
// index arrays (a row index outside [0, rows)) with ErrIndexOutOfBounds.
func CSCToDense(A *CSC) (*mat.Dense, error) {
	rows, cols := A.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		begin, end := A.indptr[j], A.indptr[j+1]
		for k := begin; k < end; k++ {
			i := A.ind[k]
			if i < 0 || i >= rows {
				return nil, ErrIndexOutOfBounds
			}
			out.Set(i, j, A.data[k])
		}
	}
	return out, nil
}
