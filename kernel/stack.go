package kernel

// VStackBlock is one CSC matrix to be merged into a composite matrix at a
// given row offset.
type VStackBlock struct {
	Mat       *CSC
	RowOffset int
}

// VStackCSC assembles a composite CSC matrix of shape (totalRows x cols) by
// merging the per-column non-zero entries of each block in listed order,
// shifting row indices by the block's RowOffset. All blocks must share the
// same column count (cols); a nil Mat is skipped. Mirrors the column-by-
// column merge loop LCQProblem::setConstraints uses to assemble
// Ã = [A; S1; S2] from three separately-stored CSC matrices.
func VStackCSC(totalRows, cols int, blocks []VStackBlock) *CSC {
	indptr := make([]int, cols+1)
	var ind []int
	var data []float64
	for j := 0; j < cols; j++ {
		indptr[j] = len(data)
		for _, b := range blocks {
			if b.Mat == nil {
				continue
			}
			b.Mat.DoColNonZero(j, func(i int, v float64) {
				ind = append(ind, i+b.RowOffset)
				data = append(data, v)
			})
		}
	}
	indptr[cols] = len(data)
	return NewCSC(totalRows, cols, indptr, ind, data)
}
