package kernel

import "sync"

// pooled buffers reused across the many small, same-shaped allocations the
// penalty-homotopy engine and its subsolvers make once per inner iteration
// (gradient vectors, step vectors, bound arrays). Adapted from the
// teacher's sync.Pool-based getFloats/putFloats/getInts/putInts workspace
// allocator in pool.go.
const (
	pooledFloatSize = 64
	pooledIntSize   = 64
)

var (
	floatPool = sync.Pool{
		New: func() interface{} { return make([]float64, pooledFloatSize) },
	}
	intPool = sync.Pool{
		New: func() interface{} { return make([]int, pooledIntSize) },
	}
)

// GetFloats returns a []float64 of length l drawn from the workspace pool.
// If clear is true, the returned slice is zeroed.
func GetFloats(l int, clear bool) []float64 {
	w := floatPool.Get().([]float64)
	if cap(w) < l {
		w = make([]float64, l)
	} else {
		w = w[:l]
	}
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}

// PutFloats returns w to the workspace pool. w must not be referenced again
// by the caller after this call.
func PutFloats(w []float64) {
	if cap(w) >= pooledFloatSize {
		floatPool.Put(w) //nolint:staticcheck // reused across calls by design
	}
}

// GetInts returns a []int of length l drawn from the workspace pool. If
// clear is true, the returned slice is zeroed.
func GetInts(l int, clear bool) []int {
	w := intPool.Get().([]int)
	if cap(w) < l {
		w = make([]int, l)
	} else {
		w = w[:l]
	}
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}

// PutInts returns w to the workspace pool. w must not be referenced again
// by the caller after this call.
func PutInts(w []int) {
	if cap(w) >= pooledIntSize {
		intPool.Put(w) //nolint:staticcheck // reused across calls by design
	}
}
