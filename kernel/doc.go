// Package kernel provides the dense and sparse (Compressed Sparse Column)
// linear algebra primitives used to assemble and update LCQP subproblem
// data: matrix-vector products, the symmetrization Sᵀ = S1ᵀS2 + S2ᵀS1,
// affine transformations, weighted adds, quadratic forms, and dense/CSC
// conversions.
//
// Matrix polymorphism between dense and sparse representations is not
// expressed as virtual dispatch over individual operations (that is the hot
// path); instead two parallel free-function families are provided, and the
// caller (package lcqpow) holds a single mode flag selecting which family to
// use for a given problem.
package kernel
