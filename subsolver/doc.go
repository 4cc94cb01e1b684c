// Package subsolver implements the uniform QP subsolver contract the
// penalty-homotopy engine drives once per inner iteration: a cold
// "initial" solve from a user-supplied guess, and a "hotstart" solve that
// reuses the previous working set / factorization and only updates the
// linear term and bounds.
//
// Three backends implement Subsolver: DenseActiveSet and SparseActiveSet
// (a primal active-set method, dense- and CSC-backed respectively) and
// SparseOperatorSplitting (an ADMM/OSQP-style operator-splitting method
// that rejects non-trivial box bounds). Backend choice is coarse-grained —
// one call per inner iteration — which is why it is expressed as an
// interface rather than per-operation dispatch (see DESIGN.md).
package subsolver
