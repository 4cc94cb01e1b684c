// Package blas provides the small set of sparse/dense BLAS-like routines
// (sparse axpy, sparse dot, sparse matrix-vector multiply with optional
// transpose) that the CSC matrix-vector primitives in package kernel are
// built on, adapted from the teacher's own internal sparse BLAS helpers.
package blas
