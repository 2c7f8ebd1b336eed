// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TruncatedSVD computes a rank-k approximation A ≈ U·diag(S)·Vᵀ with the
// randomized range finder of Halko, Martinsson and Tropp: a seeded Gaussian
// test matrix, power iterations with re-orthonormalization, then an exact
// thin SVD of the small projected matrix.
//
// Results are deterministic for a given seed. Singular vectors are sign
// normalized so that the largest-magnitude entry of every right singular
// vector is positive.
type TruncatedSVD struct {
	Rank            int
	Oversamples     int
	PowerIterations int
	Seed            int64
}

// SVDResult holds the factors of a truncated decomposition.
// U is m×k, V is n×k and S has k non-increasing values.
type SVDResult struct {
	U *mat.Dense
	S []float64
	V *mat.Dense
}

// Rank returns k.
func (r *SVDResult) Rank() int { return len(r.S) }

// Factorize decomposes a. The effective rank is min(Rank, rows, cols).
func (t TruncatedSVD) Factorize(ctx context.Context, a mat.Matrix) (*SVDResult, error) {
	m, n := a.Dims()
	k := min(t.Rank, m, n)
	if k < 1 {
		return nil, fmt.Errorf("cannot factorize %dx%d matrix at rank %d", m, n, t.Rank)
	}

	l := min(k+max(t.Oversamples, 0), n)

	rng := rand.New(rand.NewSource(t.Seed)) //nolint:gosec // deterministic test matrix, not security sensitive
	omega := mat.NewDense(n, l, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < l; j++ {
			omega.Set(i, j, rng.NormFloat64())
		}
	}

	var y mat.Dense
	y.Mul(a, omega)
	q, err := orthonormalBasis(&y)
	if err != nil {
		return nil, err
	}

	for i := 0; i < t.PowerIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var z mat.Dense
		z.Mul(a.T(), q)
		qz, err := orthonormalBasis(&z)
		if err != nil {
			return nil, err
		}
		var y2 mat.Dense
		y2.Mul(a, qz)
		if q, err = orthonormalBasis(&y2); err != nil {
			return nil, err
		}
	}

	// B = Qᵀ·A is small: at most l×n
	var b mat.Dense
	b.Mul(q.T(), a)

	var svd mat.SVD
	if ok := svd.Factorize(&b, mat.SVDThin); !ok {
		return nil, errors.New("svd of projected matrix did not converge")
	}
	var ub, vb mat.Dense
	svd.UTo(&ub)
	svd.VTo(&vb)
	values := svd.Values(nil)

	var u mat.Dense
	u.Mul(q, &ub)

	res := &SVDResult{
		U: mat.DenseCopyOf(u.Slice(0, m, 0, k)),
		S: append([]float64(nil), values[:k]...),
		V: mat.DenseCopyOf(vb.Slice(0, n, 0, k)),
	}
	flipSigns(res)
	return res, nil
}

// orthonormalBasis returns the left singular vectors of y, an orthonormal
// basis of its column space.
func orthonormalBasis(y *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(y, mat.SVDThin); !ok {
		return nil, errors.New("range finder svd did not converge")
	}
	var u mat.Dense
	svd.UTo(&u)
	return &u, nil
}

// flipSigns makes the largest-magnitude entry of each column of V positive,
// negating the matching column of U.
func flipSigns(res *SVDResult) {
	rowsU, _ := res.U.Dims()
	rowsV, k := res.V.Dims()
	for j := 0; j < k; j++ {
		best, bestAbs := 0.0, -1.0
		for i := 0; i < rowsV; i++ {
			v := res.V.At(i, j)
			if math.Abs(v) > bestAbs {
				best, bestAbs = v, math.Abs(v)
			}
		}
		if best >= 0 {
			continue
		}
		for i := 0; i < rowsV; i++ {
			res.V.Set(i, j, -res.V.At(i, j))
		}
		for i := 0; i < rowsU; i++ {
			res.U.Set(i, j, -res.U.At(i, j))
		}
	}
}
