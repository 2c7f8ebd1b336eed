// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

func fitCollaborative(t *testing.T, m *transactions.Matrix, rank int) *Collaborative {
	t.Helper()
	c := NewCollaborative(CollaborativeConfig{Oversamples: 10, PowerIterations: 5, Seed: 42})
	if err := c.Fit(context.Background(), m, rank); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return c
}

func TestTruncatedSVD_Factorize(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(4, 3, []float64{
		3, 1, 0,
		1, 2, 1,
		0, 1, 4,
		2, 0, 1,
	})
	svd := TruncatedSVD{Rank: 3, Oversamples: 10, PowerIterations: 5, Seed: 42}
	res, err := svd.Factorize(context.Background(), a)
	if err != nil {
		t.Fatalf("Factorize() error = %v", err)
	}
	if res.Rank() != 3 {
		t.Fatalf("Rank() = %d, want 3", res.Rank())
	}

	for i := 1; i < len(res.S); i++ {
		if res.S[i] > res.S[i-1] {
			t.Errorf("singular values not sorted: %v", res.S)
		}
	}

	var us, rec mat.Dense
	us.Mul(res.U, mat.NewDiagDense(len(res.S), res.S))
	rec.Mul(&us, res.V.T())
	if !mat.EqualApprox(&rec, a, 1e-8) {
		t.Errorf("full-rank reconstruction differs:\n%v", mat.Formatted(&rec))
	}

	_, k := res.V.Dims()
	rows, _ := res.V.Dims()
	for j := 0; j < k; j++ {
		best := 0.0
		for i := 0; i < rows; i++ {
			if v := res.V.At(i, j); v*v > best*best {
				best = v
			}
		}
		if best < 0 {
			t.Errorf("column %d of V has negative dominant entry", j)
		}
	}
}

func TestTruncatedSVD_InvalidRank(t *testing.T) {
	t.Parallel()

	svd := TruncatedSVD{Rank: 0}
	if _, err := svd.Factorize(context.Background(), mat.NewDense(2, 2, []float64{1, 0, 0, 1})); err == nil {
		t.Error("expected error for zero rank")
	}
}

func TestCollaborative_Reconstruction(t *testing.T) {
	t.Parallel()

	m := blockMatrix()
	c := fitCollaborative(t, m, 10)

	requested, effective, clamped := c.RankClamped()
	if !clamped || requested != 10 || effective != 4 {
		t.Fatalf("RankClamped() = (%d, %d, %v), want (10, 4, true)", requested, effective, clamped)
	}

	f := c.Factors()
	for i, row := range m.Counts {
		for j, want := range row {
			if got := dot(f.UserFactors[i], f.ItemFactors[j]); !approxEqual(got, want, 1e-8) {
				t.Errorf("reconstructed[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestCollaborative_Deterministic(t *testing.T) {
	t.Parallel()

	a := fitCollaborative(t, blockMatrix(), 2).Factors()
	b := fitCollaborative(t, blockMatrix(), 2).Factors()
	if !reflect.DeepEqual(a, b) {
		t.Error("two fits with the same seed produced different factors")
	}
}

func TestCollaborative_SimilarProducts(t *testing.T) {
	t.Parallel()

	c := fitCollaborative(t, blockMatrix(), 2)

	recs, err := c.SimilarProducts("A", 3)
	if err != nil {
		t.Fatalf("SimilarProducts() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if recs[0].Product != "B" || recs[0].Score < 0.99 {
		t.Errorf("top similar = %+v, want B with similarity ~1", recs[0])
	}
	if recs[0].Explanation != "Similar to A based on customer preferences" {
		t.Errorf("Explanation = %q", recs[0].Explanation)
	}
	for _, r := range recs {
		if r.Product == "A" {
			t.Error("query product returned as similar")
		}
		if r.Score < -1-epsilon || r.Score > 1+epsilon {
			t.Errorf("similarity %v out of range", r.Score)
		}
	}
	for _, r := range recs[1:] {
		if !approxEqual(r.Score, 0, 1e-6) {
			t.Errorf("%s similarity = %v, want ~0", r.Product, r.Score)
		}
	}

	if recs, _ := c.SimilarProducts("A", 1); len(recs) != 1 {
		t.Errorf("topN=1 returned %d", len(recs))
	}
}

func TestCollaborative_RecommendForUser(t *testing.T) {
	t.Parallel()

	c := fitCollaborative(t, blockMatrix(), 2)

	recs, err := c.RecommendForUser(5, 5)
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}
	if got := len(recs); got != 3 {
		t.Fatalf("len = %d, want 3 unpurchased products", got)
	}
	if recs[0].Product != "B" || recs[0].Score <= 0 {
		t.Errorf("top = %+v, want B with positive affinity", recs[0])
	}
	for _, r := range recs {
		if r.Product == "A" {
			t.Error("purchased product recommended")
		}
		if r.Explanation != "Based on similar customers' preferences" {
			t.Errorf("Explanation = %q", r.Explanation)
		}
		if _, ok := r.Scores[recommend.ScoreAffinity]; !ok {
			t.Errorf("missing affinity score for %s", r.Product)
		}
	}

	// customer 1 bought A and B
	recs, err = c.RecommendForUser(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := productsOf(recs); !reflect.DeepEqual(got, []string{"C", "D"}) && !reflect.DeepEqual(got, []string{"D", "C"}) {
		t.Errorf("RecommendForUser(1) = %v", got)
	}
}

func TestCollaborative_Errors(t *testing.T) {
	t.Parallel()

	unfit := NewCollaborative(CollaborativeConfig{})
	if _, err := unfit.SimilarProducts("A", 3); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("unfit SimilarProducts error = %v", err)
	}
	if _, err := unfit.RecommendForUser(1, 3); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("unfit RecommendForUser error = %v", err)
	}

	c := fitCollaborative(t, blockMatrix(), 2)
	if _, err := c.SimilarProducts("Nope", 3); !errors.Is(err, recommend.ErrUnknownProduct) {
		t.Errorf("SimilarProducts(unknown) error = %v", err)
	}
	if _, err := c.RecommendForUser(99, 3); !errors.Is(err, recommend.ErrUnknownCustomer) {
		t.Errorf("RecommendForUser(unknown) error = %v", err)
	}

	if err := c.Fit(context.Background(), blockMatrix(), 0); err == nil {
		t.Error("expected error for zero rank")
	}
	empty := transactions.NewMatrix(nil, nil)
	if err := c.Fit(context.Background(), empty, 2); err == nil {
		t.Error("expected error for empty matrix")
	}
}
