package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/cache"
)

var ErrDimensionMismatch = errors.New("embedding dimensions differ")

// SimilarityScorer compares two texts by the cosine similarity of their embeddings.
type SimilarityScorer struct {
	embedder ai.Embedder
	store    cache.Store
}

func NewSimilarityScorer(embedder ai.Embedder, store cache.Store) *SimilarityScorer {
	return &SimilarityScorer{embedder: embedder, store: store}
}

// Similarity returns the cosine similarity of a and b. Embedding errors are
// returned unchanged so the caller can decide how to degrade.
func (s *SimilarityScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	return cache.GetOrCompute(ctx, s.store, cache.Key("similarity", a, b), 0, func(ctx context.Context) (float64, error) {
		va, err := s.embed(ctx, a)
		if err != nil {
			return 0, err
		}
		vb, err := s.embed(ctx, b)
		if err != nil {
			return 0, err
		}
		if len(va) != len(vb) {
			return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(va), len(vb))
		}
		return Cosine(va, vb), nil
	})
}

func (s *SimilarityScorer) embed(ctx context.Context, text string) ([]float32, error) {
	return cache.GetOrCompute(ctx, s.store, cache.Key("embedding", text), 0, func(ctx context.Context) ([]float32, error) {
		return s.embedder.Embed(ctx, text)
	})
}

// Cosine returns dot(a,b)/(|a||b|). Zero vectors and mismatched lengths yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
