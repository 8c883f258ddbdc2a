package contract

import (
	"context"

	"insurance-advisor-be/internal/entity"
)

// ScoredPolicy is a vector-search hit: the denormalized policy plus its
// cosine similarity to the query vector.
type ScoredPolicy struct {
	Policy     *entity.Policy
	Similarity float64
}

// AgeFilter is the structured filter applied natively inside the vector
// search query. Enabled=false means no age restriction.
type AgeFilter struct {
	Age     int
	Enabled bool
}

type PolicyEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.PolicyEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.PolicyEmbedding) error
	DeleteAll(ctx context.Context) error
	DeleteByPolicyId(ctx context.Context, policyId string) error
	FindByPolicyId(ctx context.Context, policyId string) (*entity.PolicyEmbedding, error)
	Count(ctx context.Context) (int64, error)

	// SearchSimilarWithScore returns up to limit candidates ordered by
	// descending cosine similarity (1 - cosine distance over normalized
	// vectors). The age filter is pushed into SQL so eligible candidates
	// are never crowded out by ineligible ones.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filter AgeFilter) ([]*ScoredPolicy, error)
}
