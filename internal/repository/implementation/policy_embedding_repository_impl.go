package implementation

import (
	"context"
	"errors"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/mapper"
	"insurance-advisor-be/internal/model"
	"insurance-advisor-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PolicyEmbeddingRepositoryImpl struct {
	db           *gorm.DB
	mapper       *mapper.PolicyEmbeddingMapper
	policyMapper *mapper.PolicyMapper
}

func NewPolicyEmbeddingRepository(db *gorm.DB) contract.PolicyEmbeddingRepository {
	return &PolicyEmbeddingRepositoryImpl{
		db:           db,
		mapper:       mapper.NewPolicyEmbeddingMapper(),
		policyMapper: mapper.NewPolicyMapper(),
	}
}

// Upsert replaces the embedding row for a policy. Keyed on policy_id so
// re-embedding the same policy is idempotent.
func (r *PolicyEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.PolicyEmbedding) error {
	m := r.mapper.ToModel(embedding)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "policy_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *PolicyEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.PolicyEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PolicyEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.PolicyEmbedding{}).Error
}

func (r *PolicyEmbeddingRepositoryImpl) DeleteByPolicyId(ctx context.Context, policyId string) error {
	return r.db.WithContext(ctx).Where("policy_id = ?", policyId).Delete(&model.PolicyEmbedding{}).Error
}

func (r *PolicyEmbeddingRepositoryImpl) FindByPolicyId(ctx context.Context, policyId string) (*entity.PolicyEmbedding, error) {
	var m model.PolicyEmbedding
	err := r.db.WithContext(ctx).Where("policy_id = ?", policyId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PolicyEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PolicyEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore runs the vector search with the eligibility filter
// pushed into SQL. Cosine distance in pgvector is 1 - cosine_similarity, so
// we select 1 - (embedding_value <=> query) as the similarity score.
func (r *PolicyEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filter contract.AgeFilter) ([]*contract.ScoredPolicy, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.Policy
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("policy_embeddings").
		Select("policies.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN policies ON policies.id = policy_embeddings.policy_id")

	if filter.Enabled {
		query = query.Where("policies.eligibility_age_min <= ? AND policies.eligibility_age_max >= ?", filter.Age, filter.Age)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredPolicy, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredPolicy{
			Policy:     r.policyMapper.ToEntity(&res.Policy),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
