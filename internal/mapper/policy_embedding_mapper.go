package mapper

import (
	"time"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type PolicyEmbeddingMapper struct{}

func NewPolicyEmbeddingMapper() *PolicyEmbeddingMapper {
	return &PolicyEmbeddingMapper{}
}

func (m *PolicyEmbeddingMapper) ToEntity(e *model.PolicyEmbedding) *entity.PolicyEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.PolicyEmbedding{
		Id:             e.Id,
		PolicyId:       e.PolicyId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *PolicyEmbeddingMapper) ToModel(e *entity.PolicyEmbedding) *model.PolicyEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.PolicyEmbedding{
		Id:             e.Id,
		PolicyId:       e.PolicyId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *PolicyEmbeddingMapper) ToEntities(embeddings []*model.PolicyEmbedding) []*entity.PolicyEmbedding {
	entities := make([]*entity.PolicyEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *PolicyEmbeddingMapper) ToModels(embeddings []*entity.PolicyEmbedding) []*model.PolicyEmbedding {
	models := make([]*model.PolicyEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
