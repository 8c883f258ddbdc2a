package entity

import (
	"time"

	"github.com/google/uuid"
)

// PolicyEmbedding holds the embedded document for one policy. Exactly one
// row per policy; re-embedding replaces the row rather than appending.
type PolicyEmbedding struct {
	Id             uuid.UUID
	PolicyId       string
	Document       string // the deterministic embedding text, kept for auditability
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
