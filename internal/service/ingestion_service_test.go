package service

import (
	"context"
	"testing"
	"time"

	"insurance-advisor-be/pkg/normalizer"

	"github.com/stretchr/testify/assert"
)

func testRecords() []normalizer.RawPolicyRecord {
	return []normalizer.RawPolicyRecord{
		{
			PolicyName:       "Tech Term",
			Category:         "Term Assurance",
			PlanNumber:       "954",
			EligibilityAge:   "18-65 years",
			FeaturesBenefits: "Death benefit | Low premium",
		},
		{
			PolicyName:       "Jeevan Labh",
			Category:         "Endowment",
			PlanNumber:       "936",
			EligibilityAge:   "8-59 years",
			FeaturesBenefits: "Savings | Guaranteed additions",
		},
		{
			PolicyName: "Mystery Plan",
			Category:   "Endowment",
			// no plan number, no age
		},
	}
}

func TestReloadRecordsReplacesCatalog(t *testing.T) {
	factory, policyRepo, embeddingRepo := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{}

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 2, time.Second)

	result, err := svc.ReloadRecords(context.Background(), testRecords())
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 3, result.Embedded)
	assert.Equal(t, 0, result.Skipped)

	assert.True(t, policyRepo.deleted, "old policies must be cleared")
	assert.True(t, embeddingRepo.deleted, "old embeddings must be cleared")
	assert.Len(t, policyRepo.policies, 3)
	assert.Len(t, embeddingRepo.embeddings, 3)

	// Missing plan number gets the per-row fallback id.
	_, ok := policyRepo.policies["endowment_unknown_2"]
	assert.True(t, ok, "fallback id should be derived from row index")
}

func TestReloadRecordsSkipsFailedEmbeddings(t *testing.T) {
	factory, policyRepo, _ := newFakeUowFactory()

	records := testRecords()
	failDoc := normalizer.BuildDocument(normalizer.Normalize(records[1]))
	provider := &fakeEmbeddingProvider{failFor: map[string]bool{failDoc: true}}

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 2, time.Second)

	result, err := svc.ReloadRecords(context.Background(), records)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 2, result.Embedded)
	assert.Equal(t, 1, result.Skipped)

	// The failed record is dropped entirely, not half-written.
	assert.Len(t, policyRepo.policies, 2)
	for id := range policyRepo.policies {
		assert.NotEqual(t, "endowment_936", id)
	}
}

func TestReloadRecordsIdempotent(t *testing.T) {
	factory, policyRepo, embeddingRepo := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{}

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 2, time.Second)

	_, err := svc.ReloadRecords(context.Background(), testRecords())
	assert.NoError(t, err)
	firstIds := make([]string, 0, len(policyRepo.policies))
	for id := range policyRepo.policies {
		firstIds = append(firstIds, id)
	}

	_, err = svc.ReloadRecords(context.Background(), testRecords())
	assert.NoError(t, err)

	assert.Len(t, policyRepo.policies, len(firstIds))
	for _, id := range firstIds {
		assert.Contains(t, policyRepo.policies, id)
		emb, ok := embeddingRepo.embeddings[id]
		assert.True(t, ok)
		assert.Equal(t, normalizer.BuildDocument(policyRepo.policies[id]), emb.Document)
	}
}

func TestReloadRecordsDisambiguatesDuplicateRows(t *testing.T) {
	factory, policyRepo, embeddingRepo := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{}

	records := testRecords()
	duplicate := records[1] // Jeevan Labh, Endowment 936
	duplicate.PolicyName = "Jeevan Labh (listed twice)"
	records = append(records, duplicate)

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 2, time.Second)

	result, err := svc.ReloadRecords(context.Background(), records)
	assert.NoError(t, err)
	assert.Equal(t, 4, result.Loaded)
	assert.Equal(t, 4, result.Embedded)

	// Both copies survive under distinct ids.
	assert.Len(t, policyRepo.policies, 4)
	assert.Contains(t, policyRepo.policies, "endowment_936")
	assert.Contains(t, policyRepo.policies, "endowment_unknown_3")
	assert.Len(t, embeddingRepo.embeddings, 4)
}

func TestReloadRecordsRefusesEmptySwap(t *testing.T) {
	factory, policyRepo, _ := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{failAll: true}

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 2, time.Second)

	_, err := svc.ReloadRecords(context.Background(), testRecords())
	assert.ErrorIs(t, err, ErrAllEmbeddingsFailed)

	// Existing catalog stays in place after a total provider outage.
	assert.False(t, policyRepo.deleted)
}

func TestReloadRecordsCancellation(t *testing.T) {
	factory, policyRepo, _ := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{}

	svc := NewIngestionService(factory, provider, nil, nopLogger{}, 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ReloadRecords(ctx, testRecords())
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing written, existing catalog untouched.
	assert.False(t, policyRepo.deleted)
}
