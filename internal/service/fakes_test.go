package service

import (
	"context"
	"errors"
	"sync"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/repository/contract"
	"insurance-advisor-be/internal/repository/specification"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/pkg/embedding"
)

// fakeEmbeddingProvider returns a constant vector, optionally failing for
// texts listed in failFor.
type fakeEmbeddingProvider struct {
	mu      sync.Mutex
	calls   int
	failAll bool
	failFor map[string]bool
}

func (f *fakeEmbeddingProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failAll || f.failFor[text] {
		return nil, errors.New("embedding provider down")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.1, 0.2, 0.3},
		},
	}, nil
}

type fakePolicyRepo struct {
	mu        sync.Mutex
	policies  map[string]*entity.Policy
	deleted   bool
	createErr error
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: map[string]*entity.Policy{}}
}

func (r *fakePolicyRepo) Create(ctx context.Context, p *entity.Policy) error {
	return r.CreateBulk(ctx, []*entity.Policy{p})
}

func (r *fakePolicyRepo) CreateBulk(ctx context.Context, policies []*entity.Policy) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range policies {
		r.policies[p.Id] = p
	}
	return nil
}

func (r *fakePolicyRepo) Upsert(ctx context.Context, p *entity.Policy) error {
	return r.CreateBulk(ctx, []*entity.Policy{p})
}

func (r *fakePolicyRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies = map[string]*entity.Policy{}
	r.deleted = true
	return nil
}

func (r *fakePolicyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByPolicyID); ok {
			return r.policies[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakePolicyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	limit := -1
	out := make([]*entity.Policy, 0, len(r.policies))
	for _, p := range r.policies {
		if policyMatches(p, specs) {
			out = append(out, p)
		}
	}
	for _, spec := range specs {
		if l, ok := spec.(specification.Limit); ok {
			limit = l.N
		}
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePolicyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.policies {
		if policyMatches(p, specs) {
			count++
		}
	}
	return count, nil
}

// policyMatches mirrors the SQL the real specifications generate, enough
// for the filter-shaped specs the services pass.
func policyMatches(p *entity.Policy, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByCategory:
			if p.Category != s.Category {
				return false
			}
		case specification.EligibleForAge:
			if s.Age < p.EligibilityAgeMin || s.Age > p.EligibilityAgeMax {
				return false
			}
		case specification.MinCompleteness:
			if p.CompletenessScore < s.Score {
				return false
			}
		}
	}
	return true
}

func (r *fakePolicyRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range r.policies {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

type fakeEmbeddingRepo struct {
	mu         sync.Mutex
	embeddings map[string]*entity.PolicyEmbedding
	deleted    bool
	searchRes  []*contract.ScoredPolicy
	searchErr  error
	lastLimit  int
	lastFilter contract.AgeFilter
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{embeddings: map[string]*entity.PolicyEmbedding{}}
}

func (r *fakeEmbeddingRepo) Upsert(ctx context.Context, e *entity.PolicyEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeddings[e.PolicyId] = e
	return nil
}

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.PolicyEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range embeddings {
		r.embeddings[e.PolicyId] = e
	}
	return nil
}

func (r *fakeEmbeddingRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeddings = map[string]*entity.PolicyEmbedding{}
	r.deleted = true
	return nil
}

func (r *fakeEmbeddingRepo) DeleteByPolicyId(ctx context.Context, policyId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.embeddings, policyId)
	return nil
}

func (r *fakeEmbeddingRepo) FindByPolicyId(ctx context.Context, policyId string) (*entity.PolicyEmbedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.embeddings[policyId], nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.embeddings)), nil
}

func (r *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, filter contract.AgeFilter) ([]*contract.ScoredPolicy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	r.lastFilter = filter
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.searchRes, nil
}

// fakeUnitOfWork routes both repositories to the shared fakes; Begin,
// Commit and Rollback are no-ops.
type fakeUnitOfWork struct {
	policyRepo    *fakePolicyRepo
	embeddingRepo *fakeEmbeddingRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) PolicyRepository() contract.PolicyRepository {
	return u.policyRepo
}

func (u *fakeUnitOfWork) PolicyEmbeddingRepository() contract.PolicyEmbeddingRepository {
	return u.embeddingRepo
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeUowFactory() (*fakeUowFactory, *fakePolicyRepo, *fakeEmbeddingRepo) {
	policyRepo := newFakePolicyRepo()
	embeddingRepo := newFakeEmbeddingRepo()
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{policyRepo: policyRepo, embeddingRepo: embeddingRepo},
	}, policyRepo, embeddingRepo
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
