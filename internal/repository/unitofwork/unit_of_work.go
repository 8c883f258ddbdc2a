package unitofwork

import (
	"context"

	"insurance-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PolicyRepository() contract.PolicyRepository
	PolicyEmbeddingRepository() contract.PolicyEmbeddingRepository
}
