package contract

import (
	"context"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/repository/specification"
)

type PolicyRepository interface {
	Create(ctx context.Context, policy *entity.Policy) error
	CreateBulk(ctx context.Context, policies []*entity.Policy) error
	Upsert(ctx context.Context, policy *entity.Policy) error
	DeleteAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Policy, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Policy, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}
