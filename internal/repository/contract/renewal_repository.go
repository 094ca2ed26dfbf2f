package contract

import (
	"context"

	"github.com/google/uuid"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/repository/specification"
)

type RenewalRepository interface {
	Create(ctx context.Context, renewal *entity.Renewal) error
	Update(ctx context.Context, renewal *entity.Renewal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Renewal, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Renewal, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
