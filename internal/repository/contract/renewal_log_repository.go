package contract

import (
	"context"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/repository/specification"
)

type RenewalLogRepository interface {
	Create(ctx context.Context, log *entity.RenewalLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenewalLog, error)
}
