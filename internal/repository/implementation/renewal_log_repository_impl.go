package implementation

import (
	"context"

	"gorm.io/gorm"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/mapper"
	"renewal-tracking-be/internal/model"
	"renewal-tracking-be/internal/repository/contract"
	"renewal-tracking-be/internal/repository/specification"
)

type RenewalLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RenewalLogMapper
}

func NewRenewalLogRepository(db *gorm.DB) contract.RenewalLogRepository {
	return &RenewalLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewRenewalLogMapper(),
	}
}

func (r *RenewalLogRepositoryImpl) Create(ctx context.Context, log *entity.RenewalLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *RenewalLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenewalLog, error) {
	var models []*model.RenewalLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
