package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/mapper"
	"renewal-tracking-be/internal/model"
	"renewal-tracking-be/internal/repository/contract"
	"renewal-tracking-be/internal/repository/specification"
)

type RenewalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RenewalMapper
}

func NewRenewalRepository(db *gorm.DB) contract.RenewalRepository {
	return &RenewalRepositoryImpl{
		db:     db,
		mapper: mapper.NewRenewalMapper(),
	}
}

func (r *RenewalRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RenewalRepositoryImpl) Create(ctx context.Context, renewal *entity.Renewal) error {
	m := r.mapper.ToModel(renewal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*renewal = *r.mapper.ToEntity(m)
	return nil
}

func (r *RenewalRepositoryImpl) Update(ctx context.Context, renewal *entity.Renewal) error {
	m := r.mapper.ToModel(renewal)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*renewal = *r.mapper.ToEntity(m)
	return nil
}

func (r *RenewalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Renewal{}, id).Error
}

func (r *RenewalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Renewal, error) {
	var m model.Renewal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RenewalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Renewal, error) {
	var models []*model.Renewal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RenewalRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Renewal{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
