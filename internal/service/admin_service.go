package service

import (
	"context"

	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/repository/specification"
	"renewal-tracking-be/internal/repository/unitofwork"
	"renewal-tracking-be/pkg/renewal"
)

type IAdminService interface {
	ListUsers(ctx context.Context, req *dto.AdminUserListRequest) ([]*dto.UserResponse, error)
	SystemStats(ctx context.Context) (*dto.AdminSystemStats, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory) IAdminService {
	return &adminService{uowFactory: uowFactory}
}

func (s *adminService) ListUsers(ctx context.Context, req *dto.AdminUserListRequest) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if req.Search != "" {
		specs = append(specs, specification.EmailOrNameContains{Term: req.Search})
	}
	if req.Role != "" {
		specs = append(specs, specification.ByRole{Role: req.Role})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, &dto.UserResponse{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

func (s *adminService) SystemStats(ctx context.Context) (*dto.AdminSystemStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	records, err := uow.RenewalRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	agg := renewal.Aggregate(records)
	return &dto.AdminSystemStats{
		TotalUsers:    len(users),
		TotalRenewals: agg.Total,
		Renewals: dto.RenewalStatsResponse{
			Active:       agg.Active,
			ExpiringSoon: agg.ExpiringSoon,
			Expired:      agg.Expired,
			Total:        agg.Total,
			TotalCost:    agg.TotalCost,
		},
	}, nil
}
