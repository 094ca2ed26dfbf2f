package unitofwork

import (
	"context"

	"renewal-tracking-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RenewalRepository() contract.RenewalRepository
	RenewalLogRepository() contract.RenewalLogRepository
}
