package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/service"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, error)
	Login(ctx context.Context, phone, password string) (*service.SessionUser, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetByUserID(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, args service.UpdateUserArgs) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type TransactionServicer interface {
	Record(ctx context.Context, args service.RecordTransactionArgs) (*service.RecordResult, error)
}

type DashboardServicer interface {
	CustomerSummary(ctx context.Context, customerID string) (*service.DashboardSummary, error)
	ShopSummary(ctx context.Context, shopID string) (*service.DashboardSummary, error)
	Overview(ctx context.Context) (*service.AdminOverview, error)
}
