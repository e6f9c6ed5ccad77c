package service

import (
	"context"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByWhatsapp(ctx context.Context, whatsapp string) (*domain.User, error)
	FindCustomerByWhatsapp(ctx context.Context, whatsapp string) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, args repoargs.UpdateUser) (*domain.User, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]domain.Transaction, error)
	GetByShopID(ctx context.Context, shopID string) ([]domain.Transaction, error)
	GetAll(ctx context.Context) ([]domain.Transaction, error)
	AggregateByShop(ctx context.Context) ([]repoargs.TransactionAggregate, error)
	AggregateByCustomer(ctx context.Context) ([]repoargs.TransactionAggregate, error)
}
