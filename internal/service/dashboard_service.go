package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

type DashboardService struct {
	userRepo        UserRepository
	transactionRepo TransactionRepository
}

func NewDashboardService(u uow.UOW) (*DashboardService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	transactionRepo, tRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName))
	if tRepoErr != nil {
		return nil, tRepoErr
	}
	return &DashboardService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}, nil
}

// DashboardSummary история транзакций одной стороны плюс итоги по ней.
type DashboardSummary struct {
	Transactions []domain.Transaction
	Count        int
	BillTotal    decimal.Decimal
	PromoTotal   decimal.Decimal
	// DefaultPromo текущий процент магазина, заполняется только для дашборда магазина.
	DefaultPromo decimal.Decimal
}

// CustomerSummary транзакции покупателя (новые даты первыми) и суммы по ним.
func (d *DashboardService) CustomerSummary(ctx context.Context, customerID string) (*DashboardSummary, error) {
	transactions, err := d.transactionRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer dashboard for %s: %w", customerID, err)
	}
	return summarize(transactions), nil
}

// ShopSummary транзакции магазина, суммы и текущий default_promo.
func (d *DashboardService) ShopSummary(ctx context.Context, shopID string) (*DashboardSummary, error) {
	transactions, err := d.transactionRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("shop dashboard for %s: %w", shopID, err)
	}
	summary := summarize(transactions)

	shop, shopErr := d.userRepo.FindByUserID(ctx, shopID)
	if shopErr == nil {
		summary.DefaultPromo = shop.DefaultPromo
	}
	return summary, nil
}

// AdminOverview полный список юзеров и транзакций плюс группировки по магазинам и покупателям.
type AdminOverview struct {
	Users         []domain.User
	Transactions  []domain.Transaction
	ShopStats     []repoargs.TransactionAggregate
	CustomerStats []repoargs.TransactionAggregate
}

func (d *DashboardService) Overview(ctx context.Context) (*AdminOverview, error) {
	users, usersErr := d.userRepo.GetAll(ctx)
	if usersErr != nil {
		return nil, fmt.Errorf("admin overview: %w", usersErr)
	}
	transactions, tErr := d.transactionRepo.GetAll(ctx)
	if tErr != nil {
		return nil, fmt.Errorf("admin overview: %w", tErr)
	}
	shopStats, shopErr := d.transactionRepo.AggregateByShop(ctx)
	if shopErr != nil {
		return nil, fmt.Errorf("admin overview: %w", shopErr)
	}
	customerStats, customerErr := d.transactionRepo.AggregateByCustomer(ctx)
	if customerErr != nil {
		return nil, fmt.Errorf("admin overview: %w", customerErr)
	}

	return &AdminOverview{
		Users:         users,
		Transactions:  transactions,
		ShopStats:     shopStats,
		CustomerStats: customerStats,
	}, nil
}

func summarize(transactions []domain.Transaction) *DashboardSummary {
	summary := &DashboardSummary{
		Transactions: transactions,
		Count:        len(transactions),
	}
	for _, transaction := range transactions {
		summary.BillTotal = summary.BillTotal.Add(transaction.BillAmount)
		summary.PromoTotal = summary.PromoTotal.Add(transaction.PromotionAmount)
	}
	return summary
}
