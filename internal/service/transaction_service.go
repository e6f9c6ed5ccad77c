package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

// promoDivisor процент промо хранится как число 0..100.
var promoDivisor = decimal.NewFromInt(100)

type TransactionService struct {
	uow uow.UOW
}

func NewTransactionService(u uow.UOW) (*TransactionService, error) {
	// репозитории берутся из транзакции в Record, вне ее сервису ничего не нужно,
	// но регистрацию проверяем на старте
	if _, err := uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName)); err != nil {
		return nil, err
	}
	return &TransactionService{uow: u}, nil
}

type RecordTransactionArgs struct {
	ShopID          string
	TransactionDate string
	BillAmount      decimal.Decimal
	CustomerPhone   string
}

// RecordResult результат записи продажи: сама транзакция и процент, по которому посчитали промо.
type RecordResult struct {
	Transaction  *domain.Transaction
	DefaultPromo decimal.Decimal
}

// Record записывает продажу магазина. Внутри одной транзакции: свежее чтение default_promo
// магазина (правка админа действует со следующей продажи), поиск покупателя по whatsapp,
// расчет promotion_amount = bill * default_promo / 100 с округлением до 2 знаков, вставка.
// Если покупатель не найден - domain.ErrCustomerNotFound, запись не создается.
func (t *TransactionService) Record(ctx context.Context, args RecordTransactionArgs) (*RecordResult, error) {
	var result RecordResult
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transactionRepo, tRepoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if tRepoErr != nil {
			return tRepoErr //nolint:wrapcheck
		}

		shop, shopErr := userRepo.FindByUserID(c, args.ShopID)
		if shopErr != nil {
			return shopErr //nolint:wrapcheck
		}
		result.DefaultPromo = shop.DefaultPromo

		customer, customerErr := userRepo.FindCustomerByWhatsapp(c, args.CustomerPhone)
		if customerErr != nil {
			if errors.Is(customerErr, domain.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return customerErr //nolint:wrapcheck
		}

		promoAmount := args.BillAmount.Mul(shop.DefaultPromo).Div(promoDivisor).Round(2)

		var createErr error
		result.Transaction, createErr = transactionRepo.CreateTransaction(c, repoargs.CreateTransaction{
			CustomerID:      customer.UserID,
			ShopID:          args.ShopID,
			BillAmount:      args.BillAmount,
			PromotionAmount: promoAmount,
			TransactionDate: args.TransactionDate,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		if errors.Is(txErr, domain.ErrCustomerNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("recording transaction: %w", txErr)
	}
	return &result, nil
}
