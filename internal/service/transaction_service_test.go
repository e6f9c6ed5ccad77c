package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/internal/service/mocks"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
	uowmocks "github.com/fsdevblog/promo-ledger/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockUserRepo        *mocks.MockUserRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	transactionService  *TransactionService
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(mockCtrl)

	// Проверка регистрации репозитория в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	// Оба репозитория берутся из транзакции.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	transactionService, servErr := NewTransactionService(s.mockUOW)
	s.Require().NoError(servErr)
	s.transactionService = transactionService
}

func (s *TransactionServiceTestSuite) TestRecord() {
	shop := domain.User{
		ID:           2,
		UserID:       "S00001",
		Name:         "Лавка",
		Role:         domain.RoleShopOwner,
		DefaultPromo: decimal.NewFromFloat(7.5),
	}
	customer := domain.User{
		ID:       1,
		UserID:   "C00001",
		Name:     "Иван",
		Role:     domain.RoleCustomer,
		Whatsapp: "+79990001122",
	}

	s.mockUserRepo.EXPECT().
		FindByUserID(gomock.Any(), shop.UserID).
		Return(&shop, nil).AnyTimes()

	s.mockUserRepo.EXPECT().
		FindCustomerByWhatsapp(gomock.Any(), customer.Whatsapp).
		Return(&customer, nil).AnyTimes()
	s.mockUserRepo.EXPECT().
		FindCustomerByWhatsapp(gomock.Any(), "+70000000000").
		Return(nil, domain.ErrRecordNotFound)

	// 199.99 * 7.5 / 100 = 14.99925, округляется до 15.00.
	bill := decimal.NewFromFloat(199.99)
	wantPromo := decimal.RequireFromString("15.00")

	created := domain.Transaction{
		ID:              1,
		CustomerID:      customer.UserID,
		ShopID:          shop.UserID,
		BillAmount:      bill,
		PromotionAmount: wantPromo,
		TransactionDate: "2026-08-28",
	}

	s.mockTransactionRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Eq(repoargs.CreateTransaction{
			CustomerID:      customer.UserID,
			ShopID:          shop.UserID,
			BillAmount:      bill,
			PromotionAmount: wantPromo,
			TransactionDate: "2026-08-28",
		})).
		Return(&created, nil)

	// Нулевой чек дает нулевое промо.
	zeroBill := decimal.Zero
	createdZero := domain.Transaction{
		ID:              2,
		CustomerID:      customer.UserID,
		ShopID:          shop.UserID,
		BillAmount:      zeroBill,
		PromotionAmount: decimal.Zero.Round(2),
		TransactionDate: "2026-08-28",
	}
	s.mockTransactionRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		Return(&createdZero, nil)

	cases := []struct {
		name      string
		args      RecordTransactionArgs
		wantErr   error
		wantPromo decimal.Decimal
	}{
		{
			name: "rounds promo to cents",
			args: RecordTransactionArgs{
				ShopID:          shop.UserID,
				TransactionDate: "2026-08-28",
				BillAmount:      bill,
				CustomerPhone:   customer.Whatsapp,
			},
			wantPromo: wantPromo,
		},
		{
			name: "zero bill",
			args: RecordTransactionArgs{
				ShopID:          shop.UserID,
				TransactionDate: "2026-08-28",
				BillAmount:      zeroBill,
				CustomerPhone:   customer.Whatsapp,
			},
			wantPromo: decimal.Zero,
		},
		{
			name: "unknown customer phone",
			args: RecordTransactionArgs{
				ShopID:          shop.UserID,
				TransactionDate: "2026-08-28",
				BillAmount:      bill,
				CustomerPhone:   "+70000000000",
			},
			wantErr: domain.ErrCustomerNotFound,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			result, err := s.transactionService.Record(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Require().NotNil(result)
				s.True(t.wantPromo.Equal(result.Transaction.PromotionAmount))
				s.True(shop.DefaultPromo.Equal(result.DefaultPromo))
			} else {
				s.Nil(result)
			}
		})
	}
}

func (s *TransactionServiceTestSuite) TestRecordUnknownShop() {
	s.mockUserRepo.EXPECT().
		FindByUserID(gomock.Any(), "S99999").
		Return(nil, domain.ErrRecordNotFound)

	result, err := s.transactionService.Record(s.T().Context(), RecordTransactionArgs{
		ShopID:          "S99999",
		TransactionDate: "2026-08-28",
		BillAmount:      decimal.NewFromInt(100),
		CustomerPhone:   "+79990001122",
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	s.Nil(result)
}
