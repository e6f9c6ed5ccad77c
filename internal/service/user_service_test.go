package service

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/promo-ledger/internal/config"
	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/internal/service/mocks"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
	uowmocks "github.com/fsdevblog/promo-ledger/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testSuperAdminPassword = "suadmin654321"
const testSuperAdminPassHash = "suadmin hash"

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockUserRepo *mocks.MockUserRepository
	mockPsswd    *mocks.MockPasswordHasher
	userService  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	// Пароль супер-админа хешируется один раз при создании сервиса.
	s.mockPsswd.EXPECT().HashPassword(testSuperAdminPassword).
		Return(testSuperAdminPassHash, nil)

	// Инициализация сервиса.
	userService, servErr := NewUserService(s.mockUOW, s.mockPsswd, testSuperAdminPassword)
	s.Require().NoError(servErr)
	s.userService = userService
}

// expectDo прокидывает колбек uow.Do в мок транзакции.
func (s *UserServiceTestSuite) expectDo() {
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).MinTimes(1)
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
}

func (s *UserServiceTestSuite) TestRegister() {
	s.expectDo()

	promo := decimal.NewFromFloat(7.5)

	argsCustomer := RegisterUserArgs{
		Name:        "Иван",
		City:        "Казань",
		Address:     "ул. Баумана 1",
		Whatsapp:    "+79990001122",
		Role:        domain.RoleCustomer,
		BankName:    "T-Bank",
		BankAccount: "40817810",
		// процент в аргументах покупателя игнорируется
		DefaultPromo: promo,
	}
	argsShop := RegisterUserArgs{
		Name:     "Лавка",
		City:     "Казань",
		Address:  "ул. Баумана 2",
		Whatsapp: "+79990003344",
		Role:     domain.RoleShopOwner,
		// банковские реквизиты в аргументах магазина игнорируются
		BankName:     "T-Bank",
		BankAccount:  "40817811",
		DefaultPromo: promo,
	}
	argsDuplicate := RegisterUserArgs{
		Name:     "Дубль",
		City:     "Казань",
		Address:  "ул. Баумана 3",
		Whatsapp: "+79990005566",
		Role:     domain.RoleCustomer,
	}

	createdCustomer := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    "C00001",
		Name:      argsCustomer.Name,
		Role:      domain.RoleCustomer,
	}
	createdShop := domain.User{
		ID:           2,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		UserID:       "S00003",
		Name:         argsShop.Name,
		Role:         domain.RoleShopOwner,
		DefaultPromo: promo,
	}

	// Мок счетчиков: ноль покупателей дает C00001, два магазина дают S00003.
	s.mockUserRepo.EXPECT().CountByRole(gomock.Any(), domain.RoleCustomer).
		Return(int64(0), nil)
	s.mockUserRepo.EXPECT().CountByRole(gomock.Any(), domain.RoleShopOwner).
		Return(int64(2), nil)
	s.mockUserRepo.EXPECT().CountByRole(gomock.Any(), domain.RoleCustomer).
		Return(int64(1), nil)

	// Покупатель: банковские поля сохраняются, процент сбрасывается в ноль.
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			UserID:       "C00001",
			Name:         argsCustomer.Name,
			UserType:     string(domain.RoleCustomer),
			City:         argsCustomer.City,
			Address:      argsCustomer.Address,
			Whatsapp:     argsCustomer.Whatsapp,
			BankName:     argsCustomer.BankName,
			BankAccount:  argsCustomer.BankAccount,
			DefaultPromo: decimal.Zero,
		})).
		Return(&createdCustomer, nil)

	// Магазин: процент сохраняется, банковские поля отбрасываются.
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			UserID:       "S00003",
			Name:         argsShop.Name,
			UserType:     string(domain.RoleShopOwner),
			City:         argsShop.City,
			Address:      argsShop.Address,
			Whatsapp:     argsShop.Whatsapp,
			DefaultPromo: promo,
		})).
		Return(&createdShop, nil)

	// Гонка за user_id упирается в уникальный индекс.
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	cases := []struct {
		name     string
		args     RegisterUserArgs
		wantErr  error
		wantUser *domain.User
	}{
		{name: "customer", args: argsCustomer, wantUser: &createdCustomer},
		{name: "shop owner", args: argsShop, wantUser: &createdShop},
		{name: "duplicate user id", args: argsDuplicate, wantErr: domain.ErrDuplicateKey},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, err := s.userService.Register(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)
			s.Equal(t.wantUser, user)
		})
	}
}

func (s *UserServiceTestSuite) TestLogin() {
	savedPhone := "+79990001122"
	savedUser := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    "C00001",
		Name:      "Иван",
		Role:      domain.RoleCustomer,
		Whatsapp:  savedPhone,
	}

	// Мок сравнения пароля супер-админа.
	s.mockPsswd.EXPECT().ComparePassword(testSuperAdminPassword, testSuperAdminPassHash).Return(true)
	s.mockPsswd.EXPECT().ComparePassword("wrong pass", testSuperAdminPassHash).Return(false)

	// Мок репозитория: обычный юзер ищется по whatsapp, пароль не участвует.
	s.mockUserRepo.EXPECT().
		FindByWhatsapp(gomock.Any(), savedPhone).
		Return(&savedUser, nil)
	s.mockUserRepo.EXPECT().
		FindByWhatsapp(gomock.Any(), "+70000000000").
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name     string
		phone    string
		password string
		wantErr  error
		want     *SessionUser
	}{
		{
			name:     "superadmin ok",
			phone:    config.SuperAdminLogin,
			password: testSuperAdminPassword,
			want:     &SessionUser{UserID: SuperAdminUserID, Name: SuperAdminName, Role: domain.RoleSuperAdmin},
		},
		{
			name:     "superadmin wrong password",
			phone:    config.SuperAdminLogin,
			password: "wrong pass",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "user by phone",
			phone:    savedPhone,
			password: "любой",
			want:     &SessionUser{UserID: savedUser.UserID, Name: savedUser.Name, Role: savedUser.Role},
		},
		{
			name:    "unknown phone",
			phone:   "+70000000000",
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			sessionUser, err := s.userService.Login(s.T().Context(), t.phone, t.password)
			s.Require().ErrorIs(err, t.wantErr)
			s.Equal(t.want, sessionUser)
		})
	}
}

func (s *UserServiceTestSuite) TestUpdate() {
	s.expectDo()

	storedPromo := decimal.NewFromInt(5)
	newPromo := decimal.NewFromFloat(12.5)

	stored := domain.User{
		ID:           2,
		UserID:       "S00001",
		Name:         "Лавка",
		Role:         domain.RoleShopOwner,
		DefaultPromo: storedPromo,
	}

	s.mockUserRepo.EXPECT().
		FindByUserID(gomock.Any(), stored.UserID).
		Return(&stored, nil).Times(2)
	s.mockUserRepo.EXPECT().
		FindByUserID(gomock.Any(), "S99999").
		Return(nil, domain.ErrRecordNotFound)

	// Без нового процента остается сохраненный.
	s.mockUserRepo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Eq(repoargs.UpdateUser{
			UserID:       stored.UserID,
			Name:         "Лавка 2",
			DefaultPromo: storedPromo,
		})).
		Return(&stored, nil)

	// Присланный процент перезаписывает сохраненный.
	s.mockUserRepo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Eq(repoargs.UpdateUser{
			UserID:       stored.UserID,
			Name:         "Лавка 3",
			DefaultPromo: newPromo,
		})).
		Return(&stored, nil)

	cases := []struct {
		name    string
		args    UpdateUserArgs
		wantErr error
	}{
		{
			name: "keeps stored promo",
			args: UpdateUserArgs{UserID: stored.UserID, Name: "Лавка 2"},
		},
		{
			name: "overrides promo",
			args: UpdateUserArgs{UserID: stored.UserID, Name: "Лавка 3", DefaultPromo: &newPromo},
		},
		{
			name:    "missing user",
			args:    UpdateUserArgs{UserID: "S99999", Name: "нет такого"},
			wantErr: domain.ErrRecordNotFound,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, err := s.userService.Update(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)
			if t.wantErr == nil {
				s.NotNil(user)
			}
		})
	}
}

func (s *UserServiceTestSuite) TestDelete() {
	// Удаление идемпотентно: репозиторий не возвращает ошибку для несуществующего user_id.
	s.mockUserRepo.EXPECT().DeleteByUserID(gomock.Any(), "C00001").Return(nil)
	s.mockUserRepo.EXPECT().DeleteByUserID(gomock.Any(), "C99999").Return(nil)

	s.NoError(s.userService.Delete(s.T().Context(), "C00001"))
	s.NoError(s.userService.Delete(s.T().Context(), "C99999"))
}
