package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/promo-ledger/internal/config"
	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

// SuperAdminUserID и SuperAdminName попадают в сессию супер-админа. Записи в users для него нет.
const (
	SuperAdminUserID = "SUPERADMIN"
	SuperAdminName   = "Super Admin"
)

// userIDSequenceWidth ширина числовой части публичного идентификатора (C00001).
const userIDSequenceWidth = 5

type UserService struct {
	uow                uow.UOW
	userRepo           UserRepository
	hasher             PasswordHasher
	superAdminPassHash string
}

func NewUserService(u uow.UOW, hasher PasswordHasher, superAdminPassword string) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}

	// пароль супер-админа сравнивается через bcrypt, литерал из конфига дальше не живет
	passHash, hashErr := hasher.HashPassword(superAdminPassword)
	if hashErr != nil {
		return nil, fmt.Errorf("user service: %s", hashErr.Error())
	}

	return &UserService{
		uow:                u,
		userRepo:           userRepo,
		hasher:             hasher,
		superAdminPassHash: passHash,
	}, nil
}

type RegisterUserArgs struct {
	Name         string
	Email        string
	City         string
	Address      string
	Whatsapp     string
	Role         domain.Role
	BankName     string
	BankAccount  string
	DefaultPromo decimal.Decimal
}

// Register создает юзера: внутри одной транзакции считает существующих юзеров той же роли,
// выделяет следующий публичный идентификатор и вставляет запись. Уникальный индекс user_id
// превращает гонку двух одновременных регистраций в domain.ErrDuplicateKey вместо второй
// строки с тем же идентификатором.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, error) {
	createArgs := repoargs.CreateUser{
		Name:     args.Name,
		UserType: string(args.Role),
		City:     args.City,
		Address:  args.Address,
		Email:    args.Email,
		Whatsapp: args.Whatsapp,
	}
	// банковские реквизиты только у покупателей, процент промо только у магазинов
	if args.Role == domain.RoleCustomer {
		createArgs.BankName = args.BankName
		createArgs.BankAccount = args.BankAccount
		createArgs.DefaultPromo = decimal.Zero
	} else {
		createArgs.DefaultPromo = args.DefaultPromo
	}

	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		userID, allocErr := allocateUserID(c, userRepo, args.Role)
		if allocErr != nil {
			return allocErr
		}
		createArgs.UserID = userID

		var createErr error
		user, createErr = userRepo.CreateUser(c, createArgs)
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("registering user: %w", txErr)
	}
	return user, nil
}

// allocateUserID выделяет следующий публичный идентификатор: количество юзеров роли + 1,
// с префиксом роли и нулями до пяти знаков. Номера не гарантированно без дыр: после
// удалений счетчик может выдать уже занятый номер (см. Register).
func allocateUserID(ctx context.Context, repo UserRepository, role domain.Role) (string, error) {
	count, countErr := repo.CountByRole(ctx, role)
	if countErr != nil {
		return "", countErr //nolint:wrapcheck
	}
	return fmt.Sprintf("%s%0*d", role.Prefix(), userIDSequenceWidth, count+1), nil
}

// SessionUser данные, попадающие в сессию после логина.
type SessionUser struct {
	UserID string
	Name   string
	Role   domain.Role
}

// Login аутентифицирует по паре телефон/пароль. Пара suadmin + настроенный секрет дает
// сессию супер-админа независимо от содержимого базы. Для остальных телефон ищется по
// whatsapp, пароль не проверяется - так себя ведет источник, поведение сохранено намеренно.
// Промах возвращает domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, phone, password string) (*SessionUser, error) {
	if phone == config.SuperAdminLogin {
		if s.hasher.ComparePassword(password, s.superAdminPassHash) {
			return &SessionUser{
				UserID: SuperAdminUserID,
				Name:   SuperAdminName,
				Role:   domain.RoleSuperAdmin,
			}, nil
		}
		return nil, domain.ErrInvalidCredentials
	}

	user, findErr := s.userRepo.FindByWhatsapp(ctx, phone)
	if findErr != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &SessionUser{
		UserID: user.UserID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}

func (s *UserService) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

type UpdateUserArgs struct {
	UserID      string
	Name        string
	City        string
	Address     string
	BankName    string
	BankAccount string
	Email       string
	Whatsapp    string
	// DefaultPromo nil означает "поле не прислано": остается сохраненное значение.
	DefaultPromo *decimal.Decimal
}

// Update перезаписывает мутабельные поля юзера. user_id и user_type неизменяемы.
// Загрузка и перезапись идут в одной транзакции.
func (s *UserService) Update(ctx context.Context, args UpdateUserArgs) (*domain.User, error) {
	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		stored, findErr := userRepo.FindByUserID(c, args.UserID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		promo := stored.DefaultPromo
		if args.DefaultPromo != nil {
			promo = *args.DefaultPromo
		}

		var updErr error
		user, updErr = userRepo.UpdateUser(c, repoargs.UpdateUser{
			UserID:       args.UserID,
			Name:         args.Name,
			City:         args.City,
			Address:      args.Address,
			BankName:     args.BankName,
			BankAccount:  args.BankAccount,
			Email:        args.Email,
			Whatsapp:     args.Whatsapp,
			DefaultPromo: promo,
		})
		return updErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("updating user %s: %w", args.UserID, txErr)
	}
	return user, nil
}

// Delete удаляет юзера по публичному идентификатору. Идемпотентен: удаление несуществующего
// user_id успешно и ничего не меняет.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}
	return nil
}
