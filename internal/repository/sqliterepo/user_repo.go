package sqliterepo

import (
	"context"
	"time"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

const userColumns = `id, created_at, updated_at, user_id, name, user_type, city, address,
	bank_name, bank_account, email, whatsapp, default_promo`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{db: conn}
}

// CreateUser создает юзера. При конфликте user_id возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	now := time.Now().UTC()
	res, err := u.db.ExecContext(ctx, `
		INSERT INTO users
			(created_at, updated_at, user_id, name, user_type, city, address,
			 bank_name, bank_account, email, whatsapp, default_promo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		now, now, user.UserID, user.Name, user.UserType, user.City, user.Address,
		user.BankName, user.BankAccount, user.Email, user.Whatsapp, user.DefaultPromo,
	)
	if err != nil {
		return nil, convertErr(err, "creating user %s", user.UserID)
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		return nil, convertErr(idErr, "creating user %s", user.UserID)
	}
	return u.FindByID(ctx, id)
}

func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return user, nil
}

// FindByUserID ищет юзера по публичному идентификатору. Возвращает domain.ErrRecordNotFound
// если запись не найдена.
func (u *UserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by user_id %s", userID)
	}
	return user, nil
}

// FindByWhatsapp ищет юзера по номеру whatsapp. Уникальность номера не гарантируется,
// при дубликатах возвращается запись с минимальным id (как у источника - первая найденная).
func (u *UserRepository) FindByWhatsapp(ctx context.Context, whatsapp string) (*domain.User, error) {
	row := u.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE whatsapp = ? ORDER BY id LIMIT 1`, whatsapp)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by whatsapp %s", whatsapp)
	}
	return user, nil
}

// FindCustomerByWhatsapp ищет покупателя по номеру whatsapp. user_type сравнивается точно:
// в базе роль всегда в каноничной форме.
func (u *UserRepository) FindCustomerByWhatsapp(ctx context.Context, whatsapp string) (*domain.User, error) {
	row := u.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE whatsapp = ? AND user_type = ? ORDER BY id LIMIT 1`,
		whatsapp, string(domain.RoleCustomer))
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding customer by whatsapp %s", whatsapp)
	}
	return user, nil
}

func (u *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := u.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE user_type = ?`, string(role)).Scan(&count)
	if err != nil {
		return 0, convertErr(err, "counting users of type %s", role)
	}
	return count, nil
}

// GetAll возвращает всех юзеров, последние созданные - первыми.
func (u *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id DESC`)
	if err != nil {
		return nil, convertErr(err, "getting all users")
	}
	defer rows.Close() //nolint:errcheck

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting all users")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting all users")
	}
	return users, nil
}

// UpdateUser перезаписывает мутабельные поля. user_id, user_type и суррогатный id не меняются.
func (u *UserRepository) UpdateUser(ctx context.Context, args repoargs.UpdateUser) (*domain.User, error) {
	_, err := u.db.ExecContext(ctx, `
		UPDATE users
		SET updated_at = ?, name = ?, city = ?, address = ?, bank_name = ?,
			bank_account = ?, email = ?, whatsapp = ?, default_promo = ?
		WHERE user_id = ?`,
		time.Now().UTC(), args.Name, args.City, args.Address, args.BankName,
		args.BankAccount, args.Email, args.Whatsapp, args.DefaultPromo, args.UserID,
	)
	if err != nil {
		return nil, convertErr(err, "updating user %s", args.UserID)
	}
	return u.FindByUserID(ctx, args.UserID)
}

// DeleteByUserID удаляет юзера по публичному идентификатору. Отсутствие записи ошибкой не считается.
// Каскада нет: транзакции удаленного юзера остаются с повисшими ссылками.
func (u *UserRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return convertErr(err, "deleting user %s", userID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var userType string
	if err := row.Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.UserID, &user.Name, &userType,
		&user.City, &user.Address, &user.BankName, &user.BankAccount, &user.Email,
		&user.Whatsapp, &user.DefaultPromo,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	user.Role = domain.Role(userType)
	return &user, nil
}
