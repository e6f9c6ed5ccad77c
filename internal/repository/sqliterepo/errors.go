package sqliterepo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// convertErr преобразует ошибку драйвера к стандартному виду для слоя репозитория.
// Особенности:
//   - sql.ErrNoRows возвращается как domain.ErrRecordNotFound;
//   - нарушение уникальности (user_id) возвращается как domain.ErrDuplicateKey;
//   - все остальные ошибки возвращаются как domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && isUniqueViolationErr(sqliteErr) {
		errType = domain.ErrDuplicateKey
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

func isUniqueViolationErr(err *sqlite.Error) bool {
	return err.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		err.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
