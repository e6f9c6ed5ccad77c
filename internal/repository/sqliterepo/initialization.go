package sqliterepo

import (
	"context"
	"database/sql"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite" // регистрирует драйвер database/sql с именем "sqlite"
)

// Connect открывает файл базы данных (создается при отсутствии) и идемпотентно применяет миграции.
func Connect(ctx context.Context, migrationsDir, dbPath string, l *logrus.Logger) (*sql.DB, error) {
	conn, openErr := sql.Open("sqlite", buildDSN(dbPath))
	if openErr != nil {
		return nil, errors.Wrap(openErr, "open sqlite database")
	}

	// sqlite однописательный: не даем database/sql плодить конкурирующие соединения на запись.
	conn.SetMaxOpenConns(1)

	if pingErr := conn.PingContext(ctx); pingErr != nil {
		return nil, errors.Wrap(pingErr, "ping sqlite database")
	}

	l.WithField("database", dbPath).Debug("applying migrations")
	if err := sqliteMigrate(migrationsDir, dbPath); err != nil {
		return nil, err
	}
	return conn, nil
}

func buildDSN(dbPath string) string {
	// _time_format=sqlite нужен чтобы time.Time корректно сканировался обратно из TIMESTAMP колонок.
	return "file:" + dbPath + "?_time_format=sqlite&_pragma=busy_timeout(5000)"
}

func sqliteMigrate(dir string, dbPath string) error {
	m, mErr := migrate.New("file://"+dir, "sqlite://"+dbPath)
	if mErr != nil {
		return errors.Wrap(mErr, "failed to create migrate instance")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to migrate schema")
	}
	return nil
}
