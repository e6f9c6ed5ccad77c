package app

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/promo-ledger/internal/config"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/internal/repository/sqliterepo"
	"github.com/fsdevblog/promo-ledger/internal/service"
	"github.com/fsdevblog/promo-ledger/internal/transport/api"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
	"github.com/sirupsen/logrus"

	// driver for migration applying sqlite.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %+v", a.Config)
	conn, connErr := sqliterepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabasePath, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer func() {
		_ = conn.Close()
	}()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, a.Config.SuperAdminPassword)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:             a.Logger,
		UserService:        services.UserService,
		TransactionService: services.TransactionService,
		DashboardService:   services.DashboardService,
		SessionSecret:      []byte(a.Config.SessionSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *sql.DB) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqliterepo.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// transaction repo
	transactionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return sqliterepo.NewTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.TransactionRepoName),
		transactionRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
