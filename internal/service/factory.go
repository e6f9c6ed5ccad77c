package service

import (
	"fmt"

	"github.com/fsdevblog/promo-ledger/internal/service/psswd"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

type AppServices struct {
	UserService        *UserService
	TransactionService *TransactionService
	DashboardService   *DashboardService
}

func Factory(unitOfWork uow.UOW, superAdminPassword string) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, psswd.PasswordHash(""), superAdminPassword)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	transactionService, transactionServiceErr := NewTransactionService(unitOfWork)
	if transactionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transactionServiceErr.Error())
	}

	dashboardService, dashboardServiceErr := NewDashboardService(unitOfWork)
	if dashboardServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", dashboardServiceErr.Error())
	}

	return &AppServices{
		UserService:        userService,
		TransactionService: transactionService,
		DashboardService:   dashboardService,
	}, nil
}
