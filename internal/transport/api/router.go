package api

import (
	"time"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	IndexRoute               = "/"
	RegisterRoute            = "/register"
	LoginRoute               = "/login"
	LogoutRoute              = "/logout"
	UsersRoute               = "/users"
	EditRoute                = "/edit/:user_id"
	DeleteRoute              = "/delete/:user_id"
	CustomerDashboardRoute   = "/customer_dashboard"
	ShopDashboardRoute       = "/shop_dashboard"
	SuperAdminDashboardRoute = "/superadmin_dashboard"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	TransactionService TransactionServicer
	DashboardService   DashboardServicer
	SessionSecret      []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService, args.SessionSecret)
	usersHandler := NewUsersHandler(args.UserService)
	dashboardHandler := NewDashboardHandler(args.DashboardService, args.TransactionService)

	r.GET(IndexRoute, authHandler.Landing)
	r.GET(RegisterRoute, authHandler.NewRegistration)
	r.POST(RegisterRoute, authHandler.Register)
	r.GET(LoginRoute, authHandler.NewSession)
	r.POST(LoginRoute, authHandler.Login)
	r.GET(LogoutRoute, authHandler.Logout)

	// каждая чувствительная группа закрыта точным совпадением роли в сессии
	superAdminOnly := middlewares.RoleRequired(args.SessionSecret, domain.RoleSuperAdmin)
	r.GET(UsersRoute, superAdminOnly, usersHandler.Index)
	r.GET(EditRoute, superAdminOnly, usersHandler.Show)
	r.POST(EditRoute, superAdminOnly, usersHandler.Update)
	r.GET(DeleteRoute, superAdminOnly, usersHandler.Delete)
	r.GET(SuperAdminDashboardRoute, superAdminOnly, dashboardHandler.SuperAdmin)

	customerOnly := middlewares.RoleRequired(args.SessionSecret, domain.RoleCustomer)
	r.GET(CustomerDashboardRoute, customerOnly, dashboardHandler.Customer)

	shopOwnerOnly := middlewares.RoleRequired(args.SessionSecret, domain.RoleShopOwner)
	r.GET(ShopDashboardRoute, shopOwnerOnly, dashboardHandler.Shop)
	r.POST(ShopDashboardRoute, shopOwnerOnly, dashboardHandler.RecordTransaction)

	return r
}
