package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/logger"
	"github.com/fsdevblog/promo-ledger/internal/service"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/middlewares"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/mocks"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
	sessionSecret   []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.sessionSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		UserService:   s.mockUserService,
		SessionSecret: s.sessionSecret,
	})
}

func (s *AuthHandlerTestSuite) TestLanding() {
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    IndexRoute,
	})
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *AuthHandlerTestSuite) TestRegister() {
	validPayload := map[string]any{
		"name":         gofakeit.Name(),
		"email":        gofakeit.Email(),
		"city":         gofakeit.City(),
		"address":      gofakeit.Street(),
		"whatsapp":     gofakeit.Phone(),
		"user_type":    "customer",
		"bank_name":    "T-Bank",
		"bank_account": "40817810",
	}
	blankPayload := map[string]any{
		"name":      "   ",
		"city":      gofakeit.City(),
		"address":   gofakeit.Street(),
		"whatsapp":  gofakeit.Phone(),
		"user_type": "customer",
	}
	unknownRolePayload := map[string]any{
		"name":      gofakeit.Name(),
		"city":      gofakeit.City(),
		"address":   gofakeit.Street(),
		"whatsapp":  gofakeit.Phone(),
		"user_type": "manager",
	}
	duplicatePayload := map[string]any{
		"name":      gofakeit.Name(),
		"city":      gofakeit.City(),
		"address":   gofakeit.Street(),
		"whatsapp":  gofakeit.Phone(),
		"user_type": "shop owner",
	}

	createdUser := domain.User{
		ID:     1,
		UserID: "C00001",
		Name:   validPayload["name"].(string), //nolint:errcheck
		Role:   domain.RoleCustomer,
	}

	// Моки
	// Валидная регистрация.
	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(&createdUser, nil)
	// Гонка за user_id.
	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("registering user: %w", domain.ErrDuplicateKey))

	cases := []struct {
		name        string
		payload     any
		rawBody     string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "customer ok",
			payload:     validPayload,
			wantStatus:  http.StatusCreated,
			wantMessage: "Registered successfully — User ID: C00001",
		},
		{
			name:       "duplicate user id",
			payload:    duplicatePayload,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing required field",
			payload:    map[string]any{"name": gofakeit.Name()},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "blank after trim",
			payload:    blankPayload,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown user type",
			payload:    unknownRolePayload,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed json",
			rawBody:    "{not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RegisterRoute,
			}

			var res *http.Response
			var err error
			if t.rawBody != "" {
				args.Body = strings.NewReader(t.rawBody)
				res, err = testutils.MakeRequest(args, testutils.WithHeader("Content-Type", "application/json"))
			} else {
				res, err = testutils.MakeJSONRequest(args, t.payload)
			}
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantMessage != "" {
				var body map[string]any
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
				s.Equal(t.wantMessage, body["message"])
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	customerPhone := gofakeit.Phone()
	customerSession := service.SessionUser{
		UserID: "C00001",
		Name:   gofakeit.Name(),
		Role:   domain.RoleCustomer,
	}
	superAdminSession := service.SessionUser{
		UserID: service.SuperAdminUserID,
		Name:   service.SuperAdminName,
		Role:   domain.RoleSuperAdmin,
	}

	// Моки
	s.mockUserService.EXPECT().
		Login(gomock.Any(), customerPhone, "").
		Return(&customerSession, nil)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), "suadmin", "suadmin654321").
		Return(&superAdminSession, nil)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), "+70000000000", "").
		Return(nil, domain.ErrInvalidCredentials)

	cases := []struct {
		name         string
		payload      map[string]any
		wantStatus   int
		wantRedirect string
		wantCookie   bool
	}{
		{
			name:         "customer by phone",
			payload:      map[string]any{"phone": customerPhone},
			wantStatus:   http.StatusOK,
			wantRedirect: "/customer_dashboard",
			wantCookie:   true,
		},
		{
			name:         "superadmin",
			payload:      map[string]any{"phone": "suadmin", "password": "suadmin654321"},
			wantStatus:   http.StatusOK,
			wantRedirect: "/superadmin_dashboard",
			wantCookie:   true,
		},
		{
			name:       "unknown phone",
			payload:    map[string]any{"phone": "+70000000000"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing phone",
			payload:    map[string]any{"password": "whatever"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeJSONRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    LoginRoute,
			}, t.payload)
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantCookie {
				var sessionCookie *http.Cookie
				for _, cookie := range res.Cookies() {
					if cookie.Name == middlewares.SessionCookieName {
						sessionCookie = cookie
					}
				}
				s.Require().NotNil(sessionCookie)
				s.NotEmpty(sessionCookie.Value)
			}

			if t.wantRedirect != "" {
				var body map[string]any
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
				s.Equal(t.wantRedirect, body["redirect"])
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogout() {
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    LogoutRoute,
	})
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Equal(http.StatusOK, res.StatusCode)

	// Кука сессии стирается отрицательным MaxAge.
	var sessionCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == middlewares.SessionCookieName {
			sessionCookie = cookie
		}
	}
	s.Require().NotNil(sessionCookie)
	s.Empty(sessionCookie.Value)
	s.Negative(sessionCookie.MaxAge)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Equal("Logged out.", body["message"])
}
