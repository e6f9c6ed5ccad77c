package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/service"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/middlewares"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type AuthHandler struct {
	userService   UserServicer
	sessionSecret []byte
}

func NewAuthHandler(userService UserServicer, sessionSecret []byte) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		sessionSecret: sessionSecret,
	}
}

// Landing GET IndexRoute.
func (h *AuthHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "promo-ledger",
		"status":  "ok",
	})
}

// NewRegistration GET RegisterRoute. Отдает данные для формы регистрации.
func (h *AuthHandler) NewRegistration(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_types": []domain.Role{domain.RoleCustomer, domain.RoleShopOwner},
	})
}

type RegisterParams struct {
	Name     string `binding:"required" form:"name"     json:"name"`
	Email    string `form:"email"       json:"email"`
	City     string `binding:"required" form:"city"     json:"city"`
	Address  string `binding:"required" form:"address"  json:"address"`
	Whatsapp string `binding:"required" form:"whatsapp" json:"whatsapp"`
	UserType string `binding:"required" form:"user_type" json:"user_type"`
	// банковские реквизиты заполняют покупатели
	BankName    string `form:"bank_name"    json:"bank_name"`
	BankAccount string `form:"bank_account" json:"bank_account"`
	// процент промо заполняют магазины
	DefaultPromo decimal.Decimal `json:"default_promo"`
}

// Register POST RegisterRoute. Создает юзера и выделяет публичный идентификатор.
func (h *AuthHandler) Register(c *gin.Context) {
	var params RegisterParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	if blank := firstBlankField([]requiredField{
		{"name", params.Name},
		{"city", params.City},
		{"address", params.Address},
		{"whatsapp", params.Whatsapp},
		{"user_type", params.UserType},
	}); blank != "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
			gin.H{"error": fmt.Sprintf("field %s must not be blank", blank)})
		return
	}

	role, roleErr := domain.ParseUserRole(params.UserType)
	if roleErr != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
			gin.H{"error": "user_type must be customer or shop owner"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, createErr := h.userService.Register(ctx, service.RegisterUserArgs{
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.TrimSpace(params.Email),
		City:         strings.TrimSpace(params.City),
		Address:      strings.TrimSpace(params.Address),
		Whatsapp:     strings.TrimSpace(params.Whatsapp),
		Role:         role,
		BankName:     strings.TrimSpace(params.BankName),
		BankAccount:  strings.TrimSpace(params.BankAccount),
		DefaultPromo: params.DefaultPromo,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("user id already taken, please retry")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Registered successfully — User ID: %s", user.UserID),
		"user":    newUserResponse(user),
	})
}

// NewSession GET LoginRoute.
func (h *AuthHandler) NewSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "sign in with your whatsapp number"})
}

type LoginParams struct {
	Phone    string `binding:"required" form:"phone"    json:"phone"`
	Password string `form:"password"    json:"password"`
}

// Login POST LoginRoute. Супер-админ аутентифицируется фиксированной парой, остальные -
// одним номером whatsapp. Успех кладет подписанную сессию в куку и сообщает дашборд роли.
func (h *AuthHandler) Login(c *gin.Context) {
	var params LoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	sess, loginErr := h.userService.Login(ctx, strings.TrimSpace(params.Phone), params.Password)
	if loginErr != nil {
		if errors.Is(loginErr, domain.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, loginErr).SetType(gin.ErrorTypePrivate)
		return
	}

	token, tokenErr := tokens.GenerateSessionJWT(sess.UserID, sess.Name, string(sess.Role), h.sessionSecret)
	if tokenErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, tokenErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.SetCookie(middlewares.SessionCookieName, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user_id":   sess.UserID,
		"user_name": sess.Name,
		"user_type": sess.Role,
		"redirect":  sess.Role.DashboardPath(),
	})
}

// Logout GET LogoutRoute. Стирает сессионную куку.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
