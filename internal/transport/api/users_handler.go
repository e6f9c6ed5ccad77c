package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type UsersHandler struct {
	userService UserServicer
}

func NewUsersHandler(userService UserServicer) *UsersHandler {
	return &UsersHandler{
		userService: userService,
	}
}

type UserResponse struct {
	ID           int64       `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	UserID       string      `json:"user_id"`
	Name         string      `json:"name"`
	UserType     domain.Role `json:"user_type"`
	City         string      `json:"city"`
	Address      string      `json:"address"`
	BankName     string      `json:"bank_name"`
	BankAccount  string      `json:"bank_account"`
	Email        string      `json:"email"`
	Whatsapp     string      `json:"whatsapp"`
	DefaultPromo float64     `json:"default_promo"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		UserID:       user.UserID,
		Name:         user.Name,
		UserType:     user.Role,
		City:         user.City,
		Address:      user.Address,
		BankName:     user.BankName,
		BankAccount:  user.BankAccount,
		Email:        user.Email,
		Whatsapp:     user.Whatsapp,
		DefaultPromo: user.DefaultPromo.InexactFloat64(),
	}
}

// Index GET UsersRoute. Все юзеры, последние созданные первыми.
func (h *UsersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": response})
}

// Show GET EditRoute. Данные юзера для формы редактирования. Отсутствие записи - мягкий
// отказ с редиректом на список.
func (h *UsersHandler) Show(c *gin.Context) {
	userID := c.Param("user_id")

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.Redirect(http.StatusFound, UsersRoute)
			c.Abort()
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

type UpdateUserParams struct {
	Name        string `binding:"required" form:"name" json:"name"`
	City        string `form:"city"         json:"city"`
	Address     string `form:"address"      json:"address"`
	BankName    string `form:"bank_name"    json:"bank_name"`
	BankAccount string `form:"bank_account" json:"bank_account"`
	Email       string `form:"email"        json:"email"`
	Whatsapp    string `form:"whatsapp"     json:"whatsapp"`
	// DefaultPromo не прислан - остается сохраненное значение.
	DefaultPromo *decimal.Decimal `json:"default_promo"`
}

// Update POST EditRoute. Перезаписывает мутабельные поля; user_id и user_type неизменяемы.
func (h *UsersHandler) Update(c *gin.Context) {
	userID := c.Param("user_id")

	var params UpdateUserParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	if blank := firstBlankField([]requiredField{{"name", params.Name}}); blank != "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
			gin.H{"error": fmt.Sprintf("field %s must not be blank", blank)})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, updErr := h.userService.Update(ctx, service.UpdateUserArgs{
		UserID:       userID,
		Name:         strings.TrimSpace(params.Name),
		City:         strings.TrimSpace(params.City),
		Address:      strings.TrimSpace(params.Address),
		BankName:     params.BankName,
		BankAccount:  params.BankAccount,
		Email:        params.Email,
		Whatsapp:     params.Whatsapp,
		DefaultPromo: params.DefaultPromo,
	})
	if updErr != nil {
		if errors.Is(updErr, domain.ErrRecordNotFound) {
			c.Redirect(http.StatusFound, UsersRoute)
			c.Abort()
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, updErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully.",
		"user":    newUserResponse(user),
	})
}

// Delete GET DeleteRoute. Идемпотентен: несуществующий user_id тоже отвечает успехом.
func (h *UsersHandler) Delete(c *gin.Context) {
	userID := c.Param("user_id")

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.Delete(ctx, userID); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
