package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type DashboardHandler struct {
	dashboardService   DashboardServicer
	transactionService TransactionServicer
}

func NewDashboardHandler(dashboardService DashboardServicer, transactionService TransactionServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:   dashboardService,
		transactionService: transactionService,
	}
}

type TransactionResponse struct {
	CustomerID      string  `json:"customer_id"`
	ShopID          string  `json:"shop_id"`
	BillAmount      float64 `json:"bill_amount"`
	PromotionAmount float64 `json:"promotion_amount"`
	TransactionDate string  `json:"transaction_date"`
}

func newTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		CustomerID:      transaction.CustomerID,
		ShopID:          transaction.ShopID,
		BillAmount:      transaction.BillAmount.InexactFloat64(),
		PromotionAmount: transaction.PromotionAmount.InexactFloat64(),
		TransactionDate: transaction.TransactionDate,
	}
}

func newTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = newTransactionResponse(&transactions[i])
	}
	return response
}

// Customer GET CustomerDashboardRoute. История покупок текущего покупателя и итоги.
func (h *DashboardHandler) Customer(c *gin.Context) {
	sess := currentSession(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := h.dashboardService.CustomerSummary(ctx, sess.UserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":               sess.UserName,
		"user_type":          sess.UserType,
		"transactions":       newTransactionResponses(summary.Transactions),
		"total_transactions": summary.Count,
		"total_spent":        summary.BillTotal.InexactFloat64(),
		"total_promos":       summary.PromoTotal.InexactFloat64(),
	})
}

// Shop GET ShopDashboardRoute. Продажи текущего магазина, итоги и действующий процент промо.
func (h *DashboardHandler) Shop(c *gin.Context) {
	sess := currentSession(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := h.dashboardService.ShopSummary(ctx, sess.UserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":               sess.UserName,
		"user_type":          sess.UserType,
		"default_promo":      summary.DefaultPromo.InexactFloat64(),
		"transactions":       newTransactionResponses(summary.Transactions),
		"total_transactions": summary.Count,
		"total_sales":        summary.BillTotal.InexactFloat64(),
		"total_promos":       summary.PromoTotal.InexactFloat64(),
	})
}

type RecordTransactionParams struct {
	TransactionDate string `binding:"required" form:"transaction_date" json:"transaction_date"`
	// BillAmount указатель: ноль - допустимая сумма чека, а вот отсутствие поля - ошибка валидации.
	BillAmount    *decimal.Decimal `json:"bill_amount"`
	CustomerPhone string           `binding:"required" form:"customer_phone" json:"customer_phone"`
}

// RecordTransaction POST ShopDashboardRoute. Записывает продажу за покупателем по его
// номеру whatsapp. Промо считается по проценту магазина на момент записи.
func (h *DashboardHandler) RecordTransaction(c *gin.Context) {
	sess := currentSession(c)

	var params RecordTransactionParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	if params.BillAmount == nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
			gin.H{"error": "field bill_amount must not be blank"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, recordErr := h.transactionService.Record(ctx, service.RecordTransactionArgs{
		ShopID:          sess.UserID,
		TransactionDate: params.TransactionDate,
		BillAmount:      *params.BillAmount,
		CustomerPhone:   strings.TrimSpace(params.CustomerPhone),
	})
	if recordErr != nil {
		if errors.Is(recordErr, domain.ErrCustomerNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Customer phone not found."})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, recordErr).SetType(gin.ErrorTypePrivate)
		return
	}

	transaction := result.Transaction
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Transaction added — Promo %s (%s%%) applied to %s.",
			transaction.PromotionAmount.String(), result.DefaultPromo.String(), transaction.CustomerID),
		"transaction": newTransactionResponse(transaction),
	})
}

type AggregateResponse struct {
	GroupID           string  `json:"group_id"`
	TransactionsCount int64   `json:"transactions_count"`
	BillTotal         float64 `json:"bill_total"`
	PromotionTotal    float64 `json:"promotion_total"`
}

// SuperAdmin GET SuperAdminDashboardRoute. Полная картина: юзеры, транзакции и группировки
// по магазинам и покупателям.
func (h *DashboardHandler) SuperAdmin(c *gin.Context) {
	sess := currentSession(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	overview, err := h.dashboardService.Overview(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	users := make([]UserResponse, len(overview.Users))
	for i := range overview.Users {
		users[i] = newUserResponse(&overview.Users[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         sess.UserName,
		"users":        users,
		"transactions": newTransactionResponses(overview.Transactions),
		"shop_stats":   newAggregateResponses(overview.ShopStats),
		"cust_stats":   newAggregateResponses(overview.CustomerStats),
	})
}

func newAggregateResponses(aggregates []repoargs.TransactionAggregate) []AggregateResponse {
	response := make([]AggregateResponse, len(aggregates))
	for i, agg := range aggregates {
		response[i] = AggregateResponse{
			GroupID:           agg.GroupID,
			TransactionsCount: agg.Count,
			BillTotal:         agg.BillTotal.InexactFloat64(),
			PromotionTotal:    agg.PromotionTotal.InexactFloat64(),
		}
	}
	return response
}
