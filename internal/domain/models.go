package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	// UserID публичный идентификатор вида C00001/S00001. Неизменяем после регистрации.
	UserID       string
	Name         string
	Role         Role
	City         string
	Address      string
	BankName     string
	BankAccount  string
	Email        string
	Whatsapp     string
	DefaultPromo decimal.Decimal
}

type Transaction struct {
	ID        int64
	CreatedAt time.Time
	// CustomerID и ShopID ссылаются на users.user_id без ограничения внешнего ключа:
	// после удаления юзера транзакции остаются с повисшими ссылками.
	CustomerID      string
	ShopID          string
	BillAmount      decimal.Decimal
	PromotionAmount decimal.Decimal
	// TransactionDate строка в том виде, в котором её прислал магазин. Сортировка по ней лексикографическая.
	TransactionDate string
}
