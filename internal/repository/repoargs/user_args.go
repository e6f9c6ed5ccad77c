package repoargs

import "github.com/shopspring/decimal"

// CreateUser аргументы вставки юзера. UserType хранится строкой каноничной формы
// (см. domain.ParseUserRole), чтобы пакет не зависел от domain.
type CreateUser struct {
	UserID       string
	Name         string
	UserType     string
	City         string
	Address      string
	BankName     string
	BankAccount  string
	Email        string
	Whatsapp     string
	DefaultPromo decimal.Decimal
}

// UpdateUser мутабельные поля юзера. user_id и user_type после создания не меняются.
type UpdateUser struct {
	UserID       string
	Name         string
	City         string
	Address      string
	BankName     string
	BankAccount  string
	Email        string
	Whatsapp     string
	DefaultPromo decimal.Decimal
}
