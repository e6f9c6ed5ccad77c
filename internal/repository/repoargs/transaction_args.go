package repoargs

import "github.com/shopspring/decimal"

type CreateTransaction struct {
	CustomerID      string
	ShopID          string
	BillAmount      decimal.Decimal
	PromotionAmount decimal.Decimal
	TransactionDate string
}

// TransactionAggregate строка группировки для админского дашборда: GroupID содержит
// shop_id либо customer_id в зависимости от запроса.
type TransactionAggregate struct {
	GroupID        string
	Count          int64
	BillTotal      decimal.Decimal
	PromotionTotal decimal.Decimal
}
