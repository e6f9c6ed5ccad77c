package sqliterepo

import (
	"context"
	"time"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/promo-ledger/pkg/uow"
)

const transactionColumns = `id, created_at, customer_id, shop_id, bill_amount, promotion_amount, transaction_date`

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: conn}
}

func (t *TransactionRepository) CreateTransaction(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	res, err := t.db.ExecContext(ctx, `
		INSERT INTO transactions
			(created_at, customer_id, shop_id, bill_amount, promotion_amount, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), args.CustomerID, args.ShopID, args.BillAmount,
		args.PromotionAmount, args.TransactionDate,
	)
	if err != nil {
		return nil, convertErr(err, "creating transaction for customer %s", args.CustomerID)
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		return nil, convertErr(idErr, "creating transaction for customer %s", args.CustomerID)
	}

	row := t.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	transaction, scanErr := scanTransaction(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating transaction for customer %s", args.CustomerID)
	}
	return transaction, nil
}

// GetByCustomerID возвращает транзакции покупателя. Порядок лексикографический по transaction_date,
// новые даты первыми (как у источника - строка даты не парсится).
func (t *TransactionRepository) GetByCustomerID(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	return t.getByColumn(ctx, "customer_id", customerID)
}

// GetByShopID возвращает транзакции магазина, порядок тот же, что и в GetByCustomerID.
func (t *TransactionRepository) GetByShopID(ctx context.Context, shopID string) ([]domain.Transaction, error) {
	return t.getByColumn(ctx, "shop_id", shopID)
}

func (t *TransactionRepository) getByColumn(ctx context.Context, column, value string) ([]domain.Transaction, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE `+column+` = ? ORDER BY transaction_date DESC`, value)
	if err != nil {
		return nil, convertErr(err, "getting transactions by %s %s", column, value)
	}
	defer rows.Close() //nolint:errcheck

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting transactions by %s %s", column, value)
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting transactions by %s %s", column, value)
	}
	return transactions, nil
}

// GetAll возвращает все транзакции, последние созданные - первыми.
func (t *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id DESC`)
	if err != nil {
		return nil, convertErr(err, "getting all transactions")
	}
	defer rows.Close() //nolint:errcheck

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting all transactions")
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting all transactions")
	}
	return transactions, nil
}

// AggregateByShop группирует транзакции по магазину. Порядок групп не специфицирован.
func (t *TransactionRepository) AggregateByShop(ctx context.Context) ([]repoargs.TransactionAggregate, error) {
	return t.aggregateBy(ctx, "shop_id")
}

// AggregateByCustomer группирует транзакции по покупателю. Порядок групп не специфицирован.
func (t *TransactionRepository) AggregateByCustomer(ctx context.Context) ([]repoargs.TransactionAggregate, error) {
	return t.aggregateBy(ctx, "customer_id")
}

func (t *TransactionRepository) aggregateBy(ctx context.Context, column string) ([]repoargs.TransactionAggregate, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT `+column+`, COUNT(*), SUM(bill_amount), SUM(promotion_amount)
		FROM transactions GROUP BY `+column)
	if err != nil {
		return nil, convertErr(err, "aggregating transactions by %s", column)
	}
	defer rows.Close() //nolint:errcheck

	var aggregates []repoargs.TransactionAggregate
	for rows.Next() {
		var agg repoargs.TransactionAggregate
		if scanErr := rows.Scan(&agg.GroupID, &agg.Count, &agg.BillTotal, &agg.PromotionTotal); scanErr != nil {
			return nil, convertErr(scanErr, "aggregating transactions by %s", column)
		}
		aggregates = append(aggregates, agg)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "aggregating transactions by %s", column)
	}
	return aggregates, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := row.Scan(
		&transaction.ID, &transaction.CreatedAt, &transaction.CustomerID, &transaction.ShopID,
		&transaction.BillAmount, &transaction.PromotionAmount, &transaction.TransactionDate,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &transaction, nil
}
