package repository

import (
	"context"
	"fmt"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.PaymentTransaction) error
	FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, order_id, transaction_id, decision, raw_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.OrderID,
		txn.TransactionID,
		txn.Decision,
		txn.RawResult,
		txn.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment transaction",
			zap.Error(err),
			zap.String("order_id", txn.OrderID.String()),
			zap.String("transaction_id", txn.TransactionID),
		)
		return fmt.Errorf("create payment transaction %s: %w", txn.TransactionID, err)
	}

	return nil
}

func (r *transactionRepository) FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error) {
	query := `
		SELECT id, order_id, transaction_id, decision, raw_result, created_at
		FROM payment_transactions
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var txn entity.PaymentTransaction
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&txn.ID,
		&txn.OrderID,
		&txn.TransactionID,
		&txn.Decision,
		&txn.RawResult,
		&txn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest transaction",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find latest transaction for order %s: %w", orderID.String(), err)
	}

	return &txn, nil
}
