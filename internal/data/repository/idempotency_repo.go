package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// IdempotencyRepository records which gateway transaction ids have
// already been settled, so re-delivery of a payment result (page
// refresh, duplicate webhook) is detected without in-memory state.
type IdempotencyRepository interface {
	// MarkProcessed returns true if this transaction id was seen for
	// the first time.
	MarkProcessed(ctx context.Context, transactionID string) (bool, error)

	// Release gives a claimed transaction id back, so a settlement that
	// could not reach a terminal outcome can be re-delivered.
	Release(ctx context.Context, transactionID string) error
}

type idempotencyRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewIdempotencyRepository(rdb *redis.Client, ttl time.Duration, log *zap.Logger) IdempotencyRepository {
	return &idempotencyRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "idempotency")),
	}
}

func (r *idempotencyRepository) MarkProcessed(ctx context.Context, transactionID string) (bool, error) {
	key := "settlement:txn:" + transactionID

	first, err := r.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		r.log.Error("Failed to record processed transaction",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return false, fmt.Errorf("mark transaction %s processed: %w", transactionID, err)
	}

	return first, nil
}

func (r *idempotencyRepository) Release(ctx context.Context, transactionID string) error {
	key := "settlement:txn:" + transactionID

	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.log.Error("Failed to release transaction claim",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return fmt.Errorf("release transaction %s: %w", transactionID, err)
	}

	return nil
}
