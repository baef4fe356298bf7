package repository

import (
	"time"

	"driveschool-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Slot        SlotRepository
	Order       OrderRepository
	Cart        CartRepository
	TicketClass TicketClassRepository
	Transaction TransactionRepository
	Idempotency IdempotencyRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, idempotencyTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Slot:        NewSlotRepository(db, log),
		Order:       NewOrderRepository(db, log),
		Cart:        NewCartRepository(db, log),
		TicketClass: NewTicketClassRepository(db, log),
		Transaction: NewTransactionRepository(db, log),
		Idempotency: NewIdempotencyRepository(rdb, idempotencyTTL, log),
	}
}
