package repository

import (
	"context"
	"fmt"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	AddItem(ctx context.Context, item *entity.CartItem) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT id, user_id, class_type, slot_id, slot_ids, ticket_class_id, class_id, instructor_id, "date", "start", "end", price, amount, quantity, package_name, created_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart items",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find cart items for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ClassType,
			&item.SlotID,
			&item.SlotIDs,
			&item.TicketClassID,
			&item.ClassID,
			&item.InstructorID,
			&item.Date,
			&item.Start,
			&item.End,
			&item.Price,
			&item.Amount,
			&item.Quantity,
			&item.PackageName,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, class_type, slot_id, slot_ids, ticket_class_id, class_id, instructor_id, "date", "start", "end", price, amount, quantity, package_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ClassType,
		item.SlotID,
		item.SlotIDs,
		item.TicketClassID,
		item.ClassID,
		item.InstructorID,
		item.Date,
		item.Start,
		item.End,
		item.Price,
		item.Amount,
		item.Quantity,
		item.PackageName,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("class_type", string(item.ClassType)),
		)
		return fmt.Errorf("add cart item for user %s: %w", item.UserID.String(), err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("clear cart for user %s: %w", userID.String(), err)
	}

	return nil
}
