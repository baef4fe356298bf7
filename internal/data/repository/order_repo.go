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

type OrderRepository interface {
	// CreateWithDetails persists the order together with its items and
	// appointments in one transaction.
	CreateWithDetails(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindPendingByUserAndType(ctx context.Context, userID uuid.UUID, orderType entity.OrderType) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderPaymentStatus) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) CreateWithDetails(ctx context.Context, order *entity.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, order_number, user_id, order_type, total, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.OrderType,
		order.Total,
		order.PaymentStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, class_type, description, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range order.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID,
			order.ID,
			item.ClassType,
			item.Description,
			item.Price,
			item.Quantity,
			item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create order item for %s: %w", order.OrderNumber, err)
		}
	}

	apptQuery := `
		INSERT INTO appointments (id, order_id, slot_id, ticket_class_id, class_id, instructor_id, "date", "start", "end", class_type, student_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, appt := range order.Appointments {
		_, err = tx.Exec(ctx, apptQuery,
			appt.ID,
			order.ID,
			appt.SlotID,
			appt.TicketClassID,
			appt.ClassID,
			appt.InstructorID,
			appt.Date,
			appt.Start,
			appt.End,
			appt.ClassType,
			appt.StudentID,
			appt.Amount,
			appt.Status,
			appt.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create appointment for %s: %w", order.OrderNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, order_number, user_id, order_type, total, payment_status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.OrderType,
		&order.Total,
		&order.PaymentStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	appointments, err := r.loadAppointments(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Appointments = appointments

	return &order, nil
}

func (r *orderRepository) FindPendingByUserAndType(ctx context.Context, userID uuid.UUID, orderType entity.OrderType) (*entity.Order, error) {
	query := `
		SELECT id, order_number, user_id, order_type, total, payment_status, created_at, updated_at
		FROM orders
		WHERE user_id = $1 AND order_type = $2 AND payment_status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, userID, orderType).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.OrderType,
		&order.Total,
		&order.PaymentStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending order",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("order_type", string(orderType)),
		)
		return nil, fmt.Errorf("find pending order for user %s type %s: %w", userID.String(), string(orderType), err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	appointments, err := r.loadAppointments(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Appointments = appointments

	return &order, nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderPaymentStatus) error {
	query := `UPDATE orders SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, orderID, status)
	if err != nil {
		r.log.Error("Failed to update order payment status",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order %s payment status to %s: %w", orderID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID.String())
	}

	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, class_type, description, price, quantity, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ClassType,
			&item.Description,
			&item.Price,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *orderRepository) loadAppointments(ctx context.Context, orderID uuid.UUID) ([]entity.Appointment, error) {
	query := `
		SELECT id, order_id, slot_id, ticket_class_id, class_id, instructor_id, "date", "start", "end", class_type, student_id, amount, status, created_at
		FROM appointments
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load appointments for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var appointments []entity.Appointment
	for rows.Next() {
		var appt entity.Appointment
		err := rows.Scan(
			&appt.ID,
			&appt.OrderID,
			&appt.SlotID,
			&appt.TicketClassID,
			&appt.ClassID,
			&appt.InstructorID,
			&appt.Date,
			&appt.Start,
			&appt.End,
			&appt.ClassType,
			&appt.StudentID,
			&appt.Amount,
			&appt.Status,
			&appt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, appt)
	}

	return appointments, nil
}
