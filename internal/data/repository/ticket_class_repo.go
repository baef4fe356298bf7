package repository

import (
	"context"
	"fmt"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketClassRepository interface {
	// UpdateEnrollment upserts one student's standing on a group class.
	// Settlement confirms through it; the revert path cancels through it.
	UpdateEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID, classID *uuid.UUID, status entity.EnrollmentStatus, paid bool, paymentID *string) error
	FindEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID) (*entity.TicketClassEnrollment, error)
}

type ticketClassRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketClassRepository(db database.PgxIface, log *zap.Logger) TicketClassRepository {
	return &ticketClassRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket_class")),
	}
}

func (r *ticketClassRepository) UpdateEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID, classID *uuid.UUID, status entity.EnrollmentStatus, paid bool, paymentID *string) error {
	query := `
		INSERT INTO ticket_class_enrollments (id, ticket_class_id, student_id, class_id, status, paid, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ticket_class_id, student_id)
		DO UPDATE SET class_id = EXCLUDED.class_id, status = EXCLUDED.status, paid = EXCLUDED.paid, payment_id = EXCLUDED.payment_id
	`

	_, err := r.db.Exec(ctx, query,
		uuid.New(),
		ticketClassID,
		studentID,
		classID,
		status,
		paid,
		paymentID,
		time.Now(),
	)

	if err != nil {
		r.log.Error("Failed to update ticket class enrollment",
			zap.Error(err),
			zap.String("ticket_class_id", ticketClassID.String()),
			zap.String("student_id", studentID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update enrollment for class %s student %s: %w", ticketClassID.String(), studentID.String(), err)
	}

	return nil
}

func (r *ticketClassRepository) FindEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID) (*entity.TicketClassEnrollment, error) {
	query := `
		SELECT id, ticket_class_id, student_id, class_id, status, paid, payment_id, created_at
		FROM ticket_class_enrollments
		WHERE ticket_class_id = $1 AND student_id = $2
	`

	var enrollment entity.TicketClassEnrollment
	err := r.db.QueryRow(ctx, query, ticketClassID, studentID).Scan(
		&enrollment.ID,
		&enrollment.TicketClassID,
		&enrollment.StudentID,
		&enrollment.ClassID,
		&enrollment.Status,
		&enrollment.Paid,
		&enrollment.PaymentID,
		&enrollment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find enrollment",
			zap.Error(err),
			zap.String("ticket_class_id", ticketClassID.String()),
			zap.String("student_id", studentID.String()),
		)
		return nil, fmt.Errorf("find enrollment for class %s student %s: %w", ticketClassID.String(), studentID.String(), err)
	}

	return &enrollment, nil
}
