package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/pkg/database"
	"driveschool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindByInstructorAndDate(ctx context.Context, instructorID uuid.UUID, date string) ([]*entity.Slot, error)

	// Transition atomically moves a slot from one of the allowed
	// statuses to the target status. A transition attempted from a
	// disallowed state is a conflict, never a silent overwrite.
	Transition(ctx context.Context, slotID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) error

	// BatchTransition applies Transition per slot; individual failures
	// are collected, never abort the batch.
	BatchTransition(ctx context.Context, slotIDs []uuid.UUID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) (succeeded, failed []uuid.UUID)

	// ReleaseExpiredOnlinePending reverts online-pending slots whose
	// reservation lapsed without a payment result.
	ReleaseExpiredOnlinePending(ctx context.Context, olderThan time.Duration) (int64, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, instructor_id, "date", "start", "end", class_type, status, student_id, payment_method, amount, paid, payment_id, ticket_class_id, pending_at, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	var paymentMethod *string
	err := row.Scan(
		&slot.ID,
		&slot.InstructorID,
		&slot.Date,
		&slot.Start,
		&slot.End,
		&slot.ClassType,
		&slot.Status,
		&slot.StudentID,
		&paymentMethod,
		&slot.Amount,
		&slot.Paid,
		&slot.PaymentID,
		&slot.TicketClassID,
		&slot.PendingAt,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentMethod != nil {
		pm := entity.PaymentMethod(*paymentMethod)
		slot.PaymentMethod = &pm
	}
	return &slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (id, instructor_id, "date", "start", "end", class_type, status, student_id, payment_method, amount, paid, payment_id, ticket_class_id, pending_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	var paymentMethod *string
	if slot.PaymentMethod != nil {
		pm := string(*slot.PaymentMethod)
		paymentMethod = &pm
	}

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.InstructorID,
		slot.Date,
		slot.Start,
		slot.End,
		slot.ClassType,
		slot.Status,
		slot.StudentID,
		paymentMethod,
		slot.Amount,
		slot.Paid,
		slot.PaymentID,
		slot.TicketClassID,
		slot.PendingAt,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
			zap.String("instructor_id", slot.InstructorID.String()),
		)
		return fmt.Errorf("create slot %s: %w", slot.ID.String(), err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindByInstructorAndDate(ctx context.Context, instructorID uuid.UUID, date string) ([]*entity.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE instructor_id = $1 AND "date" = $2
		ORDER BY "start"
	`

	rows, err := r.db.Query(ctx, query, instructorID, date)
	if err != nil {
		r.log.Error("Failed to find slots by instructor and date",
			zap.Error(err),
			zap.String("instructor_id", instructorID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find slots for instructor %s on %s: %w", instructorID.String(), date, err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) Transition(ctx context.Context, slotID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) error {
	sets := []string{"status = $3", "updated_at = NOW()"}
	args := []any{slotID, instructorID, string(to)}

	// pending_at tracks how long a reservation has been held
	if to == entity.SlotStatusPending {
		sets = append(sets, "pending_at = NOW()")
	} else {
		sets = append(sets, "pending_at = NULL")
	}

	if fields.StudentID != nil {
		args = append(args, *fields.StudentID)
		sets = append(sets, fmt.Sprintf("student_id = $%d", len(args)))
	} else if fields.ClearStudent {
		sets = append(sets, "student_id = NULL")
	}

	if fields.Paid != nil {
		args = append(args, *fields.Paid)
		sets = append(sets, fmt.Sprintf("paid = $%d", len(args)))
	}

	if fields.PaymentMethod != nil {
		args = append(args, string(*fields.PaymentMethod))
		sets = append(sets, fmt.Sprintf("payment_method = $%d", len(args)))
	} else if fields.ClearPaymentMethod {
		sets = append(sets, "payment_method = NULL")
	}

	if fields.PaymentID != nil {
		args = append(args, *fields.PaymentID)
		sets = append(sets, fmt.Sprintf("payment_id = $%d", len(args)))
	}

	allowed := make([]string, len(from))
	for i, status := range from {
		allowed[i] = string(status)
	}
	args = append(args, allowed)

	conditions := []string{"id = $1", "instructor_id = $2", fmt.Sprintf("status = ANY($%d)", len(args))}
	if fields.MatchStudentID != nil {
		args = append(args, *fields.MatchStudentID)
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)))
	}

	// Single conditional UPDATE: reading the current status and writing
	// the new one is one indivisible statement, so two concurrent
	// bookings cannot both succeed against the same slot.
	query := fmt.Sprintf(
		`UPDATE slots SET %s WHERE %s`,
		strings.Join(sets, ", "), strings.Join(conditions, " AND "),
	)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to transition slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("transition slot %s to %s: %w", slotID.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		var current string
		err := r.db.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1`, slotID).Scan(&current)
		if err == pgx.ErrNoRows {
			return utils.E(utils.KindNotFound, "slot %s not found", slotID.String())
		}
		if err != nil {
			return fmt.Errorf("check slot %s status: %w", slotID.String(), err)
		}

		r.log.Warn("Slot transition conflict",
			zap.String("slot_id", slotID.String()),
			zap.String("current", current),
			zap.String("to", string(to)),
		)
		return utils.E(utils.KindConflict, "slot %s no longer available", slotID.String())
	}

	return nil
}

func (r *slotRepository) BatchTransition(ctx context.Context, slotIDs []uuid.UUID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) (succeeded, failed []uuid.UUID) {
	for _, slotID := range slotIDs {
		if err := r.Transition(ctx, slotID, instructorID, from, to, fields); err != nil {
			r.log.Warn("Batch transition: slot failed",
				zap.Error(err),
				zap.String("slot_id", slotID.String()),
				zap.String("instructor_id", instructorID.String()),
				zap.String("to", string(to)),
			)
			failed = append(failed, slotID)
			continue
		}
		succeeded = append(succeeded, slotID)
	}

	return succeeded, failed
}

func (r *slotRepository) ReleaseExpiredOnlinePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE slots
		SET status = 'available', student_id = NULL, payment_method = NULL,
		    paid = false, payment_id = NULL, pending_at = NULL, updated_at = NOW()
		WHERE status = 'pending' AND payment_method = 'online' AND pending_at < $1
	`

	cutoff := time.Now().Add(-olderThan)
	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to release expired pending slots", zap.Error(err))
		return 0, fmt.Errorf("release expired pending slots: %w", err)
	}

	return result.RowsAffected(), nil
}
