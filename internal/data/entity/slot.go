package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCancelled SlotStatus = "cancelled"
)

type ClassType string

const (
	ClassTypeDrivingTest   ClassType = "driving_test"
	ClassTypeDrivingLesson ClassType = "driving_lesson"
	ClassTypeTicketClass   ClassType = "ticket_class"
)

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodLocal  PaymentMethod = "local"
)

// Slot is one bookable unit on an instructor's schedule.
//
// Invariant: booked implies paid and a student; pending implies a
// student but not paid; available/cancelled carry no student. Slots are
// never deleted, only re-marked available after cancellation.
type Slot struct {
	Base
	InstructorID  uuid.UUID      `db:"instructor_id"`
	Date          string         `db:"date"`  // 2006-01-02
	Start         string         `db:"start"` // 15:04
	End           string         `db:"end"`
	ClassType     ClassType      `db:"class_type"`
	Status        SlotStatus     `db:"status"`
	StudentID     *uuid.UUID     `db:"student_id"`
	PaymentMethod *PaymentMethod `db:"payment_method"`
	Amount        float64        `db:"amount"`
	Paid          bool           `db:"paid"`
	PaymentID     *string        `db:"payment_id"`
	TicketClassID *uuid.UUID     `db:"ticket_class_id"`
	PendingAt     *time.Time     `db:"pending_at"`
}

// SlotTransitionFields carries the columns a status transition may
// update alongside the status itself. Nil pointers leave the column
// untouched; the Clear flags null it out.
type SlotTransitionFields struct {
	StudentID          *uuid.UUID
	ClearStudent       bool
	Paid               *bool
	PaymentMethod      *PaymentMethod
	ClearPaymentMethod bool
	PaymentID          *string

	// MatchStudentID guards the transition: the row must currently hold
	// this student, or the update matches nothing. Set on finalize and
	// release so one order can never flip a slot re-pended by someone
	// else after the reservation lapsed.
	MatchStudentID *uuid.UUID
}
