package entity

import (
	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// TicketClassEnrollment is one student's standing on a group ticket
// class. The class itself owns no schedule slot; settlement confirms or
// cancels the enrollment directly.
type TicketClassEnrollment struct {
	BaseSimple
	TicketClassID uuid.UUID        `db:"ticket_class_id"`
	StudentID     uuid.UUID        `db:"student_id"`
	ClassID       *uuid.UUID       `db:"class_id"`
	Status        EnrollmentStatus `db:"status"`
	Paid          bool             `db:"paid"`
	PaymentID     *string          `db:"payment_id"`
}
