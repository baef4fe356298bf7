package entity

import (
	"github.com/google/uuid"
)

// Appointment is an order-owned pointer to the slot (or ticket class)
// a purchase will finalize after payment. The set of appointments on an
// order is immutable once the order leaves pending; settlement only
// flips slot state.
//
// Ticket-class appointments have no schedule slot of their own: SlotID
// holds a synthetic id derived from the class identity, and
// TicketClassID/ClassID point at the group class instead.
type Appointment struct {
	BaseSimple
	OrderID       uuid.UUID  `db:"order_id"`
	SlotID        uuid.UUID  `db:"slot_id"`
	TicketClassID *uuid.UUID `db:"ticket_class_id"`
	ClassID       *uuid.UUID `db:"class_id"`
	InstructorID  uuid.UUID  `db:"instructor_id"`
	Date          string     `db:"date"`
	Start         string     `db:"start"`
	End           string     `db:"end"`
	ClassType     ClassType  `db:"class_type"`
	StudentID     uuid.UUID  `db:"student_id"`
	Amount        float64    `db:"amount"`
	Status        SlotStatus `db:"status"`
}

// IsTicketClass reports whether this appointment finalizes through the
// per-class enrollment path rather than a slot transition.
func (a *Appointment) IsTicketClass() bool {
	return a.TicketClassID != nil
}
