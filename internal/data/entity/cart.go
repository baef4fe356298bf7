package entity

import (
	"github.com/google/uuid"
)

// CartItemType tags the loosely-shaped cart records so appointment
// construction can switch over them exhaustively.
type CartItemType string

const (
	CartItemDrivingTest   CartItemType = "driving_test"
	CartItemDrivingLesson CartItemType = "driving_lesson"
	CartItemTicket        CartItemType = "ticket"
	CartItemGeneral       CartItemType = "general"
)

type CartItem struct {
	BaseSimple
	UserID        uuid.UUID    `db:"user_id"`
	ClassType     CartItemType `db:"class_type"`
	SlotID        *uuid.UUID   `db:"slot_id"`
	SlotIDs       []uuid.UUID  `db:"slot_ids"` // lesson package: several slots under one item
	TicketClassID *uuid.UUID   `db:"ticket_class_id"`
	ClassID       *uuid.UUID   `db:"class_id"`
	InstructorID  *uuid.UUID   `db:"instructor_id"`
	Date          string       `db:"date"`
	Start         string       `db:"start"`
	End           string       `db:"end"`
	Price         float64      `db:"price"`
	Amount        float64      `db:"amount"`
	Quantity      int          `db:"quantity"`
	PackageName   string       `db:"package_name"`
}

// Valid reports whether the item carries enough shape to become an
// order line: some price and some identity. Items failing this are
// excluded from order construction.
func (c *CartItem) Valid() bool {
	hasPrice := c.Price > 0 || c.Amount > 0
	hasIdentity := c.SlotID != nil || len(c.SlotIDs) > 0 || c.TicketClassID != nil || c.ClassType != ""
	return hasPrice && hasIdentity
}

// UnitPrice returns the priced value of the item, falling back from
// price to amount.
func (c *CartItem) UnitPrice() float64 {
	if c.Price > 0 {
		return c.Price
	}
	return c.Amount
}
