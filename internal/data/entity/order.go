package entity

import (
	"github.com/google/uuid"
)

type OrderType string

const (
	OrderTypeDrivingTest   OrderType = "driving_test"
	OrderTypeDrivingLesson OrderType = "driving_lesson"
	OrderTypeTicketClass   OrderType = "ticket_class"
	OrderTypeDrivings      OrderType = "drivings" // tests and lessons mixed
	OrderTypeClasses       OrderType = "classes"  // ticket classes mixed with driving items
	OrderTypeGeneral       OrderType = "general"
)

type OrderPaymentStatus string

const (
	OrderPaymentPending    OrderPaymentStatus = "pending"
	OrderPaymentProcessing OrderPaymentStatus = "processing"
	OrderPaymentCompleted  OrderPaymentStatus = "completed"
	OrderPaymentFailed     OrderPaymentStatus = "failed"
)

// Order is the durable unit of purchase. At most one pending order
// exists per (user, order type); checkout retries reuse it.
type Order struct {
	Base
	OrderNumber   string             `db:"order_number"`
	UserID        uuid.UUID          `db:"user_id"`
	OrderType     OrderType          `db:"order_type"`
	Total         float64            `db:"total"`
	PaymentStatus OrderPaymentStatus `db:"payment_status"`
	Items         []OrderItem
	Appointments  []Appointment
}

type OrderItem struct {
	BaseSimple
	OrderID     uuid.UUID    `db:"order_id"`
	ClassType   CartItemType `db:"class_type"`
	Description string       `db:"description"`
	Price       float64      `db:"price"`
	Quantity    int          `db:"quantity"`
}
