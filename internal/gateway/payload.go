package gateway

import (
	"driveschool-booking/internal/data/entity"
)

// Payload is the canonical hand-off document built from the resolved
// order and the student's profile. It is ephemeral and never persisted.
type Payload struct {
	UserID       string
	OrderID      string
	OrderNumber  string
	OrderType    string
	Amount       float64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	CustomerCode string
}

// redirectRequest is the wire shape POSTed to the gateway. Downstream
// has historically read the same identifiers under several field names,
// so the canonical values are repeated under every alias here instead
// of branching anywhere in the business logic.
type redirectRequest struct {
	UserID       string  `json:"userId"`
	UserIDSnake  string  `json:"user_id"`
	StudentID    string  `json:"studentId"`
	OrderID      string  `json:"orderId"`
	OrderIDSnake string  `json:"order_id"`
	OrderNumber  string  `json:"orderNumber"`
	OrderType    string  `json:"orderType"`
	Amount       float64 `json:"amount"`
	Total        float64 `json:"total"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	CustomerCode string  `json:"customer_code"`
}

func (p *Payload) toWire() redirectRequest {
	return redirectRequest{
		UserID:       p.UserID,
		UserIDSnake:  p.UserID,
		StudentID:    p.UserID,
		OrderID:      p.OrderID,
		OrderIDSnake: p.OrderID,
		OrderNumber:  p.OrderNumber,
		OrderType:    p.OrderType,
		Amount:       p.Amount,
		Total:        p.Amount,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		CustomerCode: p.CustomerCode,
	}
}

// Profile placeholders used when the student record is incomplete.
// The gateway rejects empty name fields, so absent values degrade to
// these instead of failing the hand-off.
const (
	defaultFirstName = "Student"
	defaultLastName  = "Unknown"
	defaultEmail     = "no-email@unknown.invalid"
	defaultPhone     = "0000000000"
)

// BuildPayload assembles the hand-off payload from the order and an
// optional user profile.
func BuildPayload(order *entity.Order, user *entity.User) *Payload {
	payload := &Payload{
		UserID:       order.UserID.String(),
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		OrderType:    string(order.OrderType),
		Amount:       order.Total,
		FirstName:    defaultFirstName,
		LastName:     defaultLastName,
		Email:        defaultEmail,
		Phone:        defaultPhone,
		CustomerCode: CustomerCode(order.UserID.String(), order.ID.String()),
	}

	if user != nil {
		if user.FirstName != "" {
			payload.FirstName = user.FirstName
		}
		if user.LastName != "" {
			payload.LastName = user.LastName
		}
		if user.Email != "" {
			payload.Email = user.Email
		}
		if user.Phone != "" {
			payload.Phone = user.Phone
		}
	}

	return payload
}

// CustomerCode derives the compact 8-character cross-reference key the
// gateway stores in its own constrained fields: the last 4 characters
// of the user id followed by the last 4 characters of the order id.
func CustomerCode(userID, orderID string) string {
	return lastN(userID, 4) + lastN(orderID, 4)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
