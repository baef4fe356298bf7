package response

import (
	"time"

	"driveschool-booking/internal/data/entity"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID            string                    `json:"id"`
	OrderNumber   string                    `json:"order_number"`
	UserID        string                    `json:"user_id"`
	OrderType     entity.OrderType          `json:"order_type"`
	Total         float64                   `json:"total"`
	PaymentStatus entity.OrderPaymentStatus `json:"payment_status"`
	Items         []OrderItemResponse       `json:"items,omitempty"`
	Appointments  []AppointmentResponse     `json:"appointments,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

type OrderItemResponse struct {
	ClassType   entity.CartItemType `json:"class_type"`
	Description string              `json:"description,omitempty"`
	Price       float64             `json:"price"`
	Quantity    int                 `json:"quantity"`
}

type AppointmentResponse struct {
	SlotID        string            `json:"slot_id"`
	TicketClassID string            `json:"ticket_class_id,omitempty"`
	InstructorID  string            `json:"instructor_id,omitempty"`
	Date          string            `json:"date"`
	Start         string            `json:"start"`
	End           string            `json:"end"`
	ClassType     entity.ClassType  `json:"class_type"`
	Amount        float64           `json:"amount"`
	Status        entity.SlotStatus `json:"status"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID.String(),
		OrderType:     order.OrderType,
		Total:         order.Total,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ClassType:   item.ClassType,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	for _, appt := range order.Appointments {
		apptResp := AppointmentResponse{
			SlotID:    appt.SlotID.String(),
			Date:      appt.Date,
			Start:     appt.Start,
			End:       appt.End,
			ClassType: appt.ClassType,
			Amount:    appt.Amount,
			Status:    appt.Status,
		}
		if appt.TicketClassID != nil {
			apptResp.TicketClassID = appt.TicketClassID.String()
		}
		if appt.InstructorID != uuid.Nil {
			apptResp.InstructorID = appt.InstructorID.String()
		}
		resp.Appointments = append(resp.Appointments, apptResp)
	}

	return resp
}
