package response

import (
	"time"

	"driveschool-booking/internal/data/entity"
)

type CheckoutResponse struct {
	RedirectURL string        `json:"redirect_url"`
	Order       OrderResponse `json:"order"`
}

type CartItemResponse struct {
	ID            string              `json:"id"`
	ClassType     entity.CartItemType `json:"class_type"`
	SlotID        string              `json:"slot_id,omitempty"`
	SlotIDs       []string            `json:"slot_ids,omitempty"`
	TicketClassID string              `json:"ticket_class_id,omitempty"`
	Date          string              `json:"date,omitempty"`
	Start         string              `json:"start,omitempty"`
	End           string              `json:"end,omitempty"`
	Price         float64             `json:"price"`
	Quantity      int                 `json:"quantity,omitempty"`
	PackageName   string              `json:"package_name,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:          item.ID.String(),
		ClassType:   item.ClassType,
		Date:        item.Date,
		Start:       item.Start,
		End:         item.End,
		Price:       item.UnitPrice(),
		Quantity:    item.Quantity,
		PackageName: item.PackageName,
		CreatedAt:   item.CreatedAt,
	}
	if item.SlotID != nil {
		resp.SlotID = item.SlotID.String()
	}
	for _, id := range item.SlotIDs {
		resp.SlotIDs = append(resp.SlotIDs, id.String())
	}
	if item.TicketClassID != nil {
		resp.TicketClassID = item.TicketClassID.String()
	}
	return resp
}
