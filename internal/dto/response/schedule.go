package response

import (
	"time"

	"driveschool-booking/internal/data/entity"
)

type SlotResponse struct {
	ID            string            `json:"id"`
	InstructorID  string            `json:"instructor_id"`
	Date          string            `json:"date"`
	Start         string            `json:"start"`
	End           string            `json:"end"`
	ClassType     entity.ClassType  `json:"class_type"`
	Status        entity.SlotStatus `json:"status"`
	StudentID     string            `json:"student_id,omitempty"`
	Amount        float64           `json:"amount"`
	Paid          bool              `json:"paid"`
	TicketClassID string            `json:"ticket_class_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func SlotToResponse(slot *entity.Slot) SlotResponse {
	resp := SlotResponse{
		ID:           slot.ID.String(),
		InstructorID: slot.InstructorID.String(),
		Date:         slot.Date,
		Start:        slot.Start,
		End:          slot.End,
		ClassType:    slot.ClassType,
		Status:       slot.Status,
		Amount:       slot.Amount,
		Paid:         slot.Paid,
		CreatedAt:    slot.CreatedAt,
	}
	if slot.StudentID != nil {
		resp.StudentID = slot.StudentID.String()
	}
	if slot.TicketClassID != nil {
		resp.TicketClassID = slot.TicketClassID.String()
	}
	return resp
}
