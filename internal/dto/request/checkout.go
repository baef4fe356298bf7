package request

type CheckoutRequest struct {
	// OrderID short-circuits cart resolution: the existing order is
	// used as-is for the payment hand-off.
	OrderID string `json:"order_id,omitempty" validate:"omitempty,uuid4"`
}

type AddCartItemRequest struct {
	ClassType     string   `json:"class_type" validate:"required,oneof=driving_test driving_lesson ticket general"`
	SlotID        string   `json:"slot_id,omitempty" validate:"omitempty,uuid4"`
	SlotIDs       []string `json:"slot_ids,omitempty" validate:"omitempty,dive,uuid4"`
	TicketClassID string   `json:"ticket_class_id,omitempty" validate:"omitempty,uuid4"`
	ClassID       string   `json:"class_id,omitempty" validate:"omitempty,uuid4"`
	InstructorID  string   `json:"instructor_id,omitempty" validate:"omitempty,uuid4"`
	Date          string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Start         string   `json:"start,omitempty" validate:"omitempty,datetime=15:04"`
	End           string   `json:"end,omitempty" validate:"omitempty,datetime=15:04"`
	Price         float64  `json:"price,omitempty"`
	Amount        float64  `json:"amount,omitempty"`
	Quantity      int      `json:"quantity,omitempty"`
	PackageName   string   `json:"package_name,omitempty"`
}
