package request

// PaymentResultRequest carries the gateway result delivered by the
// browser return or the server callback. Params pass through to the
// gateway verbatim; the ids may be absent (the gateway echoes them
// back).
type PaymentResultRequest struct {
	TransactionID string         `json:"transaction_id" validate:"required"`
	UserID        string         `json:"user_id,omitempty" validate:"omitempty,uuid4"`
	OrderID       string         `json:"order_id,omitempty" validate:"omitempty,uuid4"`
	Params        map[string]any `json:"params,omitempty"`
}
