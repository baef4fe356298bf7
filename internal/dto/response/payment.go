package response

// SettlementResponse reports the outcome of processing a gateway
// payment result.
type SettlementResponse struct {
	Status  string `json:"status"` // success, declined, already_processed
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	SettlementStatusSuccess          = "success"
	SettlementStatusDeclined         = "declined"
	SettlementStatusAlreadyProcessed = "already_processed"
)

type PaymentStatusResponse struct {
	OrderID         string `json:"order_id"`
	PaymentStatus   string `json:"payment_status"`
	GatewayDecision string `json:"gateway_decision,omitempty"`
}
