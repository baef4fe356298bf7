package entity

import (
	"github.com/google/uuid"
)

type GatewayDecision string

const (
	GatewayDecisionApproved GatewayDecision = "APPROVED"
	GatewayDecisionDeclined GatewayDecision = "DECLINED"
	GatewayDecisionError    GatewayDecision = "ERROR"
)

// PaymentTransaction records one gateway result delivery against an
// order. It backs the check-status read and the settlement poll.
type PaymentTransaction struct {
	BaseSimple
	OrderID       uuid.UUID       `db:"order_id"`
	TransactionID string          `db:"transaction_id"`
	Decision      GatewayDecision `db:"decision"`
	RawResult     []byte          `db:"raw_result"`
}
