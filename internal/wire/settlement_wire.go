package wire

import (
	"driveschool-booking/internal/adaptor"
	"driveschool-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSettlement(
	r chi.Router,
	settlementHandler *adaptor.SettlementHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/result - Gateway callback / browser return.
	// Unauthenticated: the gateway posts here without a user session.
	r.Post("/api/payments/result", settlementHandler.ProcessResult)

	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/payments/status/{orderId} - Settlement state of an order
		r.Get("/api/payments/status/{orderId}", settlementHandler.CheckStatus)

		// POST /api/orders/{id}/cancel - Release an order's reservations
		r.Post("/api/orders/{id}/cancel", settlementHandler.Cancel)
	})
}
