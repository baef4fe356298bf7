package wire

import (
	"driveschool-booking/internal/adaptor"
	"driveschool-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/cart - Current cart contents
		r.Get("/api/cart", checkoutHandler.GetCart)

		// POST /api/cart/items - Add an item to the cart
		r.Post("/api/cart/items", checkoutHandler.AddCartItem)

		// DELETE /api/cart - Empty the cart
		r.Delete("/api/cart", checkoutHandler.ClearCart)

		// POST /api/checkout - Resolve the cart and start the payment hand-off
		r.Post("/api/checkout", checkoutHandler.Checkout)

		// GET /api/orders/{id} - Order detail
		r.Get("/api/orders/{id}", checkoutHandler.GetOrder)
	})
}
