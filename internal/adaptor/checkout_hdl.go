package adaptor

import (
	"encoding/json"
	"net/http"

	"driveschool-booking/internal/dto/request"
	"driveschool-booking/internal/usecase"
	"driveschool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// GetCart handles GET /api/cart (protected)
func (h *CheckoutHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	items, err := h.service.GetCart(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// AddCartItem handles POST /api/cart/items (protected)
func (h *CheckoutHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := h.service.AddCartItem(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add cart item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// ClearCart handles DELETE /api/cart (protected)
func (h *CheckoutHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.ClearCart(r.Context(), userID.String()); err != nil {
		writeServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Checkout handles POST /api/checkout (protected)
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	// Body is optional; an empty body means resolve from the cart.
	var req request.CheckoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	checkout, err := h.service.Checkout(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// GetOrder handles GET /api/orders/{id} (protected)
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	order, err := h.service.GetOrder(r.Context(), userID.String(), orderID)
	if err != nil {
		writeServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}
