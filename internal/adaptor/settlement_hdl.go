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

type SettlementHandler struct {
	service usecase.SettlementService
	log     *zap.Logger
}

func NewSettlementHandler(service usecase.SettlementService, log *zap.Logger) *SettlementHandler {
	return &SettlementHandler{
		service: service,
		log:     log.With(zap.String("handler", "settlement")),
	}
}

// ProcessResult handles POST /api/payments/result (public, called by the
// gateway callback and the browser return page)
func (h *SettlementHandler) ProcessResult(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.ProcessResult(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "process payment result")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CheckStatus handles GET /api/payments/status/{orderId} (protected)
func (h *SettlementHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	status, err := h.service.CheckStatus(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, h.log, err, "check payment status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// Cancel handles POST /api/orders/{id}/cancel (protected)
func (h *SettlementHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Cancel(r.Context(), userID.String(), orderID); err != nil {
		writeServiceError(w, h.log, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
