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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// ListSlots handles GET /api/schedule/{instructorId}/slots?date=YYYY-MM-DD (public)
func (h *ScheduleHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	instructorID := chi.URLParam(r, "instructorId")
	if instructorID == "" {
		utils.ResponseBadRequest(w, "Instructor ID is required", nil)
		return
	}

	slots, err := h.service.ListSlots(r.Context(), instructorID, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.log, err, "list slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetSlot handles GET /api/schedule/slots/{id} (public)
func (h *ScheduleHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	slot, err := h.service.GetSlot(r.Context(), slotID)
	if err != nil {
		writeServiceError(w, h.log, err, "get slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// CreateSlot handles POST /api/admin/schedule/slots (admin only)
func (h *ScheduleHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}
