package wire

import (
	"driveschool-booking/internal/adaptor"
	"driveschool-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/schedule/{instructorId}/slots - List an instructor's slots for a date
	r.Get("/api/schedule/{instructorId}/slots", scheduleHandler.ListSlots)

	// GET /api/schedule/slots/{id} - Slot detail
	r.Get("/api/schedule/slots/{id}", scheduleHandler.GetSlot)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/schedule", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/admin/schedule/slots - Publish a new slot
		r.Post("/slots", scheduleHandler.CreateSlot)
	})
}
