package adaptor

import (
	"net/http"

	"driveschool-booking/internal/usecase"
	"driveschool-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Schedule   *ScheduleHandler
	Checkout   *CheckoutHandler
	Settlement *SettlementHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Schedule:   NewScheduleHandler(service.Schedule, log),
		Checkout:   NewCheckoutHandler(service.Checkout, log),
		Settlement: NewSettlementHandler(service.Settlement, log),
	}
}

// writeServiceError maps a service error to the HTTP envelope by its
// kind. Unclassified errors are internal.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := utils.KindOf(err)

	switch kind {
	case utils.KindValidation:
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
	case utils.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())
	case utils.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())
	case utils.KindAvailability:
		log.Warn(operation+" failed - dependency not ready", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())
	case utils.KindGateway:
		log.Error(operation+" failed - gateway", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())
	case utils.KindConsistency:
		log.Error(operation+" failed - consistency", zap.Error(err))
		utils.ResponseInternalError(w, err.Error())
	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
