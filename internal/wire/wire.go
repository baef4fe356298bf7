// internal/wire/wire.go
package wire

import (
	"net/http"

	"driveschool-booking/internal/adaptor"
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/gateway"
	"driveschool-booking/internal/usecase"
	"driveschool-booking/pkg/middleware"
	"driveschool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(repo *repository.Repository, gw gateway.Service, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, gw, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireSchedule(r, handler.Schedule, logger)
	wireCheckout(r, handler.Checkout, logger)
	wireSettlement(r, handler.Settlement, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
