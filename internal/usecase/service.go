package usecase

import (
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/gateway"
	"driveschool-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Schedule   ScheduleService
	Checkout   CheckoutService
	Settlement SettlementService
}

func NewService(repo *repository.Repository, gw gateway.Service, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Schedule:   NewScheduleService(repo, log),
		Checkout:   NewCheckoutService(repo, gw, log),
		Settlement: NewSettlementService(repo, gw, config.Gateway, log),
	}
}
