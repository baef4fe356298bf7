package usecase

import (
	"context"
	"fmt"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/dto/request"
	"driveschool-booking/internal/dto/response"
	"driveschool-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	ListSlots(ctx context.Context, instructorID, date string) ([]response.SlotResponse, error)
	GetSlot(ctx context.Context, slotID string) (*response.SlotResponse, error)
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) ListSlots(ctx context.Context, instructorID, date string) ([]response.SlotResponse, error) {
	id, err := uuid.Parse(instructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor ID format %s: %w", instructorID, err)
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, utils.E(utils.KindValidation, "date must be YYYY-MM-DD, got %q", date)
	}

	slots, err := s.repo.Slot.FindByInstructorAndDate(ctx, id, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	responses := make([]response.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = response.SlotToResponse(slot)
	}

	return responses, nil
}

func (s *scheduleService) GetSlot(ctx context.Context, slotID string) (*response.SlotResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, utils.E(utils.KindNotFound, "slot %s not found", slotID)
	}

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *scheduleService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, utils.E(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	instructorID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor ID format %s: %w", req.InstructorID, err)
	}

	now := time.Now()
	slot := &entity.Slot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InstructorID: instructorID,
		Date:         req.Date,
		Start:        req.Start,
		End:          req.End,
		ClassType:    entity.ClassType(req.ClassType),
		Status:       entity.SlotStatusAvailable,
		Amount:       req.Amount,
	}

	if req.TicketClass != "" {
		ticketClassID, err := uuid.Parse(req.TicketClass)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket class ID format %s: %w", req.TicketClass, err)
		}
		slot.TicketClassID = &ticketClassID
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("instructor_id", req.InstructorID),
		zap.String("date", req.Date),
		zap.String("start", req.Start),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}
