package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/dto/request"
	"driveschool-booking/internal/dto/response"
	"driveschool-booking/internal/gateway"
	"driveschool-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SettlementService interface {
	// ProcessResult verifies a gateway result exactly once and either
	// finalizes the order's bookings or reverts them.
	ProcessResult(ctx context.Context, req *request.PaymentResultRequest) (*response.SettlementResponse, error)

	CheckStatus(ctx context.Context, orderID string) (*response.PaymentStatusResponse, error)

	// Cancel releases an order's reservations back to the schedule.
	Cancel(ctx context.Context, userID, orderID string) error
}

type settlementService struct {
	repo    *repository.Repository
	gateway gateway.Service
	config  utils.GatewayConfig
	log     *zap.Logger
}

func NewSettlementService(repo *repository.Repository, gw gateway.Service, config utils.GatewayConfig, log *zap.Logger) SettlementService {
	return &settlementService{
		repo:    repo,
		gateway: gw,
		config:  config,
		log:     log.With(zap.String("service", "settlement")),
	}
}

func (s *settlementService) ProcessResult(ctx context.Context, req *request.PaymentResultRequest) (*response.SettlementResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment result validation failed", zap.Any("errors", errs))
		return nil, utils.E(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Browser return and server callback race each other with the same
	// transaction id. First claim wins; the store failing open is
	// preferable to dropping a settlement.
	first, err := s.repo.Idempotency.MarkProcessed(ctx, req.TransactionID)
	claimed := err == nil && first
	if err != nil {
		s.log.Warn("Idempotency store unavailable, proceeding", zap.Error(err), zap.String("transaction_id", req.TransactionID))
	} else if !first {
		s.log.Info("Duplicate payment result ignored", zap.String("transaction_id", req.TransactionID))
		return &response.SettlementResponse{
			Status:  response.SettlementStatusAlreadyProcessed,
			OrderID: req.OrderID,
			Message: "transaction already processed",
		}, nil
	}

	resp, err := s.settle(ctx, req)
	if err != nil && claimed {
		// The claim only sticks for terminal outcomes. A settlement that
		// errored out must stay re-deliverable, or the order is stranded.
		if relErr := s.repo.Idempotency.Release(context.WithoutCancel(ctx), req.TransactionID); relErr != nil {
			s.log.Error("Could not release settlement claim", zap.Error(relErr), zap.String("transaction_id", req.TransactionID))
		}
	}
	return resp, err
}

// settle runs the post-claim part of result processing. Its success and
// declined returns are terminal; every error return means the same
// transaction id may legitimately arrive again.
func (s *settlementService) settle(ctx context.Context, req *request.PaymentResultRequest) (*response.SettlementResponse, error) {
	decision, err := s.gateway.ProcessResult(ctx, gateway.ResultParams{
		Raw:     req.Params,
		UserID:  req.UserID,
		OrderID: req.OrderID,
	})
	if err != nil {
		return nil, err
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = decision.OrderID
	}
	if orderID == "" {
		return nil, utils.E(utils.KindValidation, "payment result carries no order id")
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("settle payment: %w", err)
	}
	if order == nil {
		return nil, utils.E(utils.KindNotFound, "order %s not found", orderID)
	}

	s.recordTransaction(ctx, order.ID, req, decision)

	if !decision.Approved() {
		s.log.Info("Payment declined, reverting reservations",
			zap.String("order_id", orderID),
			zap.String("transaction_id", req.TransactionID),
			zap.String("decision", decision.Status),
		)
		s.revertAppointments(ctx, order)

		if err := s.repo.Order.UpdatePaymentStatus(ctx, order.ID, entity.OrderPaymentFailed); err != nil {
			s.log.Error("Could not mark order failed", zap.Error(err), zap.String("order_id", orderID))
		}
		if err := s.repo.Cart.Clear(ctx, order.UserID); err != nil {
			s.log.Warn("Could not clear cart after declined payment", zap.Error(err), zap.String("user_id", order.UserID.String()))
		}

		return &response.SettlementResponse{
			Status:  response.SettlementStatusDeclined,
			OrderID: orderID,
			Message: decision.Message,
		}, nil
	}

	return s.finalizeOrder(ctx, order, req.TransactionID)
}

// finalizeOrder flips every reservation the order holds to booked and
// paid, then promotes the order itself. The order only completes after
// every slot did; a partial batch leaves it in processing for a retry.
func (s *settlementService) finalizeOrder(ctx context.Context, order *entity.Order, transactionID string) (*response.SettlementResponse, error) {
	if order.PaymentStatus != entity.OrderPaymentCompleted {
		if err := s.repo.Order.UpdatePaymentStatus(ctx, order.ID, entity.OrderPaymentProcessing); err != nil {
			s.log.Error("Could not mark order processing", zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}

	// The approval record may land a beat behind the callback when both
	// delivery paths fire. Wait for it rather than finalize blind.
	interval := time.Duration(s.config.StatusPollSeconds) * time.Second
	err := utils.Poll(ctx, s.config.StatusPollAttempts, interval, func(ctx context.Context) (bool, error) {
		txn, err := s.repo.Transaction.FindLatestByOrderID(ctx, order.ID)
		if err != nil {
			return false, err
		}
		return txn != nil && txn.Decision == entity.GatewayDecisionApproved, nil
	})
	if err != nil {
		return nil, utils.WrapE(utils.KindConsistency, err, "payment approval for order %s could not be confirmed", order.OrderNumber)
	}

	// Finalization must outlive a dropped browser connection.
	bg := context.WithoutCancel(ctx)

	paid := true
	allProcessed := true
	var mu sync.Mutex

	byInstructor := make(map[uuid.UUID][]uuid.UUID)
	for _, appt := range order.Appointments {
		if appt.IsTicketClass() {
			if err := s.repo.TicketClass.UpdateEnrollment(bg, *appt.TicketClassID, appt.StudentID, appt.ClassID,
				entity.EnrollmentConfirmed, true, &transactionID); err != nil {
				s.log.Error("Could not confirm ticket class enrollment",
					zap.Error(err),
					zap.String("ticket_class_id", appt.TicketClassID.String()),
					zap.String("order_id", order.ID.String()),
				)
				allProcessed = false
			}
			continue
		}
		byInstructor[appt.InstructorID] = append(byInstructor[appt.InstructorID], appt.SlotID)
	}

	// One writer per instructor; different instructors never contend on
	// the same slot rows.
	var wg sync.WaitGroup
	for instructorID, slotIDs := range byInstructor {
		wg.Add(1)
		go func(instructorID uuid.UUID, slotIDs []uuid.UUID) {
			defer wg.Done()

			succeeded, failed := s.repo.Slot.BatchTransition(bg, slotIDs, instructorID,
				[]entity.SlotStatus{entity.SlotStatusPending, entity.SlotStatusBooked},
				entity.SlotStatusBooked,
				entity.SlotTransitionFields{Paid: &paid, PaymentID: &transactionID, MatchStudentID: &order.UserID},
			)

			s.log.Info("Instructor batch finalized",
				zap.String("instructor_id", instructorID.String()),
				zap.String("order_id", order.ID.String()),
				zap.Int("booked", len(succeeded)),
				zap.Int("failed", len(failed)),
			)

			if len(failed) > 0 {
				mu.Lock()
				allProcessed = false
				mu.Unlock()
			}
		}(instructorID, slotIDs)
	}
	wg.Wait()

	if !allProcessed {
		return nil, utils.E(utils.KindConsistency, "payment captured but bookings for order %s are incomplete", order.OrderNumber)
	}

	if err := s.repo.Order.UpdatePaymentStatus(bg, order.ID, entity.OrderPaymentCompleted); err != nil {
		return nil, fmt.Errorf("complete order %s: %w", order.OrderNumber, err)
	}

	// Re-read before declaring success; a row that did not stick means
	// the money and the schedule disagree.
	for _, appt := range order.Appointments {
		if appt.IsTicketClass() {
			continue
		}
		slot, err := s.repo.Slot.FindByID(bg, appt.SlotID)
		if err != nil {
			return nil, utils.WrapE(utils.KindConsistency, err, "verification read failed for slot %s", appt.SlotID)
		}
		if slot == nil || slot.Status != entity.SlotStatusBooked || !slot.Paid {
			return nil, utils.E(utils.KindConsistency, "slot %s did not finalize for order %s", appt.SlotID, order.OrderNumber)
		}
	}

	if err := s.repo.Cart.Clear(bg, order.UserID); err != nil {
		s.log.Warn("Could not clear cart after settlement", zap.Error(err), zap.String("user_id", order.UserID.String()))
	}

	s.log.Info("Order settled",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("transaction_id", transactionID),
	)

	return &response.SettlementResponse{
		Status:  response.SettlementStatusSuccess,
		OrderID: order.ID.String(),
		Message: "payment settled",
	}, nil
}

func (s *settlementService) CheckStatus(ctx context.Context, orderID string) (*response.PaymentStatusResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check payment status: %w", err)
	}
	if order == nil {
		return nil, utils.E(utils.KindNotFound, "order %s not found", orderID)
	}

	resp := &response.PaymentStatusResponse{
		OrderID:       order.ID.String(),
		PaymentStatus: string(order.PaymentStatus),
	}

	txn, err := s.repo.Transaction.FindLatestByOrderID(ctx, id)
	if err != nil {
		s.log.Warn("Could not load latest transaction", zap.Error(err), zap.String("order_id", orderID))
	} else if txn != nil {
		resp.GatewayDecision = string(txn.Decision)
	}

	return resp, nil
}

func (s *settlementService) Cancel(ctx context.Context, userID, orderID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	id, err := uuid.Parse(orderID)
	if err != nil {
		return fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if order == nil || order.UserID != userUUID {
		return utils.E(utils.KindNotFound, "order %s not found", orderID)
	}

	s.revertAppointments(ctx, order)

	if err := s.repo.Order.UpdatePaymentStatus(ctx, order.ID, entity.OrderPaymentFailed); err != nil {
		s.log.Error("Could not mark cancelled order failed", zap.Error(err), zap.String("order_id", orderID))
	}
	if err := s.repo.Cart.Clear(ctx, order.UserID); err != nil {
		s.log.Warn("Could not clear cart on cancel", zap.Error(err), zap.String("user_id", userID))
	}

	s.log.Info("Order cancelled", zap.String("order_id", orderID), zap.String("user_id", userID))
	return nil
}

// revertAppointments hands every reservation back. Each revert is
// independent; one failing must not strand the rest.
func (s *settlementService) revertAppointments(ctx context.Context, order *entity.Order) {
	bg := context.WithoutCancel(ctx)
	notPaid := false

	for _, appt := range order.Appointments {
		if appt.IsTicketClass() {
			err := s.repo.TicketClass.UpdateEnrollment(bg, *appt.TicketClassID, appt.StudentID, appt.ClassID,
				entity.EnrollmentCancelled, false, nil)
			if err != nil {
				s.log.Error("Could not cancel ticket class enrollment",
					zap.Error(err),
					zap.String("ticket_class_id", appt.TicketClassID.String()),
					zap.String("order_id", order.ID.String()),
				)
			}
			continue
		}

		studentID := appt.StudentID
		err := s.repo.Slot.Transition(bg, appt.SlotID, appt.InstructorID,
			[]entity.SlotStatus{entity.SlotStatusPending, entity.SlotStatusBooked},
			entity.SlotStatusAvailable,
			entity.SlotTransitionFields{ClearStudent: true, ClearPaymentMethod: true, Paid: &notPaid, MatchStudentID: &studentID},
		)
		if err != nil {
			s.log.Error("Could not release slot",
				zap.Error(err),
				zap.String("slot_id", appt.SlotID.String()),
				zap.String("order_id", order.ID.String()),
			)
		}
	}
}

func (s *settlementService) recordTransaction(ctx context.Context, orderID uuid.UUID, req *request.PaymentResultRequest, decision *gateway.ResultDecision) {
	raw, err := json.Marshal(req.Params)
	if err != nil {
		raw = nil
	}

	outcome := entity.GatewayDecisionDeclined
	switch decision.Status {
	case string(entity.GatewayDecisionApproved):
		outcome = entity.GatewayDecisionApproved
	case string(entity.GatewayDecisionError):
		outcome = entity.GatewayDecisionError
	}

	txn := &entity.PaymentTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		OrderID:       orderID,
		TransactionID: req.TransactionID,
		Decision:      outcome,
		RawResult:     raw,
	}

	if err := s.repo.Transaction.Create(ctx, txn); err != nil {
		s.log.Error("Could not record payment transaction",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("transaction_id", req.TransactionID),
		)
	}
}
