package usecase

import (
	"context"
	"fmt"
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

type CheckoutService interface {
	// Cart
	GetCart(ctx context.Context, userID string) ([]response.CartItemResponse, error)
	AddCartItem(ctx context.Context, userID string, req *request.AddCartItemRequest) (*response.CartItemResponse, error)
	ClearCart(ctx context.Context, userID string) error

	// Checkout resolves the cart (or an explicit order) into one
	// pending order, hands it to the payment gateway and returns the
	// redirect URL the user must be sent to.
	Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error)

	GetOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error)
}

type checkoutService struct {
	repo    *repository.Repository
	gateway gateway.Service
	log     *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, gw gateway.Service, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:    repo,
		gateway: gw,
		log:     log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) GetCart(ctx context.Context, userID string) ([]response.CartItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	items, err := s.repo.Cart.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	responses := make([]response.CartItemResponse, len(items))
	for i, item := range items {
		responses[i] = response.CartItemToResponse(item)
	}

	return responses, nil
}

func (s *checkoutService) AddCartItem(ctx context.Context, userID string, req *request.AddCartItemRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add cart item validation failed", zap.Any("errors", errs))
		return nil, utils.E(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	item := &entity.CartItem{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:      userUUID,
		ClassType:   entity.CartItemType(req.ClassType),
		Date:        req.Date,
		Start:       req.Start,
		End:         req.End,
		Price:       req.Price,
		Amount:      req.Amount,
		Quantity:    req.Quantity,
		PackageName: req.PackageName,
	}

	if req.SlotID != "" {
		slotID, err := uuid.Parse(req.SlotID)
		if err != nil {
			return nil, fmt.Errorf("invalid slot ID format %s: %w", req.SlotID, err)
		}
		item.SlotID = &slotID
	}
	for _, raw := range req.SlotIDs {
		slotID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid slot ID format %s: %w", raw, err)
		}
		item.SlotIDs = append(item.SlotIDs, slotID)
	}
	if req.TicketClassID != "" {
		ticketClassID, err := uuid.Parse(req.TicketClassID)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket class ID format %s: %w", req.TicketClassID, err)
		}
		item.TicketClassID = &ticketClassID
	}
	if req.ClassID != "" {
		classID, err := uuid.Parse(req.ClassID)
		if err != nil {
			return nil, fmt.Errorf("invalid class ID format %s: %w", req.ClassID, err)
		}
		item.ClassID = &classID
	}
	if req.InstructorID != "" {
		instructorID, err := uuid.Parse(req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("invalid instructor ID format %s: %w", req.InstructorID, err)
		}
		item.InstructorID = &instructorID
	}

	if !item.Valid() {
		return nil, utils.E(utils.KindValidation, "cart item needs a price and an identity")
	}

	if err := s.repo.Cart.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	s.log.Info("Cart item added",
		zap.String("user_id", userID),
		zap.String("class_type", string(item.ClassType)),
	)

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *checkoutService) ClearCart(ctx context.Context, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if err := s.repo.Cart.Clear(ctx, userUUID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.log.Info("Cart cleared", zap.String("user_id", userID))
	return nil
}

func (s *checkoutService) Checkout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, utils.E(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	// The gateway host may be cold. Readiness is checked before any
	// slot is touched, so a dead gateway leaves the schedule untouched.
	if err := s.gateway.EnsureReady(ctx); err != nil {
		return nil, err
	}

	order, err := s.resolveOrder(ctx, userUUID, req.OrderID)
	if err != nil {
		return nil, err
	}

	// Profile gaps fall back to payload placeholders, never fail checkout.
	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Warn("Could not load user profile for payload", zap.Error(err), zap.String("user_id", userID))
	}

	payload := gateway.BuildPayload(order, user)
	redirectURL, err := s.gateway.RequestRedirect(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.log.Info("Checkout hand-off complete",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)

	return &response.CheckoutResponse{
		RedirectURL: redirectURL,
		Order:       response.OrderToResponse(order),
	}, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil || order.UserID != userUUID {
		return nil, utils.E(utils.KindNotFound, "order %s not found", orderID)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// resolveOrder turns the cart (or an explicit order id) into the single
// pending order this checkout will settle against.
func (s *checkoutService) resolveOrder(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error) {
	if orderID != "" {
		id, err := uuid.Parse(orderID)
		if err != nil {
			return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
		}

		order, err := s.repo.Order.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve order: %w", err)
		}
		if order == nil || order.UserID != userID {
			return nil, utils.E(utils.KindNotFound, "order %s not found", orderID)
		}
		return order, nil
	}

	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve order from cart: %w", err)
	}

	var valid []*entity.CartItem
	for _, item := range items {
		if !item.Valid() {
			s.log.Warn("Excluding malformed cart item",
				zap.String("cart_item_id", item.ID.String()),
				zap.String("user_id", userID.String()),
			)
			continue
		}
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return nil, utils.E(utils.KindValidation, "cart is empty")
	}

	orderType := classifyCart(valid)

	// A pending order for the same (user, type) is reused so checkout
	// retries do not fork orders.
	existing, err := s.repo.Order.FindPendingByUserAndType(ctx, userID, orderType)
	if err != nil {
		return nil, fmt.Errorf("look up pending order: %w", err)
	}
	if existing != nil {
		s.log.Info("Reusing pending order",
			zap.String("order_id", existing.ID.String()),
			zap.String("order_type", string(orderType)),
			zap.String("user_id", userID.String()),
		)
		return existing, nil
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:   utils.GenerateOrderNumber(),
		UserID:        userID,
		OrderType:     orderType,
		PaymentStatus: entity.OrderPaymentPending,
	}

	for _, item := range valid {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		order.Total += item.UnitPrice() * float64(quantity)
		order.Items = append(order.Items, entity.OrderItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:     order.ID,
			ClassType:   item.ClassType,
			Description: item.PackageName,
			Price:       item.UnitPrice(),
			Quantity:    quantity,
		})

		order.Appointments = append(order.Appointments, s.buildAppointments(order, item, now)...)
	}

	if err := s.repo.Order.CreateWithDetails(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Reserve the schedule slots. Best-effort: an item may already be
	// pending from a prior attempt, so conflicts are logged, not fatal.
	online := entity.PaymentMethodOnline
	for _, appt := range order.Appointments {
		if appt.IsTicketClass() {
			continue
		}

		err := s.repo.Slot.Transition(ctx, appt.SlotID, appt.InstructorID,
			[]entity.SlotStatus{entity.SlotStatusAvailable, entity.SlotStatusPending},
			entity.SlotStatusPending,
			entity.SlotTransitionFields{StudentID: &userID, PaymentMethod: &online},
		)
		if err != nil {
			s.log.Warn("Could not mark slot pending",
				zap.Error(err),
				zap.String("slot_id", appt.SlotID.String()),
				zap.String("order_id", order.ID.String()),
			)
		}
	}

	if err := s.repo.Cart.Clear(ctx, userID); err != nil {
		s.log.Warn("Could not clear cart after order creation", zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("order_type", string(orderType)),
		zap.Int("appointments", len(order.Appointments)),
		zap.Float64("total", order.Total),
	)

	return order, nil
}

// buildAppointments emits the slot pointers one cart item contributes.
// A lesson package splits its price evenly across its slots; a ticket
// class gets one appointment keyed by a synthetic slot id, since group
// classes own no schedule slot record.
func (s *checkoutService) buildAppointments(order *entity.Order, item *entity.CartItem, now time.Time) []entity.Appointment {
	base := entity.Appointment{
		OrderID:   order.ID,
		Date:      item.Date,
		Start:     item.Start,
		End:       item.End,
		StudentID: order.UserID,
		Status:    entity.SlotStatusPending,
	}
	if item.InstructorID != nil {
		base.InstructorID = *item.InstructorID
	}

	switch item.ClassType {
	case entity.CartItemDrivingTest:
		if item.SlotID == nil {
			s.log.Warn("Driving test item without slot", zap.String("cart_item_id", item.ID.String()))
			return nil
		}
		appt := base
		appt.BaseSimple = entity.BaseSimple{ID: uuid.New(), CreatedAt: now}
		appt.SlotID = *item.SlotID
		appt.ClassType = entity.ClassTypeDrivingTest
		appt.Amount = item.UnitPrice()
		return []entity.Appointment{appt}

	case entity.CartItemDrivingLesson:
		slotIDs := item.SlotIDs
		if len(slotIDs) == 0 && item.SlotID != nil {
			slotIDs = []uuid.UUID{*item.SlotID}
		}
		if len(slotIDs) == 0 {
			s.log.Warn("Driving lesson item without slots", zap.String("cart_item_id", item.ID.String()))
			return nil
		}

		perSlot := item.UnitPrice() / float64(len(slotIDs))
		appointments := make([]entity.Appointment, 0, len(slotIDs))
		for _, slotID := range slotIDs {
			appt := base
			appt.BaseSimple = entity.BaseSimple{ID: uuid.New(), CreatedAt: now}
			appt.SlotID = slotID
			appt.ClassType = entity.ClassTypeDrivingLesson
			appt.Amount = perSlot
			appointments = append(appointments, appt)
		}
		return appointments

	case entity.CartItemTicket:
		if item.TicketClassID == nil {
			s.log.Warn("Ticket item without ticket class", zap.String("cart_item_id", item.ID.String()))
			return nil
		}
		appt := base
		appt.BaseSimple = entity.BaseSimple{ID: uuid.New(), CreatedAt: now}
		appt.SlotID = syntheticSlotID(*item.TicketClassID, item.Date, item.Start, item.End)
		appt.TicketClassID = item.TicketClassID
		appt.ClassID = item.ClassID
		appt.ClassType = entity.ClassTypeTicketClass
		appt.Amount = item.UnitPrice()
		return []entity.Appointment{appt}

	default:
		// General items are plain line items with nothing to finalize.
		return nil
	}
}

// classifyCart derives the order type from the mix of item class types.
// Ticket items take priority over driving items.
func classifyCart(items []*entity.CartItem) entity.OrderType {
	var hasTicket, hasTest, hasLesson bool
	for _, item := range items {
		switch item.ClassType {
		case entity.CartItemTicket:
			hasTicket = true
		case entity.CartItemDrivingTest:
			hasTest = true
		case entity.CartItemDrivingLesson:
			hasLesson = true
		}
	}

	switch {
	case hasTicket && (hasTest || hasLesson):
		return entity.OrderTypeClasses
	case hasTicket:
		return entity.OrderTypeTicketClass
	case hasTest && hasLesson:
		return entity.OrderTypeDrivings
	case hasTest:
		return entity.OrderTypeDrivingTest
	case hasLesson:
		return entity.OrderTypeDrivingLesson
	default:
		return entity.OrderTypeGeneral
	}
}

// syntheticSlotID is the deterministic stand-in slot id for a ticket
// class occurrence, derived from the class identity and time window.
func syntheticSlotID(ticketClassID uuid.UUID, date, start, end string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(ticketClassID.String()+date+start+end))
}
