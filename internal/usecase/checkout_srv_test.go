package usecase

import (
	"context"
	"testing"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/internal/dto/request"
	"driveschool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCartItem(userID uuid.UUID, classType entity.CartItemType, price float64) *entity.CartItem {
	return &entity.CartItem{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		ClassType:  classType,
		Price:      price,
	}
}

func TestClassifyCart(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		types []entity.CartItemType
		want  entity.OrderType
	}{
		{"single test", []entity.CartItemType{entity.CartItemDrivingTest}, entity.OrderTypeDrivingTest},
		{"single lesson", []entity.CartItemType{entity.CartItemDrivingLesson}, entity.OrderTypeDrivingLesson},
		{"ticket only", []entity.CartItemType{entity.CartItemTicket}, entity.OrderTypeTicketClass},
		{"test and lesson", []entity.CartItemType{entity.CartItemDrivingTest, entity.CartItemDrivingLesson}, entity.OrderTypeDrivings},
		{"ticket beats driving", []entity.CartItemType{entity.CartItemTicket, entity.CartItemDrivingLesson}, entity.OrderTypeClasses},
		{"ticket beats mixed driving", []entity.CartItemType{entity.CartItemTicket, entity.CartItemDrivingTest, entity.CartItemDrivingLesson}, entity.OrderTypeClasses},
		{"general only", []entity.CartItemType{entity.CartItemGeneral}, entity.OrderTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []*entity.CartItem
			for _, ct := range tt.types {
				items = append(items, testCartItem(userID, ct, 10))
			}
			assert.Equal(t, tt.want, classifyCart(items))
		})
	}
}

func TestCheckout_DrivingTest_Success(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()
	slotID := uuid.New()
	instructorID := uuid.New()

	item := testCartItem(userID, entity.CartItemDrivingTest, 50)
	item.SlotID = &slotID
	item.InstructorID = &instructorID
	item.Date = "2026-09-15"
	item.Start = "10:00"
	item.End = "11:00"

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{item}, nil)
	m.order.On("FindPendingByUserAndType", mock.Anything, userID, entity.OrderTypeDrivingTest).Return(nil, nil)

	var created *entity.Order
	m.order.On("CreateWithDetails", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
	}).Return(nil)

	m.slot.On("Transition", mock.Anything, slotID, instructorID,
		[]entity.SlotStatus{entity.SlotStatusAvailable, entity.SlotStatusPending},
		entity.SlotStatusPending, mock.Anything).Return(nil)
	m.cart.On("Clear", mock.Anything, userID).Return(nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/redirect/abc", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	resp, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/redirect/abc", resp.RedirectURL)

	require.NotNil(t, created)
	assert.Equal(t, entity.OrderTypeDrivingTest, created.OrderType)
	assert.Equal(t, entity.OrderPaymentPending, created.PaymentStatus)
	assert.Equal(t, 50.0, created.Total)
	require.Len(t, created.Appointments, 1)
	assert.Equal(t, slotID, created.Appointments[0].SlotID)
	assert.Equal(t, instructorID, created.Appointments[0].InstructorID)
	assert.Equal(t, 50.0, created.Appointments[0].Amount)

	m.slot.AssertExpectations(t)
	m.cart.AssertExpectations(t)
	m.order.AssertExpectations(t)
}

func TestCheckout_GatewayNotReady_TouchesNothing(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()

	m.gateway.On("EnsureReady", mock.Anything).
		Return(utils.E(utils.KindAvailability, "payment service is still starting"))

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.Error(t, err)
	assert.Equal(t, utils.KindAvailability, utils.KindOf(err))

	m.cart.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	m.order.AssertNotCalled(t, "CreateWithDetails", mock.Anything, mock.Anything)
	m.slot.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_ReusesPendingOrder(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()

	item := testCartItem(userID, entity.CartItemDrivingLesson, 100)
	slotID := uuid.New()
	item.SlotID = &slotID

	existing := &entity.Order{
		Base:          entity.Base{ID: uuid.New()},
		OrderNumber:   "ORD-20260901-120000-1234",
		UserID:        userID,
		OrderType:     entity.OrderTypeDrivingLesson,
		Total:         100,
		PaymentStatus: entity.OrderPaymentPending,
	}

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{item}, nil)
	m.order.On("FindPendingByUserAndType", mock.Anything, userID, entity.OrderTypeDrivingLesson).Return(existing, nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/redirect/xyz", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	resp, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing.ID.String(), resp.Order.ID)

	m.order.AssertNotCalled(t, "CreateWithDetails", mock.Anything, mock.Anything)
}

func TestCheckout_LessonPackage_SplitsPriceAcrossSlots(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()
	instructorID := uuid.New()
	slotIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	item := testCartItem(userID, entity.CartItemDrivingLesson, 300)
	item.SlotIDs = slotIDs
	item.InstructorID = &instructorID
	item.PackageName = "3 lesson package"

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{item}, nil)
	m.order.On("FindPendingByUserAndType", mock.Anything, userID, entity.OrderTypeDrivingLesson).Return(nil, nil)

	var created *entity.Order
	m.order.On("CreateWithDetails", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
	}).Return(nil)

	m.slot.On("Transition", mock.Anything, mock.Anything, instructorID, mock.Anything, entity.SlotStatusPending, mock.Anything).Return(nil).Times(3)
	m.cart.On("Clear", mock.Anything, userID).Return(nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/r", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 300.0, created.Total)
	require.Len(t, created.Appointments, 3)
	for i, appt := range created.Appointments {
		assert.Equal(t, slotIDs[i], appt.SlotID)
		assert.Equal(t, 100.0, appt.Amount)
	}

	m.slot.AssertExpectations(t)
}

func TestCheckout_TicketClass_SyntheticSlotIsDeterministic(t *testing.T) {
	ticketClassID := uuid.New()

	a := syntheticSlotID(ticketClassID, "2026-09-20", "18:00", "20:00")
	b := syntheticSlotID(ticketClassID, "2026-09-20", "18:00", "20:00")
	c := syntheticSlotID(ticketClassID, "2026-09-21", "18:00", "20:00")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, uuid.Nil, a)
}

func TestCheckout_TicketClass_NoSlotTransition(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()
	ticketClassID := uuid.New()

	item := testCartItem(userID, entity.CartItemTicket, 75)
	item.TicketClassID = &ticketClassID
	item.Date = "2026-09-20"
	item.Start = "18:00"
	item.End = "20:00"

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{item}, nil)
	m.order.On("FindPendingByUserAndType", mock.Anything, userID, entity.OrderTypeTicketClass).Return(nil, nil)

	var created *entity.Order
	m.order.On("CreateWithDetails", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
	}).Return(nil)

	m.cart.On("Clear", mock.Anything, userID).Return(nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/r", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, created.Appointments, 1)
	assert.True(t, created.Appointments[0].IsTicketClass())
	assert.Equal(t, syntheticSlotID(ticketClassID, "2026-09-20", "18:00", "20:00"), created.Appointments[0].SlotID)

	// Group classes reserve no schedule slot.
	m.slot.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart_ValidationError(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()

	// One malformed item, excluded during resolution.
	broken := testCartItem(userID, entity.CartItemDrivingTest, 0)

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{broken}, nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	m.order.AssertNotCalled(t, "CreateWithDetails", mock.Anything, mock.Anything)
}

func TestCheckout_ExplicitOrderID(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{
		Base:          entity.Base{ID: orderID},
		OrderNumber:   "ORD-20260901-090000-7777",
		UserID:        userID,
		OrderType:     entity.OrderTypeDrivingTest,
		Total:         50,
		PaymentStatus: entity.OrderPaymentPending,
	}

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.order.On("FindByID", mock.Anything, orderID).Return(order, nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/r2", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	resp, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{OrderID: orderID.String()})

	require.NoError(t, err)
	assert.Equal(t, orderID.String(), resp.Order.ID)

	m.cart.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestCheckout_ExplicitOrderID_WrongOwner(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{
		Base:   entity.Base{ID: orderID},
		UserID: uuid.New(), // someone else's order
	}

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.order.On("FindByID", mock.Anything, orderID).Return(order, nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{OrderID: orderID.String()})

	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	m.gateway.AssertNotCalled(t, "RequestRedirect", mock.Anything, mock.Anything)
}

func TestCheckout_QuantityMultipliesTotal(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()

	item := testCartItem(userID, entity.CartItemGeneral, 20)
	item.Quantity = 3
	item.PackageName = "theory workbook"

	m.gateway.On("EnsureReady", mock.Anything).Return(nil)
	m.cart.On("FindByUserID", mock.Anything, userID).Return([]*entity.CartItem{item}, nil)
	m.order.On("FindPendingByUserAndType", mock.Anything, userID, entity.OrderTypeGeneral).Return(nil, nil)

	var created *entity.Order
	m.order.On("CreateWithDetails", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Order)
	}).Return(nil)

	m.cart.On("Clear", mock.Anything, userID).Return(nil)
	m.user.On("FindByID", mock.Anything, userID).Return(nil, nil)
	m.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("https://pay.example/r3", nil)

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID.String(), &request.CheckoutRequest{})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 60.0, created.Total)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 20.0, created.Items[0].Price)
	assert.Equal(t, 3, created.Items[0].Quantity)
}

func TestAddCartItem_RejectsItemWithoutPrice(t *testing.T) {
	m := newTestMocks()
	userID := uuid.New()

	svc := NewCheckoutService(m.repo(), m.gateway, zap.NewNop())
	_, err := svc.AddCartItem(context.Background(), userID.String(), &request.AddCartItemRequest{
		ClassType: "driving_test",
		SlotID:    uuid.New().String(),
	})

	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	m.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}
