package usecase

import (
	"context"
	"time"

	"driveschool-booking/internal/data/entity"
	"driveschool-booking/internal/data/repository"
	"driveschool-booking/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSlotRepository is a mock implementation of repository.SlotRepository.
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockSlotRepository) FindByInstructorAndDate(ctx context.Context, instructorID uuid.UUID, date string) ([]*entity.Slot, error) {
	args := m.Called(ctx, instructorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Slot), args.Error(1)
}

func (m *MockSlotRepository) Transition(ctx context.Context, slotID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) error {
	args := m.Called(ctx, slotID, instructorID, from, to, fields)
	return args.Error(0)
}

func (m *MockSlotRepository) BatchTransition(ctx context.Context, slotIDs []uuid.UUID, instructorID uuid.UUID, from []entity.SlotStatus, to entity.SlotStatus, fields entity.SlotTransitionFields) (succeeded, failed []uuid.UUID) {
	args := m.Called(ctx, slotIDs, instructorID, from, to, fields)
	if args.Get(0) != nil {
		succeeded = args.Get(0).([]uuid.UUID)
	}
	if args.Get(1) != nil {
		failed = args.Get(1).([]uuid.UUID)
	}
	return succeeded, failed
}

func (m *MockSlotRepository) ReleaseExpiredOnlinePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithDetails(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPendingByUserAndType(ctx context.Context, userID uuid.UUID, orderType entity.OrderType) (*entity.Order, error) {
	args := m.Called(ctx, userID, orderType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderPaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CartItem), args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTicketClassRepository is a mock implementation of repository.TicketClassRepository.
type MockTicketClassRepository struct {
	mock.Mock
}

func (m *MockTicketClassRepository) UpdateEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID, classID *uuid.UUID, status entity.EnrollmentStatus, paid bool, paymentID *string) error {
	args := m.Called(ctx, ticketClassID, studentID, classID, status, paid, paymentID)
	return args.Error(0)
}

func (m *MockTicketClassRepository) FindEnrollment(ctx context.Context, ticketClassID, studentID uuid.UUID) (*entity.TicketClassEnrollment, error) {
	args := m.Called(ctx, ticketClassID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TicketClassEnrollment), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentTransaction), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockIdempotencyRepository is a mock implementation of repository.IdempotencyRepository.
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) MarkProcessed(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyRepository) Release(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// MockGateway is a mock implementation of gateway.Service.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) EnsureReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) RequestRedirect(ctx context.Context, payload *gateway.Payload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) ProcessResult(ctx context.Context, params gateway.ResultParams) (*gateway.ResultDecision, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ResultDecision), args.Error(1)
}

type testMocks struct {
	slot        *MockSlotRepository
	order       *MockOrderRepository
	cart        *MockCartRepository
	ticket      *MockTicketClassRepository
	transaction *MockTransactionRepository
	user        *MockUserRepository
	idempotency *MockIdempotencyRepository
	gateway     *MockGateway
}

func newTestMocks() *testMocks {
	return &testMocks{
		slot:        new(MockSlotRepository),
		order:       new(MockOrderRepository),
		cart:        new(MockCartRepository),
		ticket:      new(MockTicketClassRepository),
		transaction: new(MockTransactionRepository),
		user:        new(MockUserRepository),
		idempotency: new(MockIdempotencyRepository),
		gateway:     new(MockGateway),
	}
}

func (m *testMocks) repo() *repository.Repository {
	return &repository.Repository{
		User:        m.user,
		Slot:        m.slot,
		Order:       m.order,
		Cart:        m.cart,
		TicketClass: m.ticket,
		Transaction: m.transaction,
		Idempotency: m.idempotency,
	}
}
