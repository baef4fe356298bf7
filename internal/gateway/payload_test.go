package gateway

import (
	"encoding/json"
	"testing"

	"driveschool-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCode(t *testing.T) {
	code := CustomerCode("user-id-abcd", "order-id-wxyz")
	assert.Equal(t, "abcdwxyz", code)
	assert.Len(t, code, 8)

	// Short inputs are used whole.
	assert.Equal(t, "ab1234", CustomerCode("ab", "cd1234"))
}

func TestBuildPayload_UsesProfileWhenPresent(t *testing.T) {
	order := &entity.Order{
		Base:        entity.Base{ID: uuid.New()},
		OrderNumber: "ORD-20260901-080000-0001",
		UserID:      uuid.New(),
		OrderType:   entity.OrderTypeDrivingTest,
		Total:       50,
	}
	user := &entity.User{
		Base:      entity.Base{ID: order.UserID},
		FirstName: "Avery",
		LastName:  "Nguyen",
		Email:     "avery@example.com",
		Phone:     "5551234567",
	}

	payload := BuildPayload(order, user)

	assert.Equal(t, "Avery", payload.FirstName)
	assert.Equal(t, "Nguyen", payload.LastName)
	assert.Equal(t, "avery@example.com", payload.Email)
	assert.Equal(t, "5551234567", payload.Phone)
	assert.Equal(t, CustomerCode(order.UserID.String(), order.ID.String()), payload.CustomerCode)
}

func TestBuildPayload_FallsBackToPlaceholders(t *testing.T) {
	order := &entity.Order{
		Base:      entity.Base{ID: uuid.New()},
		UserID:    uuid.New(),
		OrderType: entity.OrderTypeGeneral,
		Total:     10,
	}

	// Missing profile entirely.
	payload := BuildPayload(order, nil)
	assert.Equal(t, "Student", payload.FirstName)
	assert.Equal(t, "Unknown", payload.LastName)
	assert.Equal(t, "no-email@unknown.invalid", payload.Email)
	assert.Equal(t, "0000000000", payload.Phone)

	// Partial profile keeps what it has.
	payload = BuildPayload(order, &entity.User{FirstName: "Sam"})
	assert.Equal(t, "Sam", payload.FirstName)
	assert.Equal(t, "Unknown", payload.LastName)
}

func TestPayloadWire_RepeatsIdentifiersUnderEveryAlias(t *testing.T) {
	payload := &Payload{
		UserID:      "user-1234",
		OrderID:     "order-5678",
		OrderNumber: "ORD-1",
		OrderType:   "driving_test",
		Amount:      50,
	}

	raw, err := json.Marshal(payload.toWire())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{"userId", "user_id", "studentId"} {
		assert.Equal(t, "user-1234", fields[key], key)
	}
	for _, key := range []string{"orderId", "order_id"} {
		assert.Equal(t, "order-5678", fields[key], key)
	}
	assert.Equal(t, 50.0, fields["amount"])
	assert.Equal(t, 50.0, fields["total"])
}
