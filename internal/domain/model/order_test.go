package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	require.True(t, OrderStatusPending.IsValid())
	require.True(t, OrderStatusCancelled.IsValid())
	require.False(t, OrderStatus("refunded").IsValid())
	require.False(t, OrderStatus("").IsValid())
}

func TestOrderStatusIsCancellable(t *testing.T) {
	require.True(t, OrderStatusPending.IsCancellable())
	require.True(t, OrderStatusConfirmed.IsCancellable())
	require.True(t, OrderStatusProcessing.IsCancellable())
	require.False(t, OrderStatusShipped.IsCancellable())
	require.False(t, OrderStatusDelivered.IsCancellable())
	require.False(t, OrderStatusCancelled.IsCancellable())
}

func TestOrderStatusIsTerminal(t *testing.T) {
	require.True(t, OrderStatusDelivered.IsTerminal())
	require.True(t, OrderStatusCancelled.IsTerminal())
	require.False(t, OrderStatusPending.IsTerminal())
	require.False(t, OrderStatusShipped.IsTerminal())
}

func TestPaymentMethodIsValid(t *testing.T) {
	require.True(t, PaymentMethodCOD.IsValid())
	require.True(t, PaymentMethodBankTransfer.IsValid())
	require.True(t, PaymentMethodMomo.IsValid())
	require.True(t, PaymentMethodVNPay.IsValid())
	require.False(t, PaymentMethod("paypal").IsValid())
}

func TestOrderTransitionTo(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	err := order.TransitionTo(OrderStatusConfirmed, "confirmed by staff")
	require.NoError(t, err)
	require.Equal(t, OrderStatusConfirmed, order.Status)
	require.Equal(t, "confirmed by staff", order.AdminNote)

	err = order.TransitionTo(OrderStatusDelivered, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, OrderStatusConfirmed, order.Status)
}

func TestOrderTransitionToDelivered(t *testing.T) {
	order := &Order{Status: OrderStatusShipped}

	err := order.TransitionTo(OrderStatusDelivered, "")
	require.NoError(t, err)
	require.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
}

func TestOrderTransitionToCancelled(t *testing.T) {
	order := &Order{Status: OrderStatusConfirmed}

	err := order.TransitionTo(OrderStatusCancelled, "khách hàng đổi ý không muốn mua nữa")
	require.NoError(t, err)
	require.Equal(t, OrderStatusCancelled, order.Status)
	require.Equal(t, "khách hàng đổi ý không muốn mua nữa", order.CancelReason)
}

func TestOrderMarkAsPaid(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	result := PaymentResult{TransactionID: "txn-1", Status: "COMPLETED"}

	err := order.MarkAsPaid(result)
	require.NoError(t, err)
	require.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	require.Equal(t, result, order.PaymentResult)

	// 重複標記付款
	err = order.MarkAsPaid(result)
	require.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestOrderNumber(t *testing.T) {
	order := &Order{OrderID: "0d9bbbc1-7a85-4bd0-9f66-1ae3580a1d22"}
	require.Equal(t, "580A1D22", order.OrderNumber())

	short := &Order{OrderID: "abc123"}
	require.Equal(t, "ABC123", short.OrderNumber())
}
