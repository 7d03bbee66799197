package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_ShippingThreshold(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		wantTax      float64
		wantShipping float64
		wantTotal    float64
	}{
		{name: "below threshold pays flat shipping", subtotal: 500, wantTax: 90, wantShipping: 100, wantTotal: 690},
		{name: "at threshold still pays shipping", subtotal: 1000, wantTax: 180, wantShipping: 100, wantTotal: 1280},
		{name: "above threshold ships free", subtotal: 1000.01, wantTax: 180, wantShipping: 0, wantTotal: 1180.01},
		{name: "large order", subtotal: 2500, wantTax: 450, wantShipping: 0, wantTotal: 2950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, shipping, total := ComputeTotals(tt.subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantShipping, shipping)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestComputeTotals_TaxRounding(t *testing.T) {
	// 333.33 * 0.18 = 59.9994, must round to 59.99 + 0.01 territory, not carry
	// float dust into the total.
	tax, shipping, total := ComputeTotals(333.33)
	assert.Equal(t, 60.0, tax)
	assert.Equal(t, 100.0, shipping)
	assert.Equal(t, 493.33, total)
	assert.Equal(t, total, RoundMoney(333.33+tax+shipping))
}

func TestOrderStatus_ForwardChain(t *testing.T) {
	chain := []OrderStatus{
		OrderPending, OrderConfirmed, OrderProcessing,
		OrderShipped, OrderOutForDelivery, OrderDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransition(chain[i+1], RoleDelivery),
			"%s -> %s should be allowed for delivery", chain[i], chain[i+1])
		assert.True(t, chain[i].CanTransition(chain[i+1], RoleAdmin),
			"%s -> %s should be allowed for admin", chain[i], chain[i+1])
	}
}

func TestOrderStatus_NoBackwardTransitions(t *testing.T) {
	// Regressions like DELIVERED -> PENDING must be rejected for every role.
	assert.False(t, OrderDelivered.CanTransition(OrderPending, RoleAdmin))
	assert.False(t, OrderShipped.CanTransition(OrderConfirmed, RoleAdmin))
	assert.False(t, OrderConfirmed.CanTransition(OrderPending, RoleDelivery))
}

func TestOrderStatus_AdminOnlySideStates(t *testing.T) {
	assert.True(t, OrderPending.CanTransition(OrderCancelled, RoleAdmin))
	assert.True(t, OrderOutForDelivery.CanTransition(OrderCancelled, RoleAdmin))
	assert.True(t, OrderDelivered.CanTransition(OrderRefunded, RoleAdmin))
	assert.True(t, OrderCancelled.CanTransition(OrderRefunded, RoleAdmin))

	assert.False(t, OrderPending.CanTransition(OrderCancelled, RoleDelivery))
	assert.False(t, OrderDelivered.CanTransition(OrderRefunded, RoleDelivery))
	assert.False(t, OrderDelivered.CanTransition(OrderCancelled, RoleAdmin),
		"delivered orders are refunded, not cancelled")
	assert.False(t, OrderRefunded.CanTransition(OrderPending, RoleAdmin),
		"refunded is terminal")
}

func TestOrderStatus_DeliverySettable(t *testing.T) {
	assert.True(t, OrderConfirmed.DeliverySettable())
	assert.True(t, OrderDelivered.DeliverySettable())
	assert.False(t, OrderPending.DeliverySettable())
	assert.False(t, OrderCancelled.DeliverySettable())
	assert.False(t, OrderRefunded.DeliverySettable())
}

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	number := NewOrderNumber(now)

	parts := strings.SplitN(number, "-", 3)
	assert.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, "1740830400000", parts[1])
	assert.Len(t, parts[2], orderNumberSuffixLength)

	other := NewOrderNumber(now)
	assert.NotEqual(t, number, other, "random suffix should differ")
}

func TestEffectivePrice(t *testing.T) {
	sale := 79.0
	p := &Product{Price: 99}
	assert.Equal(t, 99.0, p.EffectivePrice())

	p.SalePrice = &sale
	assert.Equal(t, 79.0, p.EffectivePrice())
}
