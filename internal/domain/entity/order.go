package entity

import (
	"crypto/rand"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderRefunded       OrderStatus = "REFUNDED"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderOutForDelivery, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	default:
		return false
	}
}

// forwardTransitions is the fulfilment chain; each status maps to the single
// next forward status.
var forwardTransitions = map[OrderStatus]OrderStatus{
	OrderPending:        OrderConfirmed,
	OrderConfirmed:      OrderProcessing,
	OrderProcessing:     OrderShipped,
	OrderShipped:        OrderOutForDelivery,
	OrderOutForDelivery: OrderDelivered,
}

// CanTransition reports whether the caller's role may move an order from s to
// next. Any role that can mutate status may take the next forward step.
// Admins may additionally cancel any order still in the forward chain and
// refund delivered or cancelled orders. Delivery personnel are limited to the
// forward chain.
func (s OrderStatus) CanTransition(next OrderStatus, role Role) bool {
	if s == next {
		return false
	}

	if forwardTransitions[s] == next {
		return true
	}

	if role != RoleAdmin {
		return false
	}

	switch next {
	case OrderCancelled:
		_, inChain := forwardTransitions[s]

		return inChain
	case OrderRefunded:
		return s == OrderDelivered || s == OrderCancelled
	default:
		return false
	}
}

// DeliverySettable reports whether a DELIVERY-role caller may set this status
// at all. PENDING, CANCELLED and REFUNDED are reserved for admins.
func (s OrderStatus) DeliverySettable() bool {
	switch s {
	case OrderConfirmed, OrderProcessing, OrderShipped, OrderOutForDelivery, OrderDelivered:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks payment settlement independently of fulfilment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// IsValid checks if the PaymentStatus is a known value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

// PaymentMethod is how the buyer pays.
type PaymentMethod string

const (
	PaymentUPI PaymentMethod = "UPI"
	PaymentCOD PaymentMethod = "COD"
)

// IsValid checks if the PaymentMethod is a known value.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentUPI || m == PaymentCOD
}

// OrderItem is an order line. Price is the effective unit price snapshotted at
// order time; later catalog changes never affect it.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Product   *Product  `json:"product,omitempty"`
}

// Order is a placed purchase. Total = Subtotal + Tax + Shipping, computed once
// at creation.
type Order struct {
	ID               uuid.UUID     `json:"id"`
	OrderNumber      string        `json:"orderNumber"`
	UserID           uuid.UUID     `json:"userId"`
	User             *PublicUser   `json:"user,omitempty"`
	Items            []*OrderItem  `json:"items"`
	Subtotal         float64       `json:"subtotal"`
	Tax              float64       `json:"tax"`
	Shipping         float64       `json:"shipping"`
	Total            float64       `json:"total"`
	Status           OrderStatus   `json:"status"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	TransactionID    string        `json:"transactionId,omitempty"`
	ShippingAddress  string        `json:"shippingAddress"`
	BillingAddress   string        `json:"billingAddress"`
	Notes            string        `json:"notes,omitempty"`
	DeliveryPersonID *uuid.UUID    `json:"deliveryPersonId,omitempty"`
	DeliveryPerson   *PublicUser   `json:"deliveryPerson,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

const (
	// GSTRate is the flat tax rate applied to every order subtotal.
	GSTRate = 0.18
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 1000.0
	// FlatShippingFee applies to subtotals at or below the threshold.
	FlatShippingFee = 100.0
)

// ComputeTotals derives tax, shipping and total from a subtotal. All amounts
// are rounded to 2 decimals.
func ComputeTotals(subtotal float64) (tax, shipping, total float64) {
	subtotal = RoundMoney(subtotal)
	tax = RoundMoney(subtotal * GSTRate)
	if subtotal > FreeShippingThreshold {
		shipping = 0
	} else {
		shipping = FlatShippingFee
	}
	total = RoundMoney(subtotal + tax + shipping)

	return tax, shipping, total
}

// RoundMoney rounds an amount to 2 decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

const orderNumberSuffixLength = 9

// NewOrderNumber generates a human-readable unique order number of the form
// ORD-<millis>-<random suffix>.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, orderNumberSuffixLength)
	max := big.NewInt(int64(len(referralCodeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		suffix[i] = referralCodeAlphabet[n.Int64()]
	}

	return "ORD-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix)
}
