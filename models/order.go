package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusCompleted,
	StatusCancelled,
}

// IsTerminal reports whether no transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type OrderType string

const (
	OrderTypeWalkIn OrderType = "walk-in"
	OrderTypeOnline OrderType = "online"
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile-money"
	PaymentCard        PaymentMethod = "card"
)

// ParsePaymentMethod accepts the storefront's legacy "momo" spelling.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash", "":
		return PaymentCash, true
	case "mobile-money", "momo", "mobile_money":
		return PaymentMobileMoney, true
	case "card":
		return PaymentCard, true
	}
	return "", false
}

// Order is the central record owned by the order store. Items, Total and
// BranchID are fixed at creation.
type Order struct {
	ID             string          `json:"id"`
	Customer       Customer        `json:"customer"`
	Items          []OrderItem     `json:"items"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	OrderType      OrderType       `json:"orderType"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	BranchID       string          `json:"branchId"`
	CreatedAt      time.Time       `json:"createdAt"`

	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
	ReadyAt      *time.Time `json:"readyAt,omitempty"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	PreparedBy   string     `json:"preparedBy,omitempty"`
	DriverID     string     `json:"driverId,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`

	History []StatusChange `json:"history,omitempty"`
}

// StatusChange is one applied lifecycle transition.
type StatusChange struct {
	From OrderStatus `json:"from"`
	To   OrderStatus `json:"to"`
	Role Role        `json:"role"`
	At   time.Time   `json:"at"`
	Note string      `json:"note,omitempty"`
}

// OrderTracking is the public view of an order: progress only, no contact
// details or audit trail.
type OrderTracking struct {
	ID             string          `json:"id"`
	Status         OrderStatus     `json:"status"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"createdAt"`
	ConfirmedAt    *time.Time      `json:"confirmedAt,omitempty"`
	ReadyAt        *time.Time      `json:"readyAt,omitempty"`
	DispatchedAt   *time.Time      `json:"dispatchedAt,omitempty"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
}

// Tracking projects the order onto its public view.
func (o Order) Tracking() OrderTracking {
	return OrderTracking{
		ID:             o.ID,
		Status:         o.Status,
		DeliveryMethod: o.DeliveryMethod,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt,
		ConfirmedAt:    cloneTime(o.ConfirmedAt),
		ReadyAt:        cloneTime(o.ReadyAt),
		DispatchedAt:   cloneTime(o.DispatchedAt),
		CompletedAt:    cloneTime(o.CompletedAt),
	}
}

// HasCategory reports whether any line belongs to the category.
func (o *Order) HasCategory(category string) bool {
	for _, item := range o.Items {
		if strings.EqualFold(item.Category, category) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share slices with the store.
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]OrderItem, len(o.Items))
		for i, item := range o.Items {
			out.Items[i] = item
			if item.Extras != nil {
				out.Items[i].Extras = append([]Extra(nil), item.Extras...)
			}
		}
	}
	if o.History != nil {
		out.History = append([]StatusChange(nil), o.History...)
	}
	out.ConfirmedAt = cloneTime(o.ConfirmedAt)
	out.ReadyAt = cloneTime(o.ReadyAt)
	out.DispatchedAt = cloneTime(o.DispatchedAt)
	out.CompletedAt = cloneTime(o.CompletedAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
