package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/koko-king/metrics"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/statemachine"
	"github.com/yeremiapane/koko-king/utils"
)

// OrderService creates orders and moves them through the lifecycle.
type OrderService struct {
	store       *OrderStore
	registry    *Registry
	deliveryFee decimal.Decimal
	now         func() time.Time
}

func NewOrderService(store *OrderStore, registry *Registry, deliveryFee decimal.Decimal) *OrderService {
	return &OrderService{store: store, registry: registry, deliveryFee: deliveryFee, now: time.Now}
}

func (s *OrderService) Store() *OrderStore {
	return s.store
}

// CheckoutLine is one cart line. When MenuItemID names an item on the menu,
// name, price and category come from the catalog.
type CheckoutLine struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Category   string          `json:"category"`
	Extras     []models.Extra  `json:"extras"`
}

type CheckoutRequest struct {
	Customer       models.Customer       `json:"customer"`
	Items          []CheckoutLine        `json:"items"`
	DeliveryMethod models.DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  string                `json:"paymentMethod"`
	BranchID       string                `json:"branchId"`
	Lat            *float64              `json:"lat"`
	Lng            *float64              `json:"lng"`
}

// PlaceOnline creates a customer checkout order.
func (s *OrderService) PlaceOnline(ctx context.Context, req CheckoutRequest) (models.Order, error) {
	return s.place(ctx, req, models.OrderTypeOnline)
}

// PlaceWalkIn creates a counter order entered at the kitchen terminal. It is
// always a pickup order.
func (s *OrderService) PlaceWalkIn(ctx context.Context, req CheckoutRequest) (models.Order, error) {
	req.DeliveryMethod = models.DeliveryPickup
	return s.place(ctx, req, models.OrderTypeWalkIn)
}

func (s *OrderService) place(ctx context.Context, req CheckoutRequest, orderType models.OrderType) (models.Order, error) {
	if req.DeliveryMethod == "" {
		req.DeliveryMethod = models.DeliveryPickup
	}
	if !req.DeliveryMethod.Valid() {
		return models.Order{}, &models.ValidationError{Field: "deliveryMethod", Message: "delivery method must be pickup or delivery"}
	}
	payment, ok := models.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return models.Order{}, &models.ValidationError{Field: "paymentMethod", Message: "payment method must be cash, mobile-money or card"}
	}
	if err := req.Customer.Validate(req.DeliveryMethod); err != nil {
		return models.Order{}, err
	}

	branchID, err := s.resolveBranch(ctx, req)
	if err != nil {
		return models.Order{}, err
	}
	items, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return models.Order{}, err
	}

	fee := decimal.Zero
	if req.DeliveryMethod == models.DeliveryDelivery {
		fee = s.deliveryFee
	}
	order := models.Order{
		Customer:       req.Customer,
		Items:          items,
		DeliveryFee:    fee,
		Total:          models.ComputeTotal(items, req.DeliveryMethod, fee),
		OrderType:      orderType,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  payment,
		BranchID:       branchID,
	}

	id, err := s.store.Append(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	metrics.OrdersCreated.WithLabelValues(string(orderType)).Inc()
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": id,
		"type":     orderType,
		"branch":   branchID,
		"total":    order.Total.StringFixed(2),
	}).Info("Order placed")

	return s.store.Get(ctx, id)
}

func (s *OrderService) resolveBranch(ctx context.Context, req CheckoutRequest) (string, error) {
	if id := strings.TrimSpace(req.BranchID); id != "" {
		if _, err := s.registry.GetBranch(ctx, id); err != nil {
			var nErr *models.NotFoundError
			if errors.As(err, &nErr) {
				return "", &models.ValidationError{Field: "branchId", Message: "unknown branch " + id}
			}
			return "", err
		}
		return id, nil
	}
	if req.Lat != nil && req.Lng != nil {
		b, _, err := s.registry.NearestBranch(ctx, *req.Lat, *req.Lng)
		if err != nil {
			var nErr *models.NotFoundError
			if errors.As(err, &nErr) {
				return "", &models.ValidationError{Field: "branchId", Message: "no branch can serve this location"}
			}
			return "", err
		}
		return b.ID, nil
	}
	return "", &models.ValidationError{Field: "branchId", Message: "branch is required"}
}

func (s *OrderService) resolveLines(ctx context.Context, lines []CheckoutLine) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, &models.ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	items := make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		item := models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       strings.TrimSpace(line.Name),
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			Category:   strings.TrimSpace(line.Category),
			Extras:     line.Extras,
		}
		if line.MenuItemID != "" {
			menuItem, err := s.registry.FindItem(ctx, line.MenuItemID)
			if err != nil {
				var nErr *models.NotFoundError
				if errors.As(err, &nErr) {
					return nil, &models.ValidationError{Field: fmt.Sprintf("items[%d].menuItemId", i), Message: "item is not on the menu"}
				}
				return nil, err
			}
			item.Name = menuItem.Name
			item.UnitPrice = menuItem.Price
			item.Category = menuItem.Category
		}
		if item.Extras == nil {
			item.Extras = []models.Extra{}
		}
		items = append(items, item)
	}
	return items, nil
}

// TransitionMeta carries the optional side data of a transition.
type TransitionMeta struct {
	Chef     string
	DriverID string
	Reason   string
	Note     string
}

// AttemptTransition moves order id to target on behalf of role. Legality is
// checked against the stored status under the store lock. Requesting the
// current status is a no-op that returns the record unchanged.
func (s *OrderService) AttemptTransition(ctx context.Context, id string, target models.OrderStatus, role models.Role, meta TransitionMeta) (models.Order, error) {
	var from models.OrderStatus
	changed := false
	updated, err := s.store.Mutate(ctx, id, func(current models.Order) (*OrderPatch, error) {
		from = current.Status
		if current.Status == target {
			return nil, nil
		}
		if err := statemachine.CanTransition(current.Status, target, role, current.DeliveryMethod); err != nil {
			return nil, err
		}
		changed = true
		return transitionPatch(current.Status, target, role, meta, s.now()), nil
	})
	if err != nil {
		s.reject(err)
		var tErr *models.IllegalTransitionError
		if errors.As(err, &tErr) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"order_id": id,
				"from":     from,
				"to":       target,
				"role":     role,
			}).Warn("Transition refused")
			return updated, err
		}
		return models.Order{}, err
	}
	if !changed {
		return updated, nil
	}

	metrics.Transitions.WithLabelValues(string(from), string(target), string(role)).Inc()
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     from,
		"to":       target,
		"role":     role,
	}).Info("Order status updated")
	return updated, nil
}

// transitionPatch sets the status, its timestamp and side data, and appends
// the history entry.
func transitionPatch(from, target models.OrderStatus, role models.Role, meta TransitionMeta, now time.Time) *OrderPatch {
	patch := &OrderPatch{
		Status: &target,
		AppendHistory: []models.StatusChange{{
			From: from,
			To:   target,
			Role: role,
			At:   now,
			Note: meta.Note,
		}},
	}
	switch target {
	case models.StatusConfirmed:
		patch.ConfirmedAt = &now
	case models.StatusPreparing:
		if chef := strings.TrimSpace(meta.Chef); chef != "" {
			patch.PreparedBy = &chef
		}
	case models.StatusReady:
		patch.ReadyAt = &now
	case models.StatusOutForDelivery:
		patch.DispatchedAt = &now
		if meta.DriverID != "" {
			patch.DriverID = &meta.DriverID
		}
	case models.StatusCompleted:
		patch.CompletedAt = &now
	case models.StatusCancelled:
		patch.CompletedAt = &now
		if reason := strings.TrimSpace(meta.Reason); reason != "" {
			patch.CancelReason = &reason
		}
	}
	return patch
}

func (s *OrderService) reject(err error) {
	var (
		tErr *models.IllegalTransitionError
		nErr *models.NotFoundError
	)
	reason := metrics.ReasonStorage
	switch {
	case errors.As(err, &tErr):
		reason = metrics.ReasonIllegal
	case errors.As(err, &nErr):
		reason = metrics.ReasonNotFound
	}
	metrics.TransitionRejections.WithLabelValues(reason).Inc()
}

// ValidNext lists the states role may move order to.
func (s *OrderService) ValidNext(order models.Order, role models.Role) []models.OrderStatus {
	return statemachine.ValidNext(order.Status, role, order.DeliveryMethod)
}

// CorrectContact lets a driver fix the phone or address of a delivery order
// that is still in flight.
func (s *OrderService) CorrectContact(ctx context.Context, id string, phone, address *string) (models.Order, error) {
	if phone != nil && strings.TrimSpace(*phone) == "" {
		return models.Order{}, &models.ValidationError{Field: "phone", Message: "phone must not be empty"}
	}
	if address != nil && strings.TrimSpace(*address) == "" {
		return models.Order{}, &models.ValidationError{Field: "address", Message: "address must not be empty"}
	}
	order, err := s.store.Mutate(ctx, id, func(current models.Order) (*OrderPatch, error) {
		if current.DeliveryMethod != models.DeliveryDelivery {
			return nil, &models.ValidationError{Field: "deliveryMethod", Message: "only delivery orders have contact details to correct"}
		}
		if current.Status.IsTerminal() {
			return nil, &models.ValidationError{Field: "status", Message: "order is already " + string(current.Status)}
		}
		return &OrderPatch{Phone: phone, Address: address}, nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}
