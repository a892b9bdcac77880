package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/models"
)

// OrderStore owns the order list persisted under the "orders" key.
//
// The list-level read-modify-write is serialized by mu, so appends and writes
// to different orders never lose each other. Update is NOT serialized across
// its read and write phases: two overlapping updates of the same order
// resolve as last-writer-wins on the whole record. Mutate builds its patch
// from the stored record inside mu, for changes that depend on the current
// status.
type OrderStore struct {
	blobs database.BlobStore
	mu    sync.Mutex
	now   func() time.Time

	// beforeWrite runs between Update's read and write phases, and before
	// Mutate takes the lock; tests only.
	beforeWrite func(id string)
}

func NewOrderStore(blobs database.BlobStore) *OrderStore {
	return &OrderStore{blobs: blobs, now: time.Now}
}

// OrderPatch lists the mutable fields of an order. Nil fields are left as
// they were in the snapshot.
type OrderPatch struct {
	Status        *models.OrderStatus
	ConfirmedAt   *time.Time
	ReadyAt       *time.Time
	DispatchedAt  *time.Time
	CompletedAt   *time.Time
	PreparedBy    *string
	DriverID      *string
	CancelReason  *string
	Phone         *string
	Address       *string
	AppendHistory []models.StatusChange
}

func (p OrderPatch) apply(o *models.Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.ConfirmedAt != nil {
		o.ConfirmedAt = p.ConfirmedAt
	}
	if p.ReadyAt != nil {
		o.ReadyAt = p.ReadyAt
	}
	if p.DispatchedAt != nil {
		o.DispatchedAt = p.DispatchedAt
	}
	if p.CompletedAt != nil {
		o.CompletedAt = p.CompletedAt
	}
	if p.PreparedBy != nil {
		o.PreparedBy = *p.PreparedBy
	}
	if p.DriverID != nil {
		o.DriverID = *p.DriverID
	}
	if p.CancelReason != nil {
		o.CancelReason = *p.CancelReason
	}
	if p.Phone != nil {
		o.Customer.Phone = *p.Phone
	}
	if p.Address != nil {
		o.Customer.Address = *p.Address
	}
	o.History = append(o.History, p.AppendHistory...)
}

// Append validates and inserts a new order in pending status, issuing its id
// and createdAt. Items, total and branch are taken as given.
func (s *OrderStore) Append(ctx context.Context, order models.Order) (string, error) {
	if err := validateNewOrder(order); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := database.LoadList[models.Order](ctx, s.blobs, database.KeyOrders)
	if err != nil {
		return "", fmt.Errorf("append order: %w", err)
	}

	now := s.now()
	order = order.Clone()
	order.ID = nextOrderID(orders, order.OrderType, now)
	order.Status = models.StatusPending
	order.CreatedAt = now
	order.History = nil

	orders = append(orders, order)
	if err := database.SaveList(ctx, s.blobs, database.KeyOrders, orders); err != nil {
		return "", fmt.Errorf("append order: %w", err)
	}
	return order.ID, nil
}

func validateNewOrder(o models.Order) error {
	if len(o.Items) == 0 {
		return &models.ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	for i, item := range o.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Name) == "" {
			return &models.ValidationError{Field: field + ".name", Message: "item name is required"}
		}
		if item.Quantity < 1 {
			return &models.ValidationError{Field: field + ".quantity", Message: "quantity must be at least 1"}
		}
		if item.UnitPrice.IsNegative() {
			return &models.ValidationError{Field: field + ".unitPrice", Message: "price must not be negative"}
		}
		for _, extra := range item.Extras {
			if extra.Price.IsNegative() {
				return &models.ValidationError{Field: field + ".extras", Message: "extra price must not be negative"}
			}
		}
	}
	if !o.DeliveryMethod.Valid() {
		return &models.ValidationError{Field: "deliveryMethod", Message: "delivery method must be pickup or delivery"}
	}
	if o.Total.IsNegative() {
		return &models.ValidationError{Field: "total", Message: "total must not be negative"}
	}
	if strings.TrimSpace(o.BranchID) == "" {
		return &models.ValidationError{Field: "branchId", Message: "branch is required"}
	}
	return o.Customer.Validate(o.DeliveryMethod)
}

// nextOrderID issues WI-/ON-YYYYMMDD-NNN, one past the highest sequence
// already used for that prefix and day.
func nextOrderID(orders []models.Order, orderType models.OrderType, now time.Time) string {
	prefix := "ON"
	if orderType == models.OrderTypeWalkIn {
		prefix = "WI"
	}
	stem := fmt.Sprintf("%s-%s-", prefix, now.Format("20060102"))

	seq := 0
	for _, o := range orders {
		if !strings.HasPrefix(o.ID, stem) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(o.ID, stem)); err == nil && n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("%s%03d", stem, seq+1)
}

// List returns copies of the orders matching filter, in storage order.
func (s *OrderStore) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	orders, err := database.LoadList[models.Order](ctx, s.blobs, database.KeyOrders)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderStore) Get(ctx context.Context, id string) (models.Order, error) {
	s.mu.Lock()
	orders, err := database.LoadList[models.Order](ctx, s.blobs, database.KeyOrders)
	s.mu.Unlock()
	if err != nil {
		return models.Order{}, fmt.Errorf("get order: %w", err)
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, &models.NotFoundError{Kind: "order", ID: id}
}

// Update reads the current record, applies patch to that snapshot and writes
// the whole record back.
func (s *OrderStore) Update(ctx context.Context, id string, patch OrderPatch) (models.Order, error) {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	patch.apply(&snapshot)

	if s.beforeWrite != nil {
		s.beforeWrite(id)
	}
	if err := s.Save(ctx, snapshot); err != nil {
		return models.Order{}, err
	}
	return snapshot, nil
}

// Mutate loads the stored record under mu and hands a copy to build. A nil
// patch leaves the record untouched; an error from build is returned with
// the stored record and nothing is written.
func (s *OrderStore) Mutate(ctx context.Context, id string, build func(current models.Order) (*OrderPatch, error)) (models.Order, error) {
	if s.beforeWrite != nil {
		s.beforeWrite(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := database.LoadList[models.Order](ctx, s.blobs, database.KeyOrders)
	if err != nil {
		return models.Order{}, fmt.Errorf("mutate order: %w", err)
	}
	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, &models.NotFoundError{Kind: "order", ID: id}
	}

	current := orders[idx].Clone()
	patch, err := build(current.Clone())
	if err != nil {
		return current, err
	}
	if patch == nil {
		return current, nil
	}

	next := current.Clone()
	patch.apply(&next)
	orders[idx] = next
	if err := database.SaveList(ctx, s.blobs, database.KeyOrders, orders); err != nil {
		return models.Order{}, fmt.Errorf("mutate order: %w", err)
	}
	return next, nil
}

// Save overwrites the stored record with the caller's snapshot. Fields fixed
// at creation are kept from the stored record.
func (s *OrderStore) Save(ctx context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := database.LoadList[models.Order](ctx, s.blobs, database.KeyOrders)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	idx := -1
	for i := range orders {
		if orders[i].ID == order.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &models.NotFoundError{Kind: "order", ID: order.ID}
	}

	stored := orders[idx]
	next := order.Clone()
	next.Items = stored.Items
	next.Total = stored.Total
	next.DeliveryFee = stored.DeliveryFee
	next.BranchID = stored.BranchID
	next.OrderType = stored.OrderType
	next.DeliveryMethod = stored.DeliveryMethod
	next.CreatedAt = stored.CreatedAt
	orders[idx] = next

	if err := database.SaveList(ctx, s.blobs, database.KeyOrders, orders); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}
