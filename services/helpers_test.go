package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

func init() {
	utils.SetOutput(io.Discard)
}

const testPasskey = "driver2025"

// flakyStore is a memory store whose writes can be switched off.
type flakyStore struct {
	*database.MemoryStore
	failSet atomic.Bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet.Load() {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type fixture struct {
	blobs    *flakyStore
	store    *OrderStore
	registry *Registry
	svc      *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	blobs := &flakyStore{MemoryStore: database.NewMemoryStore()}
	store := NewOrderStore(blobs)
	registry := NewRegistry(blobs, testPasskey)
	require.NoError(t, registry.Seed(context.Background()))
	return &fixture{
		blobs:    blobs,
		store:    store,
		registry: registry,
		svc:      NewOrderService(store, registry, models.Cedis(5)),
	}
}

func wrapLine() CheckoutLine {
	return CheckoutLine{Name: "Wrap", UnitPrice: models.Cedis(75), Quantity: 1, Category: "wraps", Extras: []models.Extra{}}
}

func pickupRequest(lines ...CheckoutLine) CheckoutRequest {
	if len(lines) == 0 {
		lines = []CheckoutLine{wrapLine()}
	}
	return CheckoutRequest{
		Customer:       models.Customer{Name: "Kwame", Phone: "0241234567"},
		Items:          lines,
		DeliveryMethod: models.DeliveryPickup,
		PaymentMethod:  "cash",
		BranchID:       "branch-osu",
	}
}

func deliveryRequest(lines ...CheckoutLine) CheckoutRequest {
	req := pickupRequest(lines...)
	req.DeliveryMethod = models.DeliveryDelivery
	req.Customer.Address = "12 Oxford Street, Osu"
	return req
}
