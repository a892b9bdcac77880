package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/koko-king/models"
)

func TestBuildReceipt(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Chicken Shawarma", UnitPrice: models.Cedis(75), Quantity: 2, Extras: []models.Extra{{Name: "Extra Cheese", Price: models.Cedis(5)}}},
		{Name: "Sprite", UnitPrice: models.Cedis(15), Quantity: 1},
	}
	order := models.Order{
		ID:             "ON-20250301-004",
		Customer:       models.Customer{Name: "Yaw Mensah", Phone: "0551234567", Address: "East Legon"},
		Items:          items,
		DeliveryFee:    models.Cedis(5),
		Total:          models.ComputeTotal(items, models.DeliveryDelivery, models.Cedis(5)),
		OrderType:      models.OrderTypeOnline,
		DeliveryMethod: models.DeliveryDelivery,
		CreatedAt:      time.Date(2025, 3, 1, 13, 45, 0, 0, time.Local),
	}

	text := BuildReceipt(order)
	lines := strings.Split(text, "\n")
	assert.Equal(t, "KOKO KING EXPRESS", lines[0])
	assert.Contains(t, text, "Order ID: ON-20250301-004\n")
	assert.Contains(t, text, "Type: ONLINE\n")
	assert.Contains(t, text, "Date: 2025-03-01 13:45\n")
	assert.Contains(t, text, "Customer: Yaw Mensah\n")
	assert.Contains(t, text, "Address: East Legon\n")
	assert.Contains(t, text, "2x Chicken Shawarma - GH₵160.00\n")
	assert.Contains(t, text, "   + Extra Cheese GH₵10.00\n")
	assert.Contains(t, text, "1x Sprite - GH₵15.00\n")
	assert.Contains(t, text, "Delivery Fee: GH₵5.00\n")
	assert.Contains(t, text, "TOTAL: GH₵180.00\n")
	assert.Equal(t, "receipt-ON-20250301-004.txt", ReceiptFilename(order))
}

func TestBuildReceiptWalkIn(t *testing.T) {
	order := models.Order{
		ID:             "WI-20250301-001",
		Customer:       models.Customer{Name: "Walk-in", Phone: "-"},
		Items:          []models.OrderItem{{Name: "Tea", UnitPrice: models.Cedis(27), Quantity: 1}},
		Total:          models.Cedis(27),
		OrderType:      models.OrderTypeWalkIn,
		DeliveryMethod: models.DeliveryPickup,
	}
	text := BuildReceipt(order)
	assert.Contains(t, text, "Type: WALK-IN\n")
	assert.NotContains(t, text, "Address:")
	assert.NotContains(t, text, "Delivery Fee")
	assert.Contains(t, text, "TOTAL: GH₵27.00\n")
}
