package models

import "github.com/shopspring/decimal"

// OrderItem is a snapshot of a menu line at checkout time. Historical orders
// keep the name even when the catalog entry is later excluded or removed.
type OrderItem struct {
	MenuItemID string          `json:"menuItemId,omitempty"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	Category   string          `json:"category"`
	Extras     []Extra         `json:"extras"`
}

type Extra struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineTotal -> (unitPrice + sum(extras)) * quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	each := i.UnitPrice
	for _, extra := range i.Extras {
		each = each.Add(extra.Price)
	}
	return each.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal sums the lines and adds the delivery fee for delivery orders.
func ComputeTotal(items []OrderItem, method DeliveryMethod, deliveryFee decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	if method == DeliveryDelivery {
		total = total.Add(deliveryFee)
	}
	return total
}
