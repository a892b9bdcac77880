package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

const receiptRule = "=================="

// BuildReceipt renders the plain-text customer receipt.
func BuildReceipt(order models.Order) string {
	var b strings.Builder

	orderType := "ONLINE"
	if order.OrderType == models.OrderTypeWalkIn {
		orderType = "WALK-IN"
	}

	b.WriteString("KOKO KING EXPRESS\n")
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Type: %s\n", orderType)
	fmt.Fprintf(&b, "Date: %s\n", order.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Customer: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Customer.Phone)
	if order.Customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", order.Customer.Address)
	}

	b.WriteString("\nITEMS:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.Name, utils.FormatCedi(item.LineTotal()))
		qty := decimal.NewFromInt(int64(item.Quantity))
		for _, extra := range item.Extras {
			fmt.Fprintf(&b, "   + %s %s\n", extra.Name, utils.FormatCedi(extra.Price.Mul(qty)))
		}
	}

	if order.DeliveryMethod == models.DeliveryDelivery {
		fmt.Fprintf(&b, "\nDelivery Fee: %s\n", utils.FormatCedi(order.DeliveryFee))
	}
	fmt.Fprintf(&b, "TOTAL: %s\n", utils.FormatCedi(order.Total))
	b.WriteString(receiptRule + "\n")
	return b.String()
}

// ReceiptFilename is the download name for an order's receipt.
func ReceiptFilename(order models.Order) string {
	return "receipt-" + order.ID + ".txt"
}
