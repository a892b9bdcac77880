package models

import "strings"

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Validate checks contact details; address is only required for delivery.
func (c Customer) Validate(method DeliveryMethod) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "customer.name", Message: "customer name is required"}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &ValidationError{Field: "customer.phone", Message: "customer phone is required"}
	}
	if method == DeliveryDelivery && strings.TrimSpace(c.Address) == "" {
		return &ValidationError{Field: "customer.address", Message: "delivery address is required for delivery orders"}
	}
	return nil
}
