package models

import "time"

// OrderFilter narrows an order listing. Zero fields match everything.
type OrderFilter struct {
	BranchID       string         `form:"branch"`
	Date           string         `form:"date"` // YYYY-MM-DD, local calendar day of createdAt
	Category       string         `form:"category"`
	Status         OrderStatus    `form:"status"`
	OrderType      OrderType      `form:"type"`
	DeliveryMethod DeliveryMethod `form:"method"`
}

const DateLayout = "2006-01-02"

func (f OrderFilter) Match(o Order) bool {
	if f.BranchID != "" && f.BranchID != BranchScopeAll && o.BranchID != f.BranchID {
		return false
	}
	if f.Date != "" && o.CreatedAt.In(time.Local).Format(DateLayout) != f.Date {
		return false
	}
	if f.Category != "" && f.Category != BranchScopeAll && !o.HasCategory(f.Category) {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.OrderType != "" && o.OrderType != f.OrderType {
		return false
	}
	if f.DeliveryMethod != "" && o.DeliveryMethod != f.DeliveryMethod {
		return false
	}
	return true
}

// Validate rejects malformed filter values.
func (f OrderFilter) Validate() error {
	if f.Date != "" {
		if _, err := time.ParseInLocation(DateLayout, f.Date, time.Local); err != nil {
			return &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + string(f.Status)}
	}
	return nil
}
