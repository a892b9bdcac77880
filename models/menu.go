package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provenance tags where a menu item comes from.
type Provenance string

const (
	ProvenanceBuiltIn Provenance = "builtin"
	ProvenanceCustom  Provenance = "custom"
)

// BranchScopeAll marks a custom item offered at every branch.
const BranchScopeAll = "all"

// MenuItem is either a built-in catalog entry (immutable, excludable) or a
// custom item created by an admin (fully mutable).
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	BranchID    string          `json:"branchId"`
	Provenance  Provenance      `json:"provenance"`
	Excluded    bool            `json:"excluded,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

func (m MenuItem) IsBuiltIn() bool {
	return m.Provenance == ProvenanceBuiltIn
}

// AvailableAt reports whether the item is offered at the branch scope.
func (m MenuItem) AvailableAt(scope string) bool {
	if scope == "" || scope == BranchScopeAll {
		return true
	}
	return m.BranchID == scope || m.BranchID == BranchScopeAll
}
