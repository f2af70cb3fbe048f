package model

import "time"

// PackageItem is one line of a package: a product reference, a quantity
// and an optional price override. The reference may dangle after the
// product is deleted; consumers exclude dangling lines from totals and
// listings instead of treating them as errors.
type PackageItem struct {
	ProductID   string   `json:"productId"`
	Quantity    int      `json:"quantity"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
}

// Package is a named bundle of line items. Its total is always derived
// from Items and the current catalog, never stored.
type Package struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Items       []PackageItem `json:"items"`
	CreatedAt   time.Time     `json:"createdAt"`
}
