package model

// Product is a catalog entry with a unit price. IDs are opaque strings:
// generated ones are UUIDs, but imported rows may carry arbitrary ids.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
}
