package kv

// Slot names for the two persisted collections. Each slot holds one
// JSON-encoded array.
const (
	SlotProducts = "products"
	SlotPackages = "packages"
)

// Store is a minimal named-slot byte store. Satisfied by BoltStore and
// by the in-memory store used in tests.
type Store interface {
	// Get returns the bytes stored under slot, or nil if the slot has
	// never been written.
	Get(slot string) ([]byte, error)

	// Put overwrites the bytes stored under slot.
	Put(slot string, data []byte) error

	Close() error
}
