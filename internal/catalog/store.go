package catalog

import "context"

// Store persists and lists product records.
type Store interface {
	// ListAll returns all products, oldest first.
	ListAll(ctx context.Context) ([]Product, error)

	// Create persists a new product and returns it with its assigned id.
	Create(ctx context.Context, p Product) (*Product, error)
}
