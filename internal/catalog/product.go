package catalog

import "time"

// Product is a marketplace listing. Creator holds the user id of the
// identity that composed the listing, never profile data.
type Product struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	PriceCents  int64
	CreatorID   string
	CreatedAt   time.Time
}
