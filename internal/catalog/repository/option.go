package repository

import "time"

// ListProductsOptions filters the product read model. Empty fields are
// skipped; all provided filters combine with AND.
type ListProductsOptions struct {
	IDs          []int64
	WebsiteID    int64
	TypeID       string
	Status       int
	UpdatedSince *time.Time
	Limit        int
	Offset       int
}
