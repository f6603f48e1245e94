package stock

import (
	"context"

	"catalog-sync-srv/internal/model"
)

//go:generate mockery --name Resolver
type Resolver interface {
	// Get computes the effective in-stock flag for a product in a store
	// scope. When parent is supplied the product is evaluated as a variant:
	// the result is the conjunction of the standalone child and parent
	// results. "Out of stock" and "not assigned" are valid false results,
	// not errors.
	Get(ctx context.Context, product model.Product, store model.Store, parent *model.Product) (bool, error)
}
