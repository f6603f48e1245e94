package stock

import (
	"context"
	"fmt"

	catalogRepo "catalog-sync-srv/internal/catalog/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/log"
)

type implResolver struct {
	l      log.Logger
	repo   catalogRepo.Repository
	method Method
}

// New creates a stock resolver using the given calculation method.
func New(l log.Logger, repo catalogRepo.Repository, method Method) (Resolver, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return &implResolver{
		l:      l,
		repo:   repo,
		method: method,
	}, nil
}

func (r *implResolver) Get(ctx context.Context, product model.Product, store model.Store, parent *model.Product) (bool, error) {
	// Variant context: child AND parent, each evaluated standalone. A parent
	// that is out of stock or not assigned forces the variant out of stock.
	if parent != nil {
		childInStock, err := r.standalone(ctx, product, store)
		if err != nil {
			return false, err
		}
		if !childInStock {
			return false, nil
		}
		return r.standalone(ctx, *parent, store)
	}

	return r.standalone(ctx, product, store)
}

// standalone evaluates one product in one store scope without parent rules.
func (r *implResolver) standalone(ctx context.Context, product model.Product, store model.Store) (bool, error) {
	// Website assignment dominates all other logic.
	if !product.AssignedToWebsite(store.WebsiteID) {
		return false, nil
	}

	// Composites carry their own aggregate stock flag, set during save. It
	// is trusted as-is rather than re-derived from children at read time,
	// so composites flow through the same method dispatch below.
	switch r.method {
	case MethodStockItem:
		item, err := r.repo.GetStockItem(ctx, product.ID)
		if err != nil {
			return false, fmt.Errorf("stock.resolver.Get: %w", err)
		}
		return item.IsInStock, nil

	case MethodStockRegistry:
		items, err := r.repo.ListStockItems(ctx, []int64{product.ID})
		if err != nil {
			return false, fmt.Errorf("stock.resolver.Get: %w", err)
		}
		item, ok := items[product.ID]
		if !ok {
			return false, nil
		}
		return item.IsInStock, nil

	case MethodIsAvailable:
		return product.IsAvailable, nil

	case MethodIsSalable:
		item, err := r.repo.GetStockItem(ctx, product.ID)
		if err != nil {
			return false, fmt.Errorf("stock.resolver.Get: %w", err)
		}
		if item.SalableQty > 0 {
			return true, nil
		}
		// Backorders keep an in-stock item salable below zero quantity.
		return item.Backorders && item.IsInStock, nil
	}

	return false, fmt.Errorf("%w: %s", ErrUnknownMethod, r.method)
}
