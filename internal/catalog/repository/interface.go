package repository

import (
	"context"

	"catalog-sync-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// Products
	DetailProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, opt ListProductsOptions) ([]model.Product, error)
	ListChildProducts(ctx context.Context, parentID int64) ([]model.Product, error)

	// Stock
	GetStockItem(ctx context.Context, productID int64) (model.StockItem, error)
	ListStockItems(ctx context.Context, productIDs []int64) (map[int64]model.StockItem, error)

	// Scopes
	DetailStore(ctx context.Context, id int64) (model.Store, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	ListWebsites(ctx context.Context) ([]model.Website, error)

	// Record relations
	ListProductCategories(ctx context.Context, productID int64) ([]model.Category, error)
	GetRating(ctx context.Context, productID int64) (model.Rating, error)
}
