package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"catalog-sync-srv/internal/model"
)

const stockColumns = `product_id, is_in_stock, qty, salable_qty, backorders`

// GetStockItem - Get the stock record for one product
func (r *implRepository) GetStockItem(ctx context.Context, productID int64) (model.StockItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_items WHERE product_id = $1`, stockColumns)

	var item model.StockItem
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&item.ProductID, &item.IsInStock, &item.Qty, &item.SalableQty, &item.Backorders,
	)
	if err == sql.ErrNoRows {
		return model.StockItem{}, nil // Not found; treated as out of stock
	}
	if err != nil {
		return model.StockItem{}, fmt.Errorf("GetStockItem: %w", err)
	}
	return item, nil
}

// ListStockItems - Get stock records for a batch of products
func (r *implRepository) ListStockItems(ctx context.Context, productIDs []int64) (map[int64]model.StockItem, error) {
	items := make(map[int64]model.StockItem, len(productIDs))
	if len(productIDs) == 0 {
		return items, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM stock_items WHERE product_id = ANY($1)`, stockColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("ListStockItems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.StockItem
		if err := rows.Scan(&item.ProductID, &item.IsInStock, &item.Qty, &item.SalableQty, &item.Backorders); err != nil {
			return nil, fmt.Errorf("ListStockItems: %w", err)
		}
		items[item.ProductID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStockItems: %w", err)
	}
	return items, nil
}
