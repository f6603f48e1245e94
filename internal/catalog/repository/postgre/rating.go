package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-sync-srv/internal/model"
)

// ListProductCategories - List categories assigned to a product
func (r *implRepository) ListProductCategories(ctx context.Context, productID int64) ([]model.Category, error) {
	query := `SELECT c.id, c.name, c.path FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = $1
		ORDER BY c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("ListProductCategories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Path); err != nil {
			return nil, fmt.Errorf("ListProductCategories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProductCategories: %w", err)
	}
	return categories, nil
}

// GetRating - Get the aggregated review rating for a product
func (r *implRepository) GetRating(ctx context.Context, productID int64) (model.Rating, error) {
	query := `SELECT product_id, COALESCE(AVG(percent), 0), COUNT(*)
		FROM product_reviews
		WHERE product_id = $1 AND approved = TRUE
		GROUP BY product_id`

	var rating model.Rating
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&rating.ProductID, &rating.Average, &rating.Count)
	if err == sql.ErrNoRows {
		return model.Rating{ProductID: productID}, nil // No reviews
	}
	if err != nil {
		return model.Rating{}, fmt.Errorf("GetRating: %w", err)
	}
	return rating, nil
}
