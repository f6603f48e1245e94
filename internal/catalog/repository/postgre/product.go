package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	repo "catalog-sync-srv/internal/catalog/repository"
	"catalog-sync-srv/internal/model"
)

const productColumns = `p.id, p.sku, p.name, COALESCE(p.description, ''), COALESCE(p.short_description, ''),
	p.type_id, p.status, p.visibility, COALESCE(p.url_key, ''), COALESCE(p.image_path, ''),
	p.price, p.special_price, p.is_available, p.created_at, p.updated_at`

// DetailProduct - Get product by ID with website/category/parent associations
func (r *implRepository) DetailProduct(ctx context.Context, id int64) (model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE p.id = $1`, productColumns)

	p, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return model.Product{}, nil // Not found
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("DetailProduct: %w", err)
	}

	if err := r.loadAssociations(ctx, []*model.Product{&p}); err != nil {
		return model.Product{}, fmt.Errorf("DetailProduct: %w", err)
	}
	return p, nil
}

// ListProducts - List products by filters with associations
func (r *implRepository) ListProducts(ctx context.Context, opt repo.ListProductsOptions) ([]model.Product, error) {
	query, args := r.buildListProductsQuery(opt)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.loadAssociations(ctx, refs); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

// ListChildProducts - List children of a composite product
func (r *implRepository) ListChildProducts(ctx context.Context, parentID int64) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p
		JOIN product_links pl ON pl.child_id = p.id
		WHERE pl.parent_id = $1
		ORDER BY p.id ASC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("ListChildProducts: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("ListChildProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListChildProducts: %w", err)
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.loadAssociations(ctx, refs); err != nil {
		return nil, fmt.Errorf("ListChildProducts: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *implRepository) scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var specialPrice sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.ShortDescription,
		&p.TypeID, &p.Status, &p.Visibility, &p.URLKey, &p.ImagePath,
		&p.Price, &specialPrice, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	if specialPrice.Valid {
		p.SpecialPrice = &specialPrice.Float64
	}
	return p, nil
}

// loadAssociations fills website, category and parent id lists for the
// given products in three grouped queries.
func (r *implRepository) loadAssociations(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, len(products))
	byID := make(map[int64]*model.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	load := func(query string, assign func(p *model.Product, related int64)) error {
		rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var productID, related int64
			if err := rows.Scan(&productID, &related); err != nil {
				return err
			}
			if p, ok := byID[productID]; ok {
				assign(p, related)
			}
		}
		return rows.Err()
	}

	if err := load(
		`SELECT product_id, website_id FROM product_websites WHERE product_id = ANY($1)`,
		func(p *model.Product, id int64) { p.WebsiteIDs = append(p.WebsiteIDs, id) },
	); err != nil {
		return err
	}
	if err := load(
		`SELECT product_id, category_id FROM product_categories WHERE product_id = ANY($1)`,
		func(p *model.Product, id int64) { p.CategoryIDs = append(p.CategoryIDs, id) },
	); err != nil {
		return err
	}
	return load(
		`SELECT child_id, parent_id FROM product_links WHERE child_id = ANY($1)`,
		func(p *model.Product, id int64) { p.ParentIDs = append(p.ParentIDs, id) },
	)
}
