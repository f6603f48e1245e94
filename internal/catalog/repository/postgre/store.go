package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-sync-srv/internal/model"
)

// DetailStore - Get store by ID
func (r *implRepository) DetailStore(ctx context.Context, id int64) (model.Store, error) {
	query := `SELECT id, code, website_id, name, currency FROM stores WHERE id = $1`

	var s model.Store
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Code, &s.WebsiteID, &s.Name, &s.Currency)
	if err == sql.ErrNoRows {
		return model.Store{}, nil // Not found
	}
	if err != nil {
		return model.Store{}, fmt.Errorf("DetailStore: %w", err)
	}
	return s, nil
}

// ListStores - List all stores
func (r *implRepository) ListStores(ctx context.Context) ([]model.Store, error) {
	query := `SELECT id, code, website_id, name, currency FROM stores ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListStores: %w", err)
	}
	defer rows.Close()

	stores := make([]model.Store, 0)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Code, &s.WebsiteID, &s.Name, &s.Currency); err != nil {
			return nil, fmt.Errorf("ListStores: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStores: %w", err)
	}
	return stores, nil
}

// ListWebsites - List all websites
func (r *implRepository) ListWebsites(ctx context.Context) ([]model.Website, error) {
	query := `SELECT id, code, name, is_default FROM websites ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListWebsites: %w", err)
	}
	defer rows.Close()

	websites := make([]model.Website, 0)
	for rows.Next() {
		var w model.Website
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.IsDefault); err != nil {
			return nil, fmt.Errorf("ListWebsites: %w", err)
		}
		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListWebsites: %w", err)
	}
	return websites, nil
}
