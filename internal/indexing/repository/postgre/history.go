package postgre

import (
	"context"
	"database/sql"
	"fmt"

	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
)

// CreateHistory - Append one sync attempt record
func (r *implRepository) CreateHistory(ctx context.Context, opt repo.CreateHistoryOptions) error {
	query := `INSERT INTO indexing_sync_history
		(indexing_entity_id, api_key, target_entity_type, target_id, target_parent_id,
		 action, is_success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	var parentID interface{}
	if opt.TargetParentID != nil {
		parentID = *opt.TargetParentID
	}

	_, err := r.db.ExecContext(ctx, query,
		opt.IndexingEntityID, opt.APIKey, opt.TargetEntityType, opt.TargetID, parentID,
		string(opt.Action), opt.IsSuccess, opt.Message)
	if err != nil {
		return fmt.Errorf("CreateHistory: %w", err)
	}
	return nil
}

// ListHistory - List sync attempts for one indexing entity, newest first
func (r *implRepository) ListHistory(ctx context.Context, opt repo.ListHistoryOptions) ([]model.SyncHistory, error) {
	query := `SELECT id, indexing_entity_id, api_key, target_entity_type, target_id,
		target_parent_id, action, is_success, COALESCE(message, ''), created_at
		FROM indexing_sync_history
		WHERE indexing_entity_id = $1
		ORDER BY created_at DESC, id DESC`

	args := []interface{}{opt.IndexingEntityID}
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListHistory: %w", err)
	}
	defer rows.Close()

	history := make([]model.SyncHistory, 0)
	for rows.Next() {
		var h model.SyncHistory
		var parentID sql.NullInt64
		var action string
		if err := rows.Scan(&h.ID, &h.IndexingEntityID, &h.APIKey, &h.TargetEntityType,
			&h.TargetID, &parentID, &action, &h.IsSuccess, &h.Message, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListHistory: %w", err)
		}
		h.Action = model.Action(action)
		if parentID.Valid {
			h.TargetParentID = &parentID.Int64
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListHistory: %w", err)
	}
	return history, nil
}
