package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

const entityColumns = `id, api_key, target_entity_type, target_id, target_parent_id,
	target_entity_subtype, is_indexable, next_action, last_action, last_action_timestamp,
	lock_timestamp, requires_update, requires_update_orig_values, created_at, updated_at`

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// GetOneEntity - Get one row by its unique tuple
func (r *implRepository) GetOneEntity(ctx context.Context, opt repo.GetOneEntityOptions) (model.IndexingEntity, error) {
	query := fmt.Sprintf(`SELECT %s FROM indexing_entities
		WHERE api_key = $1 AND target_entity_type = $2 AND target_id = $3
		AND target_parent_id IS NOT DISTINCT FROM $4`, entityColumns)

	var parentID interface{}
	if opt.TargetParentID != nil {
		parentID = *opt.TargetParentID
	}

	e, err := r.scanEntity(r.db.QueryRowContext(ctx, query, opt.APIKey, opt.TargetEntityType, opt.TargetID, parentID))
	if err == sql.ErrNoRows {
		return model.IndexingEntity{}, nil // Not found
	}
	if err != nil {
		return model.IndexingEntity{}, fmt.Errorf("GetOneEntity: %w", err)
	}
	return e, nil
}

// GetEntities - List with pagination (returns data + paginator)
func (r *implRepository) GetEntities(ctx context.Context, opt repo.GetEntitiesOptions) ([]model.IndexingEntity, paginator.Paginator, error) {
	// 1. Count total
	countQuery, countArgs := r.buildGetEntitiesCountQuery(opt)
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, paginator.Paginator{}, fmt.Errorf("GetEntities count: %w", err)
	}

	// 2. Get data
	query, args := r.buildGetEntitiesQuery(opt)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, paginator.Paginator{}, fmt.Errorf("GetEntities: %w", err)
	}
	defer rows.Close()

	entities := make([]model.IndexingEntity, 0)
	for rows.Next() {
		e, err := r.scanEntity(rows)
		if err != nil {
			return nil, paginator.Paginator{}, fmt.Errorf("GetEntities: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, paginator.Paginator{}, fmt.Errorf("GetEntities: %w", err)
	}

	// 3. Build paginator
	limit := opt.Limit
	if limit <= 0 {
		limit = paginator.DefaultLimit
	}
	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(entities)),
		PerPage:     int64(limit),
		CurrentPage: opt.Offset/limit + 1,
	}

	return entities, pag, nil
}

// ListEntities - List without pagination
func (r *implRepository) ListEntities(ctx context.Context, opt repo.ListEntitiesOptions) ([]model.IndexingEntity, error) {
	query, args := r.buildListEntitiesQuery(opt)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEntities: %w", err)
	}
	defer rows.Close()

	entities := make([]model.IndexingEntity, 0)
	for rows.Next() {
		e, err := r.scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("ListEntities: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEntities: %w", err)
	}
	return entities, nil
}

// CreateEntity - Insert one row (returns created entity)
func (r *implRepository) CreateEntity(ctx context.Context, opt repo.CreateEntityOptions) (model.IndexingEntity, error) {
	query := `INSERT INTO indexing_entities
		(api_key, target_entity_type, target_id, target_parent_id, target_entity_subtype,
		 is_indexable, next_action, last_action, requires_update, requires_update_orig_values,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, '{}'::jsonb, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var parentID interface{}
	if opt.TargetParentID != nil {
		parentID = *opt.TargetParentID
	}

	e := model.IndexingEntity{
		APIKey:           opt.APIKey,
		TargetEntityType: opt.TargetEntityType,
		TargetID:         opt.TargetID,
		TargetParentID:   opt.TargetParentID,
		TargetSubtype:    opt.TargetSubtype,
		IsIndexable:      opt.IsIndexable,
		NextAction:       opt.NextAction,
		LastAction:       model.ActionNoAction,
	}

	err := r.db.QueryRowContext(ctx, query,
		opt.APIKey, opt.TargetEntityType, opt.TargetID, parentID, opt.TargetSubtype,
		opt.IsIndexable, string(opt.NextAction), string(model.ActionNoAction),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return model.IndexingEntity{}, repo.ErrEntityExists
		}
		return model.IndexingEntity{}, fmt.Errorf("CreateEntity: %w", err)
	}
	return e, nil
}

// UpdateEntityActions - Mutate indexability and action state of one row
func (r *implRepository) UpdateEntityActions(ctx context.Context, opt repo.UpdateEntityActionsOptions) error {
	if opt.IsIndexable == nil && opt.NextAction == nil {
		return repo.ErrInvalidOptions
	}

	query, args := r.buildUpdateActionsQuery(opt)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UpdateEntityActions: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrEntityNotFound
	}
	return nil
}

// MarkRequiresUpdate - Raise the requires-update flag with snapshot
func (r *implRepository) MarkRequiresUpdate(ctx context.Context, opt repo.MarkRequiresUpdateOptions) error {
	if len(opt.OrigValues) == 0 {
		return repo.ErrInvalidOptions
	}

	origValues, err := json.Marshal(opt.OrigValues)
	if err != nil {
		return fmt.Errorf("MarkRequiresUpdate: %w", err)
	}

	query := `UPDATE indexing_entities
		SET requires_update = TRUE, requires_update_orig_values = $2, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, opt.ID, origValues)
	if err != nil {
		return fmt.Errorf("MarkRequiresUpdate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrEntityNotFound
	}
	return nil
}

// ResolveRequiresUpdate - Clear the flag and snapshot, set resolved action
func (r *implRepository) ResolveRequiresUpdate(ctx context.Context, opt repo.ResolveRequiresUpdateOptions) error {
	query := `UPDATE indexing_entities
		SET requires_update = FALSE, requires_update_orig_values = '{}'::jsonb,
		    next_action = $2, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, opt.ID, string(opt.NextAction))
	if err != nil {
		return fmt.Errorf("ResolveRequiresUpdate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrEntityNotFound
	}
	return nil
}

// LockEntities - Take the advisory lock on unlocked rows; returns the ids
// actually locked.
func (r *implRepository) LockEntities(ctx context.Context, ids []int64, lockedAt time.Time) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `UPDATE indexing_entities
		SET lock_timestamp = $2, updated_at = NOW()
		WHERE id = ANY($1) AND lock_timestamp IS NULL
		RETURNING id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids), lockedAt)
	if err != nil {
		return nil, fmt.Errorf("LockEntities: %w", err)
	}
	defer rows.Close()

	locked := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("LockEntities: %w", err)
		}
		locked = append(locked, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LockEntities: %w", err)
	}
	return locked, nil
}

// UnlockEntities - Release the advisory lock
func (r *implRepository) UnlockEntities(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE indexing_entities SET lock_timestamp = NULL, updated_at = NOW() WHERE id = ANY($1)`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("UnlockEntities: %w", err)
	}
	return nil
}

// RecordSyncSuccess - Commit the post-sync transition for one row
func (r *implRepository) RecordSyncSuccess(ctx context.Context, opt repo.RecordSyncSuccessOptions) error {
	query := `UPDATE indexing_entities
		SET last_action = $2, last_action_timestamp = $3, next_action = $4,
		    is_indexable = $5, lock_timestamp = NULL, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		opt.ID, string(opt.Action), opt.SyncedAt, string(model.ActionNoAction), opt.IsIndexable)
	if err != nil {
		return fmt.Errorf("RecordSyncSuccess: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrEntityNotFound
	}
	return nil
}

// CountEntities - Aggregate counts for one api key
func (r *implRepository) CountEntities(ctx context.Context, apiKey string) (repo.EntityStats, error) {
	stats := repo.EntityStats{ByNextAction: make(map[string]int64)}

	query := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE is_indexable),
		COUNT(*) FILTER (WHERE requires_update),
		MAX(last_action_timestamp)
		FROM indexing_entities WHERE api_key = $1`

	var lastSynced sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, apiKey).Scan(
		&stats.Total, &stats.Indexable, &stats.RequiresUpdate, &lastSynced,
	); err != nil {
		return repo.EntityStats{}, fmt.Errorf("CountEntities: %w", err)
	}
	if lastSynced.Valid {
		stats.LastSyncedAt = &lastSynced.Time
	}

	actionQuery := `SELECT next_action, COUNT(*) FROM indexing_entities WHERE api_key = $1 GROUP BY next_action`
	rows, err := r.db.QueryContext(ctx, actionQuery, apiKey)
	if err != nil {
		return repo.EntityStats{}, fmt.Errorf("CountEntities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return repo.EntityStats{}, fmt.Errorf("CountEntities: %w", err)
		}
		stats.ByNextAction[action] = count
	}
	if err := rows.Err(); err != nil {
		return repo.EntityStats{}, fmt.Errorf("CountEntities: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *implRepository) scanEntity(row rowScanner) (model.IndexingEntity, error) {
	var e model.IndexingEntity
	var parentID sql.NullInt64
	var lastActionTS, lockTS sql.NullTime
	var nextAction, lastAction string
	var origValues []byte

	err := row.Scan(
		&e.ID, &e.APIKey, &e.TargetEntityType, &e.TargetID, &parentID,
		&e.TargetSubtype, &e.IsIndexable, &nextAction, &lastAction, &lastActionTS,
		&lockTS, &e.RequiresUpdate, &origValues, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return model.IndexingEntity{}, err
	}

	e.NextAction = model.Action(nextAction)
	e.LastAction = model.Action(lastAction)
	if parentID.Valid {
		e.TargetParentID = &parentID.Int64
	}
	if lastActionTS.Valid {
		e.LastActionTimestamp = &lastActionTS.Time
	}
	if lockTS.Valid {
		e.LockTimestamp = &lockTS.Time
	}
	if len(origValues) > 0 {
		if err := json.Unmarshal(origValues, &e.RequiresUpdateOrigValues); err != nil {
			return model.IndexingEntity{}, fmt.Errorf("orig values: %w", err)
		}
	}
	if e.RequiresUpdateOrigValues == nil {
		e.RequiresUpdateOrigValues = model.OrigValues{}
	}
	return e, nil
}
