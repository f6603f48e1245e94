package http

import (
	"time"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

// =====================================================
// Request DTOs
// =====================================================

// discoverReq - Request body cho POST /internal/discover
type discoverReq struct {
	EntityType string   `json:"entity_type"`
	APIKeys    []string `json:"api_keys"`
	EntityIDs  []int64  `json:"entity_ids"`
}

// toInput - Convert to UseCase input
func (r discoverReq) toInput() indexing.DiscoverInput {
	entityType := r.EntityType
	if entityType == "" {
		entityType = model.EntityTypeProduct
	}
	return indexing.DiscoverInput{
		EntityType: entityType,
		APIKeys:    r.APIKeys,
		EntityIDs:  r.EntityIDs,
	}
}

// syncReq - Request body cho POST /internal/sync. Empty action runs all three
// executors in delete, add, update order.
type syncReq struct {
	APIKey string `json:"api_key" binding:"required"`
	Action string `json:"action"`
}

// listEntitiesReq - Query params cho GET /entities
type listEntitiesReq struct {
	APIKey         string `form:"api_key" binding:"required"`
	TargetID       int64  `form:"target_id"`
	NextAction     string `form:"next_action"`
	IsIndexable    *bool  `form:"is_indexable"`
	RequiresUpdate *bool  `form:"requires_update"`
	paginator.PaginateQuery
}

// toInput - Convert to UseCase input
func (r listEntitiesReq) toInput() indexing.GetEntitiesInput {
	return indexing.GetEntitiesInput{
		APIKey:         r.APIKey,
		TargetID:       r.TargetID,
		NextAction:     model.Action(r.NextAction),
		IsIndexable:    r.IsIndexable,
		RequiresUpdate: r.RequiresUpdate,
		PaginateQuery:  r.PaginateQuery,
	}
}

// =====================================================
// Response DTOs
// =====================================================

// discoverResp - Response cho Discover
type discoverResp struct {
	Processed  int                     `json:"processed"`
	Created    int                     `json:"created"`
	Updated    int                     `json:"updated"`
	Skipped    int                     `json:"skipped"`
	Failures   []indexing.ScopeFailure `json:"failures,omitempty"`
	DurationMs int64                   `json:"duration_ms"`
}

func (h *handler) newDiscoverResp(output indexing.DiscoverOutput) discoverResp {
	return discoverResp{
		Processed:  output.Processed,
		Created:    output.Created,
		Updated:    output.Updated,
		Skipped:    output.Skipped,
		Failures:   output.Failures,
		DurationMs: output.Duration.Milliseconds(),
	}
}

// syncResultResp - Outcome of one executor run
type syncResultResp struct {
	APIKey     string                    `json:"api_key"`
	Action     string                    `json:"action"`
	Status     string                    `json:"status"`
	Processed  int                       `json:"processed"`
	Calls      []indexing.SyncCallResult `json:"calls,omitempty"`
	DurationMs int64                     `json:"duration_ms"`
}

func newSyncResultResp(result indexing.IndexerResult) syncResultResp {
	return syncResultResp{
		APIKey:     result.APIKey,
		Action:     string(result.Action),
		Status:     string(result.Status),
		Processed:  result.Processed,
		Calls:      result.Calls,
		DurationMs: result.Duration.Milliseconds(),
	}
}

func (h *handler) newSyncResp(results []indexing.IndexerResult) []syncResultResp {
	resp := make([]syncResultResp, len(results))
	for i, result := range results {
		resp[i] = newSyncResultResp(result)
	}
	return resp
}

// entityResp - One indexing row
type entityResp struct {
	ID               int64            `json:"id"`
	APIKey           string           `json:"api_key"`
	TargetEntityType string           `json:"target_entity_type"`
	TargetID         int64            `json:"target_id"`
	TargetParentID   *int64           `json:"target_parent_id,omitempty"`
	IsIndexable      bool             `json:"is_indexable"`
	RequiresUpdate   bool             `json:"requires_update"`
	NextAction       string           `json:"next_action"`
	LastAction       string           `json:"last_action"`
	LastActionAt     *time.Time       `json:"last_action_at,omitempty"`
	LockedAt         *time.Time       `json:"locked_at,omitempty"`
	OrigValues       model.OrigValues `json:"orig_values,omitempty"`
}

func newEntityResp(entity model.IndexingEntity) entityResp {
	return entityResp{
		ID:               entity.ID,
		APIKey:           entity.APIKey,
		TargetEntityType: entity.TargetEntityType,
		TargetID:         entity.TargetID,
		TargetParentID:   entity.TargetParentID,
		IsIndexable:      entity.IsIndexable,
		RequiresUpdate:   entity.RequiresUpdate,
		NextAction:       string(entity.NextAction),
		LastAction:       string(entity.LastAction),
		LastActionAt:     entity.LastActionTimestamp,
		LockedAt:         entity.LockTimestamp,
		OrigValues:       entity.RequiresUpdateOrigValues,
	}
}

// listEntitiesResp - Response cho ListEntities
type listEntitiesResp struct {
	Items     []entityResp                `json:"items"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h *handler) newListEntitiesResp(entities []model.IndexingEntity, pag paginator.Paginator) listEntitiesResp {
	items := make([]entityResp, len(entities))
	for i, entity := range entities {
		items[i] = newEntityResp(entity)
	}
	return listEntitiesResp{
		Items:     items,
		Paginator: pag.ToResponse(),
	}
}

// historyEntryResp - One sync attempt
type historyEntryResp struct {
	ID             int64     `json:"id"`
	Action         string    `json:"action"`
	IsSuccess      bool      `json:"is_success"`
	Message        string    `json:"message,omitempty"`
	TargetID       int64     `json:"target_id"`
	TargetParentID *int64    `json:"target_parent_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *handler) newHistoryResp(history []model.SyncHistory) []historyEntryResp {
	resp := make([]historyEntryResp, len(history))
	for i, entry := range history {
		resp[i] = historyEntryResp{
			ID:             entry.ID,
			Action:         string(entry.Action),
			IsSuccess:      entry.IsSuccess,
			Message:        entry.Message,
			TargetID:       entry.TargetID,
			TargetParentID: entry.TargetParentID,
			CreatedAt:      entry.CreatedAt,
		}
	}
	return resp
}
