package model

import "time"

// SyncHistory records one sync attempt for an indexing entity. Rows are
// append-only and power the entity history endpoint.
type SyncHistory struct {
	ID               int64     `json:"id"`
	IndexingEntityID int64     `json:"indexing_entity_id"`
	APIKey           string    `json:"api_key"`
	TargetEntityType string    `json:"target_entity_type"`
	TargetID         int64     `json:"target_id"`
	TargetParentID   *int64    `json:"target_parent_id,omitempty"`
	Action           Action    `json:"action"`
	IsSuccess        bool      `json:"is_success"`
	Message          string    `json:"message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
