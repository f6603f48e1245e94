package model

import (
	"fmt"
	"time"
)

// Action is a sync operation queued or executed for an indexing entity.
type Action string

// Action constants
const (
	ActionAdd      Action = "ADD"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionNoAction Action = "NO_ACTION"
)

// Target entity type constants
const (
	EntityTypeProduct       = "KLEVU_PRODUCT"
	EntityTypeParentProduct = "KLEVU_PARENT_PRODUCT"
)

// Requires-update criterion identifiers
const (
	CriterionStatus      = "status"
	CriterionStockStatus = "stock_status"
)

// OrigValues maps a criterion identifier to the boolean snapshot captured
// when the requires-update flag was raised.
type OrigValues map[string]bool

// IndexingEntity tracks one catalog entity's synchronization state with the
// remote search index. Exactly one row exists per
// (api_key, target_entity_type, target_id, target_parent_id).
type IndexingEntity struct {
	ID               int64  `json:"id"`
	APIKey           string `json:"api_key"`
	TargetEntityType string `json:"target_entity_type"`
	TargetID         int64  `json:"target_id"`
	TargetParentID   *int64 `json:"target_parent_id,omitempty"`
	TargetSubtype    string `json:"target_entity_subtype"`

	// Indexing State
	IsIndexable         bool       `json:"is_indexable"`
	NextAction          Action     `json:"next_action"`
	LastAction          Action     `json:"last_action"`
	LastActionTimestamp *time.Time `json:"last_action_timestamp,omitempty"`

	// Advisory lock held by an in-flight sync batch. Must be null outside
	// active sync execution.
	LockTimestamp *time.Time `json:"lock_timestamp,omitempty"`

	// Requires-update tracking
	RequiresUpdate           bool       `json:"requires_update"`
	RequiresUpdateOrigValues OrigValues `json:"requires_update_orig_values,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WasSynced reports whether the row has ever completed a successful sync.
func (e *IndexingEntity) WasSynced() bool {
	return e.LastAction != ActionNoAction && e.LastActionTimestamp != nil
}

// IsLocked reports whether a sync batch currently holds the row.
func (e *IndexingEntity) IsLocked() bool {
	return e.LockTimestamp != nil
}

// RecordID returns the identifier used for the remote record. Variant rows
// use the "{parentId}-{childId}" form.
func (e *IndexingEntity) RecordID() string {
	if e.TargetParentID != nil && *e.TargetParentID > 0 {
		return fmt.Sprintf("%d-%d", *e.TargetParentID, e.TargetID)
	}
	return fmt.Sprintf("%d", e.TargetID)
}
