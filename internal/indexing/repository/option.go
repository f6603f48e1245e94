package repository

import (
	"time"

	"catalog-sync-srv/internal/model"
)

// GetOneEntityOptions identifies one row by its unique tuple.
type GetOneEntityOptions struct {
	APIKey           string
	TargetEntityType string
	TargetID         int64
	TargetParentID   *int64
}

// GetEntitiesOptions - List with pagination
type GetEntitiesOptions struct {
	APIKey         string
	TargetID       int64
	NextAction     model.Action
	IsIndexable    *bool
	RequiresUpdate *bool
	OrderBy        string
	Limit          int
	Offset         int
}

// ListEntitiesOptions - List without pagination
type ListEntitiesOptions struct {
	APIKey           string
	APIKeys          []string
	TargetEntityType string
	TargetIDs        []int64
	NextAction       model.Action
	IsIndexable      *bool
	RequiresUpdate   *bool
	OnlyUnlocked     bool
	Limit            int
}

// CreateEntityOptions - Insert one row
type CreateEntityOptions struct {
	APIKey           string
	TargetEntityType string
	TargetID         int64
	TargetParentID   *int64
	TargetSubtype    string
	IsIndexable      bool
	NextAction       model.Action
}

// UpdateEntityActionsOptions mutates the indexability and action state of
// one row. Nil fields are left unchanged.
type UpdateEntityActionsOptions struct {
	ID          int64
	IsIndexable *bool
	NextAction  *model.Action
}

// MarkRequiresUpdateOptions raises the requires-update flag with the
// criterion snapshot captured at that moment.
type MarkRequiresUpdateOptions struct {
	ID         int64
	OrigValues model.OrigValues
}

// ResolveRequiresUpdateOptions clears the flag and snapshot, setting the
// resolved next action.
type ResolveRequiresUpdateOptions struct {
	ID         int64
	NextAction model.Action
}

// RecordSyncSuccessOptions commits the post-sync transition for one row.
type RecordSyncSuccessOptions struct {
	ID          int64
	Action      model.Action
	SyncedAt    time.Time
	IsIndexable bool
}

// EntityStats carries aggregate counts for one api key.
type EntityStats struct {
	Total          int64
	Indexable      int64
	RequiresUpdate int64
	ByNextAction   map[string]int64
	LastSyncedAt   *time.Time
}

// RemoteResult is the per-record outcome echoed back by the remote index.
type RemoteResult struct {
	RecordID string
	Success  bool
	Messages []string
}

// CreateHistoryOptions - Append one sync attempt record
type CreateHistoryOptions struct {
	IndexingEntityID int64
	APIKey           string
	TargetEntityType string
	TargetID         int64
	TargetParentID   *int64
	Action           model.Action
	IsSuccess        bool
	Message          string
}

// ListHistoryOptions - List sync attempts for one indexing entity
type ListHistoryOptions struct {
	IndexingEntityID int64
	Limit            int
}
