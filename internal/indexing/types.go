package indexing

import (
	"time"

	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

// ============================================
// Scope Configuration
// ============================================

// ScopeConfig is the immutable per-invocation behaviour snapshot. It is
// resolved once at the call boundary instead of read from ambient state.
type ScopeConfig struct {
	ExcludeDisabledProducts bool
	ExcludeOOSProducts      bool
	EnableProductSync       bool
	BatchSize               int
	ImageWidth              int
	ImageHeight             int
}

// ============================================
// UseCase Input/Output Types
// ============================================

// DiscoverInput filters a discovery run. Empty APIKeys means all configured
// scopes; empty EntityIDs means all products for the entity type.
type DiscoverInput struct {
	EntityType string
	APIKeys    []string
	EntityIDs  []int64
}

// ScopeFailure reports a failed (store, apiKey) scope within an otherwise
// successful run.
type ScopeFailure struct {
	APIKey  string `json:"api_key"`
	StoreID int64  `json:"store_id"`
	Message string `json:"message"`
}

// DiscoverOutput aggregates discovery results across scopes.
type DiscoverOutput struct {
	Processed int            `json:"processed"`
	Created   int            `json:"created"`
	Updated   int            `json:"updated"`
	Skipped   int            `json:"skipped"`
	Failures  []ScopeFailure `json:"failures,omitempty"`
	Duration  time.Duration  `json:"duration"`
}

// RequireUpdateInput filters a requires-update pass.
type RequireUpdateInput struct {
	APIKeys []string
}

// RequireUpdateOutput aggregates tracker results.
type RequireUpdateOutput struct {
	Checked      int            `json:"checked"`
	QueuedUpdate int            `json:"queued_update"`
	Cleared      int            `json:"cleared"`
	Failures     []ScopeFailure `json:"failures,omitempty"`
}

// SyncInput selects the rows one executor run submits.
type SyncInput struct {
	APIKey string
	Action model.Action
}

// SyncStatus is the outcome of one sync executor run.
type SyncStatus string

const (
	SyncStatusNoop    SyncStatus = "NOOP"
	SyncStatusSuccess SyncStatus = "SUCCESS"
	SyncStatusPartial SyncStatus = "PARTIAL"
	SyncStatusFailure SyncStatus = "FAILURE"
)

// SyncCallResult carries the per-record remote outcome for inspection.
type SyncCallResult struct {
	RecordID string   `json:"record_id"`
	Success  bool     `json:"success"`
	Messages []string `json:"messages,omitempty"`
}

// IndexerResult is the outcome of one sync executor run for one action.
type IndexerResult struct {
	APIKey    string           `json:"api_key"`
	Action    model.Action     `json:"action"`
	Status    SyncStatus       `json:"status"`
	Processed int              `json:"processed"`
	Calls     []SyncCallResult `json:"calls,omitempty"`
	Duration  time.Duration    `json:"duration"`
}

// GetEntitiesInput filters the indexing entity listing.
type GetEntitiesInput struct {
	APIKey         string
	TargetID       int64
	NextAction     model.Action
	IsIndexable    *bool
	RequiresUpdate *bool
	PaginateQuery  paginator.PaginateQuery
}

// StatisticsOutput summarizes indexing state for one api key.
type StatisticsOutput struct {
	APIKey         string           `json:"api_key"`
	Total          int64            `json:"total"`
	Indexable      int64            `json:"indexable"`
	RequiresUpdate int64            `json:"requires_update"`
	ByNextAction   map[string]int64 `json:"by_next_action"`
	LastSyncedAt   *time.Time       `json:"last_synced_at,omitempty"`
}

// ============================================
// Indexing Records
// ============================================

// ExtensibleEntity is the capability a catalog object must carry to be
// wrapped into an indexing record.
type ExtensibleEntity interface {
	EntityID() int64
	EntitySubtype() string
}

// IndexingRecord pairs a record id with the underlying entity and optional
// parent. Built per sync attempt, never persisted.
type IndexingRecord struct {
	RecordID string
	Entity   ExtensibleEntity
	Parent   ExtensibleEntity
}

// RecordRelations carries category and parent links of a remote record.
type RecordRelations struct {
	Categories    []string `json:"categories,omitempty"`
	ParentProduct string   `json:"parentProduct,omitempty"`
}

// Record is the payload submitted to the remote index for one entity.
type Record struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Relations  RecordRelations        `json:"relations"`
	Attributes map[string]interface{} `json:"attributes"`
}

// ============================================
// Event Types (Kafka)
// ============================================

// EntityUpdateEvent notifies that catalog entities changed and may need
// selective re-discovery.
type EntityUpdateEvent struct {
	EntityType       string    `json:"entity_type"`
	EntityIDs        []int64   `json:"entity_ids"`
	StoreIDs         []int64   `json:"store_ids"`
	CustomerGroupIDs []int64   `json:"customer_group_ids"`
	EntitySubtypes   []string  `json:"entity_subtypes"`
	EmittedAt        time.Time `json:"emitted_at"`
}

// AttributeUpdateEvent notifies that attribute configuration changed.
type AttributeUpdateEvent struct {
	AttributeIDs []int64   `json:"attribute_ids"`
	StoreIDs     []int64   `json:"store_ids"`
	EmittedAt    time.Time `json:"emitted_at"`
}

// ============================================
// Worker Job Types (RabbitMQ)
// ============================================

// SyncJob queues one executor run for the worker pool.
type SyncJob struct {
	APIKey   string       `json:"api_key"`
	Action   model.Action `json:"action"`
	QueuedAt time.Time    `json:"queued_at"`
}
