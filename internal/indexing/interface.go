package indexing

import (
	"context"

	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Discovery and requires-update reconciliation
	Discover(ctx context.Context, input DiscoverInput) (DiscoverOutput, error)
	ProcessRequiresUpdate(ctx context.Context, input RequireUpdateInput) (RequireUpdateOutput, error)

	// Sync executors
	Sync(ctx context.Context, input SyncInput) (IndexerResult, error)
	SyncAll(ctx context.Context, apiKey string) ([]IndexerResult, error)

	// Record building
	BuildRecord(recordID string, entity interface{}, parent interface{}) (IndexingRecord, error)

	// Update responders (inbound notifications -> published events)
	RespondEntityUpdate(ctx context.Context, data map[string]interface{}) error
	RespondAttributeUpdate(ctx context.Context, data map[string]interface{}) error

	// Event handlers (consumed events -> state mutations)
	HandleEntityUpdate(ctx context.Context, event EntityUpdateEvent) error
	HandleAttributeUpdate(ctx context.Context, event AttributeUpdateEvent) error

	// Inspection
	GetEntities(ctx context.Context, input GetEntitiesInput) ([]model.IndexingEntity, paginator.Paginator, error)
	GetEntityHistory(ctx context.Context, entityID int64) ([]model.SyncHistory, error)
	GetStatistics(ctx context.Context, apiKey string) (StatisticsOutput, error)
}

//go:generate mockery --name Producer
type Producer interface {
	PublishEntityUpdate(ctx context.Context, event EntityUpdateEvent) error
	PublishAttributeUpdate(ctx context.Context, event AttributeUpdateEvent) error
}
