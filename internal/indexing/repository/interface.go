package repository

import (
	"context"
	"time"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	EntityRepository
	HistoryRepository
}

// EntityRepository - Operations for the indexing_entities table
type EntityRepository interface {
	GetOneEntity(ctx context.Context, opt GetOneEntityOptions) (model.IndexingEntity, error)
	GetEntities(ctx context.Context, opt GetEntitiesOptions) ([]model.IndexingEntity, paginator.Paginator, error)
	ListEntities(ctx context.Context, opt ListEntitiesOptions) ([]model.IndexingEntity, error)
	CreateEntity(ctx context.Context, opt CreateEntityOptions) (model.IndexingEntity, error)
	UpdateEntityActions(ctx context.Context, opt UpdateEntityActionsOptions) error
	MarkRequiresUpdate(ctx context.Context, opt MarkRequiresUpdateOptions) error
	ResolveRequiresUpdate(ctx context.Context, opt ResolveRequiresUpdateOptions) error
	LockEntities(ctx context.Context, ids []int64, lockedAt time.Time) ([]int64, error)
	UnlockEntities(ctx context.Context, ids []int64) error
	RecordSyncSuccess(ctx context.Context, opt RecordSyncSuccessOptions) error
	CountEntities(ctx context.Context, apiKey string) (EntityStats, error)
}

// HistoryRepository - Operations for the indexing_sync_history table
type HistoryRepository interface {
	CreateHistory(ctx context.Context, opt CreateHistoryOptions) error
	ListHistory(ctx context.Context, opt ListHistoryOptions) ([]model.SyncHistory, error)
}

// SearchIndexRepository - Remote batch index operations, partitioned per
// account credentials.
//
//go:generate mockery --name SearchIndexRepository
type SearchIndexRepository interface {
	PutRecords(ctx context.Context, cred credential.AccountCredentials, records []indexing.Record) ([]RemoteResult, error)
	DeleteRecords(ctx context.Context, cred credential.AccountCredentials, recordIDs []string) ([]RemoteResult, error)
}

// CacheRepository - Payload hash and statistics caching
//
//go:generate mockery --name CacheRepository
type CacheRepository interface {
	GetPayloadHash(ctx context.Context, apiKey, recordID string) (string, error)
	SetPayloadHash(ctx context.Context, apiKey, recordID, hash string) error
	DeletePayloadHash(ctx context.Context, apiKey, recordID string) error

	GetStatistics(ctx context.Context, apiKey string) (*indexing.StatisticsOutput, error)
	SetStatistics(ctx context.Context, apiKey string, stats indexing.StatisticsOutput) error
	InvalidateStatistics(ctx context.Context, apiKey string) error
}
