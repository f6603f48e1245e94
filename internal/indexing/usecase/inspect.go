package usecase

import (
	"context"
	"fmt"

	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/paginator"
)

// GetEntities lists indexing rows with pagination for inspection endpoints.
func (uc *implUseCase) GetEntities(ctx context.Context, input indexing.GetEntitiesInput) ([]model.IndexingEntity, paginator.Paginator, error) {
	input.PaginateQuery.Adjust()

	entities, pag, err := uc.repo.GetEntities(ctx, repo.GetEntitiesOptions{
		APIKey:         input.APIKey,
		TargetID:       input.TargetID,
		NextAction:     input.NextAction,
		IsIndexable:    input.IsIndexable,
		RequiresUpdate: input.RequiresUpdate,
		Limit:          int(input.PaginateQuery.Limit),
		Offset:         int(input.PaginateQuery.Offset()),
	})
	if err != nil {
		return nil, paginator.Paginator{}, fmt.Errorf("indexing.usecase.GetEntities: %w", err)
	}
	return entities, pag, nil
}

// GetEntityHistory lists the sync attempts recorded for one indexing row.
func (uc *implUseCase) GetEntityHistory(ctx context.Context, entityID int64) ([]model.SyncHistory, error) {
	history, err := uc.repo.ListHistory(ctx, repo.ListHistoryOptions{IndexingEntityID: entityID})
	if err != nil {
		return nil, fmt.Errorf("indexing.usecase.GetEntityHistory: %w", err)
	}
	return history, nil
}

// GetStatistics summarizes indexing state for one api key, cached briefly.
func (uc *implUseCase) GetStatistics(ctx context.Context, apiKey string) (indexing.StatisticsOutput, error) {
	if cached, err := uc.cache.GetStatistics(ctx, apiKey); err != nil {
		uc.l.Warnf(ctx, "indexing.usecase.GetStatistics: cache read for %s: %v", apiKey, err)
	} else if cached != nil {
		return *cached, nil
	}

	stats, err := uc.repo.CountEntities(ctx, apiKey)
	if err != nil {
		return indexing.StatisticsOutput{}, fmt.Errorf("indexing.usecase.GetStatistics: %w", err)
	}

	out := indexing.StatisticsOutput{
		APIKey:         apiKey,
		Total:          stats.Total,
		Indexable:      stats.Indexable,
		RequiresUpdate: stats.RequiresUpdate,
		ByNextAction:   stats.ByNextAction,
		LastSyncedAt:   stats.LastSyncedAt,
	}
	if err := uc.cache.SetStatistics(ctx, apiKey, out); err != nil {
		uc.l.Warnf(ctx, "indexing.usecase.GetStatistics: cache write for %s: %v", apiKey, err)
	}
	return out, nil
}
