package usecase

import (
	"context"
	"fmt"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/util"
)

// HandleEntityUpdate reacts to a consumed entity change event: rows already
// tracked get the requires-update flag with a criterion snapshot, untracked
// ids go through selective discovery.
func (uc *implUseCase) HandleEntityUpdate(ctx context.Context, event indexing.EntityUpdateEvent) error {
	if len(event.EntityIDs) == 0 {
		uc.l.Debugf(ctx, "indexing.usecase.HandleEntityUpdate: empty event, nothing to do")
		return nil
	}

	creds, err := uc.creds.List(ctx)
	if err != nil {
		return fmt.Errorf("indexing.usecase.HandleEntityUpdate: %w", err)
	}

	var undiscovered []int64
	for _, cred := range creds {
		if len(event.StoreIDs) > 0 && !util.ContainsInt64(event.StoreIDs, cred.StoreID) {
			continue
		}

		missing, err := uc.flagScopeEntities(ctx, cred, event.EntityIDs)
		if err != nil {
			return fmt.Errorf("indexing.usecase.HandleEntityUpdate: scope %s: %w", cred.APIKey, err)
		}
		for _, id := range missing {
			if !util.ContainsInt64(undiscovered, id) {
				undiscovered = append(undiscovered, id)
			}
		}
	}

	if len(undiscovered) > 0 {
		if _, err := uc.Discover(ctx, indexing.DiscoverInput{
			EntityType: model.EntityTypeProduct,
			EntityIDs:  undiscovered,
		}); err != nil {
			return fmt.Errorf("indexing.usecase.HandleEntityUpdate: %w", err)
		}
	}
	return nil
}

// flagScopeEntities marks tracked indexable rows as requiring update and
// returns the ids with no row yet.
func (uc *implUseCase) flagScopeEntities(ctx context.Context, cred credential.AccountCredentials, entityIDs []int64) ([]int64, error) {
	store, err := uc.catalog.DetailStore(ctx, cred.StoreID)
	if err != nil {
		return nil, err
	}
	if store.ID == 0 {
		return nil, fmt.Errorf("%w: store %d", indexing.ErrStoreNotFound, cred.StoreID)
	}

	rows, err := uc.repo.ListEntities(ctx, repo.ListEntitiesOptions{
		APIKey:           cred.APIKey,
		TargetEntityType: model.EntityTypeProduct,
		TargetIDs:        entityIDs,
	})
	if err != nil {
		return nil, err
	}

	tracked := make(map[int64]bool, len(rows))
	for _, row := range rows {
		tracked[row.TargetID] = true

		// Rows already flagged keep their original snapshot.
		if !row.IsIndexable || row.RequiresUpdate {
			continue
		}

		product, err := uc.catalog.DetailProduct(ctx, row.TargetID)
		if err != nil {
			return nil, err
		}
		if product.ID == 0 {
			continue
		}

		origValues, err := uc.snapshotCriteria(ctx, product, store)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.MarkRequiresUpdate(ctx, repo.MarkRequiresUpdateOptions{
			ID:         row.ID,
			OrigValues: origValues,
		}); err != nil {
			return nil, err
		}
	}

	var missing []int64
	for _, id := range entityIDs {
		if !tracked[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// HandleAttributeUpdate reacts to a consumed attribute configuration change:
// every indexable row in the affected scopes is flagged for re-evaluation.
func (uc *implUseCase) HandleAttributeUpdate(ctx context.Context, event indexing.AttributeUpdateEvent) error {
	if len(event.AttributeIDs) == 0 {
		uc.l.Debugf(ctx, "indexing.usecase.HandleAttributeUpdate: empty event, nothing to do")
		return nil
	}

	creds, err := uc.creds.List(ctx)
	if err != nil {
		return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w", err)
	}

	for _, cred := range creds {
		if len(event.StoreIDs) > 0 && !util.ContainsInt64(event.StoreIDs, cred.StoreID) {
			continue
		}

		store, err := uc.catalog.DetailStore(ctx, cred.StoreID)
		if err != nil {
			return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w", err)
		}
		if store.ID == 0 {
			return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w: store %d", indexing.ErrStoreNotFound, cred.StoreID)
		}

		indexable := true
		rows, err := uc.repo.ListEntities(ctx, repo.ListEntitiesOptions{
			APIKey:           cred.APIKey,
			TargetEntityType: model.EntityTypeProduct,
			IsIndexable:      &indexable,
		})
		if err != nil {
			return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: scope %s: %w", cred.APIKey, err)
		}

		for _, row := range rows {
			if row.RequiresUpdate {
				continue
			}
			product, err := uc.catalog.DetailProduct(ctx, row.TargetID)
			if err != nil {
				return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w", err)
			}
			if product.ID == 0 {
				continue
			}
			origValues, err := uc.snapshotCriteria(ctx, product, store)
			if err != nil {
				return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w", err)
			}
			if err := uc.repo.MarkRequiresUpdate(ctx, repo.MarkRequiresUpdateOptions{
				ID:         row.ID,
				OrigValues: origValues,
			}); err != nil {
				return fmt.Errorf("indexing.usecase.HandleAttributeUpdate: %w", err)
			}
		}
	}
	return nil
}
