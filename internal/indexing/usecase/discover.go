package usecase

import (
	"context"
	"fmt"
	"time"

	catalogRepo "catalog-sync-srv/internal/catalog/repository"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/util"
)

// Discover compares live catalog state against persisted indexing rows for
// every configured (store, apiKey) scope and emits insert/update transitions.
// A failing scope is reported and does not halt the others.
func (uc *implUseCase) Discover(ctx context.Context, input indexing.DiscoverInput) (indexing.DiscoverOutput, error) {
	startTime := time.Now()

	if input.EntityType == "" {
		input.EntityType = model.EntityTypeProduct
	}
	if input.EntityType != model.EntityTypeProduct {
		return indexing.DiscoverOutput{}, fmt.Errorf("%w: %s", indexing.ErrUnknownEntityType, input.EntityType)
	}

	creds, err := uc.creds.List(ctx)
	if err != nil {
		return indexing.DiscoverOutput{}, fmt.Errorf("indexing.usecase.Discover: %w", err)
	}

	out := indexing.DiscoverOutput{}
	for _, cred := range creds {
		if len(input.APIKeys) > 0 && !util.ContainsString(input.APIKeys, cred.APIKey) {
			continue
		}

		store, err := uc.catalog.DetailStore(ctx, cred.StoreID)
		if err == nil && store.ID == 0 {
			err = fmt.Errorf("%w: store %d", indexing.ErrStoreNotFound, cred.StoreID)
		}
		if err == nil {
			err = uc.discoverScope(ctx, cred, store, input.EntityIDs, &out)
		}
		if err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.Discover: scope %s failed: %v", cred.APIKey, err)
			out.Failures = append(out.Failures, indexing.ScopeFailure{
				APIKey:  cred.APIKey,
				StoreID: cred.StoreID,
				Message: err.Error(),
			})
		}
	}

	out.Duration = time.Since(startTime)
	return out, nil
}

// discoverScope reconciles one (store, apiKey) scope. An empty entityIDs
// filter means all products; a non-empty filter leaves all other rows
// untouched for this run.
func (uc *implUseCase) discoverScope(ctx context.Context, cred credential.AccountCredentials, store model.Store, entityIDs []int64, out *indexing.DiscoverOutput) error {
	products, err := uc.catalog.ListProducts(ctx, catalogRepo.ListProductsOptions{IDs: entityIDs})
	if err != nil {
		return err
	}

	mutated := false
	for _, product := range products {
		indexable, err := uc.currentlyIndexable(ctx, product, store, nil)
		if err != nil {
			return err
		}
		changed, err := uc.reconcileRow(ctx, cred, store, product, nil, indexable, out)
		if err != nil {
			return err
		}
		mutated = mutated || changed

		// Configurable children are tracked as variant rows keyed by the
		// parent id; grouped and bundle composites stay single records.
		if product.TypeID != model.ProductTypeConfigurable {
			continue
		}
		children, err := uc.catalog.ListChildProducts(ctx, product.ID)
		if err != nil {
			return err
		}
		for _, child := range children {
			parent := product
			childIndexable, err := uc.currentlyIndexable(ctx, child, store, &parent)
			if err != nil {
				return err
			}
			changed, err := uc.reconcileRow(ctx, cred, store, child, &parent, childIndexable, out)
			if err != nil {
				return err
			}
			mutated = mutated || changed
		}
	}

	if mutated {
		if err := uc.cache.InvalidateStatistics(ctx, cred.APIKey); err != nil {
			uc.l.Warnf(ctx, "indexing.usecase.Discover: invalidate statistics for %s: %v", cred.APIKey, err)
		}
	}
	return nil
}

// currentlyIndexable computes whether the product should be present in the
// remote index for the store scope right now.
func (uc *implUseCase) currentlyIndexable(ctx context.Context, product model.Product, store model.Store, parent *model.Product) (bool, error) {
	if uc.cfg.ExcludeDisabledProducts {
		if !product.IsEnabled() {
			return false, nil
		}
		if parent != nil && !parent.IsEnabled() {
			return false, nil
		}
	}

	// A product stripped of all website links is excluded, never defaulted.
	if !product.AssignedToWebsite(store.WebsiteID) {
		return false, nil
	}

	if uc.cfg.ExcludeOOSProducts {
		inStock, err := uc.stock.Get(ctx, product, store, parent)
		if err != nil {
			return false, err
		}
		if !inStock {
			return false, nil
		}
	}
	return true, nil
}

// reconcileRow applies the discovery transition table to one row tuple.
// Returns whether the row was written.
func (uc *implUseCase) reconcileRow(ctx context.Context, cred credential.AccountCredentials, store model.Store, product model.Product, parent *model.Product, indexable bool, out *indexing.DiscoverOutput) (bool, error) {
	var parentID *int64
	if parent != nil {
		parentID = &parent.ID
	}

	out.Processed++

	row, err := uc.repo.GetOneEntity(ctx, repo.GetOneEntityOptions{
		APIKey:           cred.APIKey,
		TargetEntityType: model.EntityTypeProduct,
		TargetID:         product.ID,
		TargetParentID:   parentID,
	})
	if err != nil {
		return false, err
	}

	// First sighting: the row records current indexability either way, so
	// an excluded product is visible as a tracked non-indexable entity.
	if row.ID == 0 {
		nextAction := model.ActionNoAction
		if indexable {
			nextAction = model.ActionAdd
		}
		if _, err := uc.repo.CreateEntity(ctx, repo.CreateEntityOptions{
			APIKey:           cred.APIKey,
			TargetEntityType: model.EntityTypeProduct,
			TargetID:         product.ID,
			TargetParentID:   parentID,
			TargetSubtype:    product.TypeID,
			IsIndexable:      indexable,
			NextAction:       nextAction,
		}); err != nil {
			return false, err
		}
		out.Created++
		return true, nil
	}

	switch {
	case row.IsIndexable && indexable:
		return uc.reconcileStillIndexable(ctx, cred, store, product, parent, row, out)

	case row.IsIndexable && !indexable:
		// Remove from the remote index only if something was ever sent.
		nextAction := model.ActionNoAction
		if row.LastAction != model.ActionNoAction {
			nextAction = model.ActionDelete
		}
		if err := uc.updateActions(ctx, row.ID, boolPtr(false), &nextAction); err != nil {
			return false, err
		}
		out.Updated++
		return true, nil

	case !row.IsIndexable && !indexable:
		// Already correct; skipped, not re-written.
		out.Skipped++
		return false, nil

	default: // !row.IsIndexable && indexable
		nextAction := uc.reindexAction(row)
		if err := uc.updateActions(ctx, row.ID, boolPtr(true), &nextAction); err != nil {
			return false, err
		}
		out.Updated++
		return true, nil
	}
}

// reconcileStillIndexable handles rows that stay indexable: stale DELETE
// cancellation and the generic "update required?" check.
func (uc *implUseCase) reconcileStillIndexable(ctx context.Context, cred credential.AccountCredentials, store model.Store, product model.Product, parent *model.Product, row model.IndexingEntity, out *indexing.DiscoverOutput) (bool, error) {
	if row.NextAction == model.ActionDelete {
		// A stale deletion queued before the product became relevant again.
		// Already-synced rows cancel to NO_ACTION; never-synced rows still
		// need the initial add.
		nextAction := model.ActionAdd
		if row.WasSynced() {
			nextAction = model.ActionNoAction
		}
		if err := uc.updateActions(ctx, row.ID, nil, &nextAction); err != nil {
			return false, err
		}
		out.Updated++
		return true, nil
	}

	// Pending work stays pending; only settled rows get the update check.
	if row.NextAction != model.ActionNoAction {
		out.Skipped++
		return false, nil
	}

	changed, err := uc.updateRequired(ctx, cred, store, product, parent, row)
	if err != nil {
		return false, err
	}
	if !changed {
		out.Skipped++
		return false, nil
	}

	nextAction := model.ActionUpdate
	if err := uc.updateActions(ctx, row.ID, nil, &nextAction); err != nil {
		return false, err
	}
	out.Updated++
	return true, nil
}

// reindexAction decides the action for a row flipping back to indexable.
func (uc *implUseCase) reindexAction(row model.IndexingEntity) model.Action {
	if row.NextAction == model.ActionDelete {
		// Pending delete never executed; the remote copy matches whether
		// the row was synced before.
		if row.WasSynced() {
			return model.ActionNoAction
		}
		return model.ActionAdd
	}
	if row.LastAction == model.ActionDelete || !row.WasSynced() {
		// Remote copy is gone or never existed.
		return model.ActionAdd
	}
	// Remote copy still exists but may be stale.
	return model.ActionUpdate
}

// updateRequired reports whether the serialized record for the row differs
// from what was last synced, based on the cached payload hash.
func (uc *implUseCase) updateRequired(ctx context.Context, cred credential.AccountCredentials, store model.Store, product model.Product, parent *model.Product, row model.IndexingEntity) (bool, error) {
	cached, err := uc.cache.GetPayloadHash(ctx, cred.APIKey, row.RecordID())
	if err != nil {
		return false, err
	}
	if cached == "" {
		// Nothing recorded about the last submission; refresh synced rows.
		return row.WasSynced(), nil
	}

	record, err := uc.buildRecordPayload(ctx, cred, store, product, parent, row)
	if err != nil {
		return false, err
	}
	return payloadHash(record) != cached, nil
}

func (uc *implUseCase) updateActions(ctx context.Context, id int64, isIndexable *bool, nextAction *model.Action) error {
	return uc.repo.UpdateEntityActions(ctx, repo.UpdateEntityActionsOptions{
		ID:          id,
		IsIndexable: isIndexable,
		NextAction:  nextAction,
	})
}

func boolPtr(b bool) *bool { return &b }
