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

// ProcessRequiresUpdate re-evaluates the criterion snapshots of flagged rows.
// All criteria unchanged means the trigger was a false positive and the row
// settles to NO_ACTION; any difference queues a real UPDATE. The flag and
// snapshot are cleared either way. Unflagged rows are never touched.
func (uc *implUseCase) ProcessRequiresUpdate(ctx context.Context, input indexing.RequireUpdateInput) (indexing.RequireUpdateOutput, error) {
	creds, err := uc.creds.List(ctx)
	if err != nil {
		return indexing.RequireUpdateOutput{}, fmt.Errorf("indexing.usecase.ProcessRequiresUpdate: %w", err)
	}

	out := indexing.RequireUpdateOutput{}
	for _, cred := range creds {
		if len(input.APIKeys) > 0 && !util.ContainsString(input.APIKeys, cred.APIKey) {
			continue
		}
		if err := uc.processRequiresUpdateScope(ctx, cred, &out); err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.ProcessRequiresUpdate: scope %s failed: %v", cred.APIKey, err)
			out.Failures = append(out.Failures, indexing.ScopeFailure{
				APIKey:  cred.APIKey,
				StoreID: cred.StoreID,
				Message: err.Error(),
			})
		}
	}
	return out, nil
}

func (uc *implUseCase) processRequiresUpdateScope(ctx context.Context, cred credential.AccountCredentials, out *indexing.RequireUpdateOutput) error {
	store, err := uc.catalog.DetailStore(ctx, cred.StoreID)
	if err != nil {
		return err
	}
	if store.ID == 0 {
		return fmt.Errorf("%w: store %d", indexing.ErrStoreNotFound, cred.StoreID)
	}

	requiresUpdate := true
	rows, err := uc.repo.ListEntities(ctx, repo.ListEntitiesOptions{
		APIKey:         cred.APIKey,
		RequiresUpdate: &requiresUpdate,
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		out.Checked++

		changed, err := uc.criteriaChanged(ctx, store, row)
		if err != nil {
			return err
		}

		nextAction := model.ActionNoAction
		if changed {
			nextAction = model.ActionUpdate
		}
		if err := uc.repo.ResolveRequiresUpdate(ctx, repo.ResolveRequiresUpdateOptions{
			ID:         row.ID,
			NextAction: nextAction,
		}); err != nil {
			return err
		}

		if changed {
			out.QueuedUpdate++
		} else {
			out.Cleared++
		}
	}

	if len(rows) > 0 {
		if err := uc.cache.InvalidateStatistics(ctx, cred.APIKey); err != nil {
			uc.l.Warnf(ctx, "indexing.usecase.ProcessRequiresUpdate: invalidate statistics for %s: %v", cred.APIKey, err)
		}
	}
	return nil
}

// criteriaChanged re-derives every criterion in the snapshot and reports
// whether any current value differs from it.
func (uc *implUseCase) criteriaChanged(ctx context.Context, store model.Store, row model.IndexingEntity) (bool, error) {
	product, err := uc.catalog.DetailProduct(ctx, row.TargetID)
	if err != nil {
		return false, err
	}
	if product.ID == 0 {
		// Entity vanished from the catalog; definitely changed.
		return true, nil
	}

	for key, origValue := range row.RequiresUpdateOrigValues {
		criterion, ok := uc.criteria[key]
		if !ok {
			// Unknown criteria are treated as changed rather than dropped.
			uc.l.Warnf(ctx, "indexing.usecase.ProcessRequiresUpdate: unknown criterion %q on entity %d", key, row.ID)
			return true, nil
		}

		current, err := criterion.Evaluate(ctx, product, store)
		if err != nil {
			return false, err
		}
		if current != origValue {
			return true, nil
		}
	}
	return false, nil
}

// snapshotCriteria captures the current value of every registered criterion.
func (uc *implUseCase) snapshotCriteria(ctx context.Context, product model.Product, store model.Store) (model.OrigValues, error) {
	values := make(model.OrigValues, len(uc.criteria))
	for key, criterion := range uc.criteria {
		current, err := criterion.Evaluate(ctx, product, store)
		if err != nil {
			return nil, err
		}
		values[key] = current
	}
	return values, nil
}
