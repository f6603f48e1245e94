package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
)

// Sync selects unlocked rows pending this executor's action, submits one
// batch to the remote index and commits the per-row state transitions the
// response allows. Credentials are validated before any remote call; invalid
// credentials fail the run with rows unlocked and unchanged.
func (uc *implUseCase) Sync(ctx context.Context, input indexing.SyncInput) (indexing.IndexerResult, error) {
	startTime := time.Now()
	result := indexing.IndexerResult{
		APIKey: input.APIKey,
		Action: input.Action,
		Status: indexing.SyncStatusNoop,
	}

	switch input.Action {
	case model.ActionAdd, model.ActionUpdate, model.ActionDelete:
	default:
		return result, fmt.Errorf("%w: %s", indexing.ErrUnknownAction, input.Action)
	}

	if !uc.cfg.EnableProductSync {
		uc.l.Debugf(ctx, "indexing.usecase.Sync: product sync disabled, skipping %s for %s", input.Action, input.APIKey)
		result.Duration = time.Since(startTime)
		return result, nil
	}

	cred, err := uc.creds.ForAPIKey(ctx, input.APIKey)
	if err != nil {
		result.Status = indexing.SyncStatusFailure
		return result, err
	}
	if err := uc.creds.Validate(cred); err != nil {
		result.Status = indexing.SyncStatusFailure
		return result, err
	}

	store, err := uc.catalog.DetailStore(ctx, cred.StoreID)
	if err != nil {
		result.Status = indexing.SyncStatusFailure
		return result, err
	}
	if store.ID == 0 {
		result.Status = indexing.SyncStatusFailure
		return result, fmt.Errorf("%w: store %d", indexing.ErrStoreNotFound, cred.StoreID)
	}

	rows, err := uc.repo.ListEntities(ctx, repo.ListEntitiesOptions{
		APIKey:           input.APIKey,
		TargetEntityType: model.EntityTypeProduct,
		NextAction:       input.Action,
		OnlyUnlocked:     true,
		Limit:            uc.cfg.BatchSize,
	})
	if err != nil {
		result.Status = indexing.SyncStatusFailure
		return result, err
	}
	if len(rows) == 0 {
		uc.l.Debugf(ctx, "indexing.usecase.Sync: nothing pending %s for %s", input.Action, input.APIKey)
		result.Duration = time.Since(startTime)
		return result, nil
	}

	ids := make([]int64, len(rows))
	byID := make(map[int64]model.IndexingEntity, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		byID[row.ID] = row
	}
	lockedIDs, err := uc.repo.LockEntities(ctx, ids, time.Now())
	if err != nil {
		result.Status = indexing.SyncStatusFailure
		return result, err
	}
	locked := make([]model.IndexingEntity, 0, len(lockedIDs))
	for _, id := range lockedIDs {
		locked = append(locked, byID[id])
	}
	if len(locked) == 0 {
		result.Duration = time.Since(startTime)
		return result, nil
	}

	submitted, hashes, calls, remoteErr := uc.submitBatch(ctx, cred, store, input.Action, locked)
	result.Calls = calls
	result.Processed = len(locked)
	if remoteErr != nil {
		// The whole batch never reached the remote; release everything.
		if err := uc.repo.UnlockEntities(ctx, lockedIDs); err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.Sync: unlock after failure: %v", err)
		}
		result.Status = indexing.SyncStatusFailure
		result.Duration = time.Since(startTime)
		return result, remoteErr
	}

	succeeded, failed := uc.reconcileResults(ctx, cred, input.Action, submitted, hashes, &result)

	// Rows that failed to build never left the process; unlock them too.
	built := make(map[int64]bool, len(submitted))
	for _, row := range submitted {
		built[row.ID] = true
	}
	var unbuilt []int64
	for _, row := range locked {
		if !built[row.ID] {
			unbuilt = append(unbuilt, row.ID)
		}
	}
	if len(unbuilt) > 0 {
		if err := uc.repo.UnlockEntities(ctx, unbuilt); err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.Sync: unlock unbuilt rows: %v", err)
		}
	}

	switch {
	case succeeded == len(locked):
		result.Status = indexing.SyncStatusSuccess
	case succeeded > 0:
		result.Status = indexing.SyncStatusPartial
	case failed > 0 || len(unbuilt) > 0:
		result.Status = indexing.SyncStatusFailure
	}

	if err := uc.cache.InvalidateStatistics(ctx, cred.APIKey); err != nil {
		uc.l.Warnf(ctx, "indexing.usecase.Sync: invalidate statistics for %s: %v", cred.APIKey, err)
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// submitBatch builds payloads for the locked rows and performs the remote
// call. Rows whose payload cannot be built are reported as failed calls and
// excluded from the submission. The returned hashes fingerprint what was
// actually sent, keyed by record id.
func (uc *implUseCase) submitBatch(ctx context.Context, cred credential.AccountCredentials, store model.Store, action model.Action, locked []model.IndexingEntity) ([]model.IndexingEntity, map[string]string, []indexing.SyncCallResult, error) {
	calls := make([]indexing.SyncCallResult, 0, len(locked))

	if action == model.ActionDelete {
		recordIDs := make([]string, len(locked))
		for i, row := range locked {
			recordIDs[i] = row.RecordID()
		}
		results, err := uc.searchIndex.DeleteRecords(ctx, cred, recordIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		return locked, nil, appendRemoteCalls(calls, results), nil
	}

	submitted := make([]model.IndexingEntity, 0, len(locked))
	records := make([]indexing.Record, 0, len(locked))
	hashes := make(map[string]string, len(locked))
	for _, row := range locked {
		record, err := uc.rowPayload(ctx, cred, store, row)
		if err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.Sync: build record %s: %v", row.RecordID(), err)
			calls = append(calls, indexing.SyncCallResult{
				RecordID: row.RecordID(),
				Success:  false,
				Messages: []string{err.Error()},
			})
			continue
		}
		submitted = append(submitted, row)
		records = append(records, record)
		hashes[record.ID] = payloadHash(record)
	}
	if len(records) == 0 {
		return submitted, hashes, calls, nil
	}

	results, err := uc.searchIndex.PutRecords(ctx, cred, records)
	if err != nil {
		return nil, nil, nil, err
	}
	return submitted, hashes, appendRemoteCalls(calls, results), nil
}

// rowPayload loads the catalog entities behind one row and serializes them.
func (uc *implUseCase) rowPayload(ctx context.Context, cred credential.AccountCredentials, store model.Store, row model.IndexingEntity) (indexing.Record, error) {
	product, err := uc.catalog.DetailProduct(ctx, row.TargetID)
	if err != nil {
		return indexing.Record{}, err
	}
	if product.ID == 0 {
		return indexing.Record{}, fmt.Errorf("product %d not found", row.TargetID)
	}

	var parent *model.Product
	if row.TargetParentID != nil {
		p, err := uc.catalog.DetailProduct(ctx, *row.TargetParentID)
		if err != nil {
			return indexing.Record{}, err
		}
		if p.ID == 0 {
			return indexing.Record{}, fmt.Errorf("parent product %d not found", *row.TargetParentID)
		}
		parent = &p
	}

	return uc.buildRecordPayload(ctx, cred, store, product, parent, row)
}

// reconcileResults commits transitions for successful calls and releases
// failed rows for the next scheduled run.
func (uc *implUseCase) reconcileResults(ctx context.Context, cred credential.AccountCredentials, action model.Action, submitted []model.IndexingEntity, hashes map[string]string, result *indexing.IndexerResult) (succeeded, failed int) {
	byRecordID := make(map[string]indexing.SyncCallResult, len(result.Calls))
	for _, call := range result.Calls {
		byRecordID[call.RecordID] = call
	}

	now := time.Now()
	for _, row := range submitted {
		call, ok := byRecordID[row.RecordID()]
		if !ok {
			call = indexing.SyncCallResult{RecordID: row.RecordID(), Success: false, Messages: []string{"no response for record"}}
		}

		if !call.Success {
			failed++
			if err := uc.repo.UnlockEntities(ctx, []int64{row.ID}); err != nil {
				uc.l.Errorf(ctx, "indexing.usecase.Sync: unlock %d: %v", row.ID, err)
			}
			uc.appendHistory(ctx, row, action, false, joinMessages(call.Messages))
			continue
		}

		succeeded++
		if err := uc.repo.RecordSyncSuccess(ctx, repo.RecordSyncSuccessOptions{
			ID:          row.ID,
			Action:      action,
			SyncedAt:    now,
			IsIndexable: action != model.ActionDelete,
		}); err != nil {
			uc.l.Errorf(ctx, "indexing.usecase.Sync: record success %d: %v", row.ID, err)
			continue
		}
		uc.appendHistory(ctx, row, action, true, "")
		uc.storePayloadHash(ctx, cred, action, row, hashes[row.RecordID()])
	}
	return succeeded, failed
}

func (uc *implUseCase) storePayloadHash(ctx context.Context, cred credential.AccountCredentials, action model.Action, row model.IndexingEntity, hash string) {
	if action == model.ActionDelete {
		if err := uc.cache.DeletePayloadHash(ctx, cred.APIKey, row.RecordID()); err != nil {
			uc.l.Warnf(ctx, "indexing.usecase.Sync: drop payload hash %s: %v", row.RecordID(), err)
		}
		return
	}
	if hash == "" {
		return
	}
	if err := uc.cache.SetPayloadHash(ctx, cred.APIKey, row.RecordID(), hash); err != nil {
		uc.l.Warnf(ctx, "indexing.usecase.Sync: store payload hash %s: %v", row.RecordID(), err)
	}
}

func (uc *implUseCase) appendHistory(ctx context.Context, row model.IndexingEntity, action model.Action, success bool, message string) {
	if err := uc.repo.CreateHistory(ctx, repo.CreateHistoryOptions{
		IndexingEntityID: row.ID,
		APIKey:           row.APIKey,
		TargetEntityType: row.TargetEntityType,
		TargetID:         row.TargetID,
		TargetParentID:   row.TargetParentID,
		Action:           action,
		IsSuccess:        success,
		Message:          message,
	}); err != nil {
		uc.l.Warnf(ctx, "indexing.usecase.Sync: append history for %d: %v", row.ID, err)
	}
}

// SyncAll runs the three executors for one api key in delete, add, update
// order so removals land before re-additions.
func (uc *implUseCase) SyncAll(ctx context.Context, apiKey string) ([]indexing.IndexerResult, error) {
	actions := []model.Action{model.ActionDelete, model.ActionAdd, model.ActionUpdate}

	results := make([]indexing.IndexerResult, 0, len(actions))
	for _, action := range actions {
		result, err := uc.Sync(ctx, indexing.SyncInput{APIKey: apiKey, Action: action})
		results = append(results, result)
		if err != nil {
			var credErr *credential.InvalidCredentialsError
			if errors.As(err, &credErr) {
				// Fatal for every action of this api key.
				return results, err
			}
			uc.l.Errorf(ctx, "indexing.usecase.SyncAll: %s %s: %v", apiKey, action, err)
		}
	}
	return results, nil
}

func appendRemoteCalls(calls []indexing.SyncCallResult, results []repo.RemoteResult) []indexing.SyncCallResult {
	for _, res := range results {
		calls = append(calls, indexing.SyncCallResult{
			RecordID: res.RecordID,
			Success:  res.Success,
			Messages: res.Messages,
		})
	}
	return calls
}

func joinMessages(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	out := messages[0]
	for _, m := range messages[1:] {
		out += "; " + m
	}
	return out
}
