package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	pkgQdrant "catalog-sync-srv/pkg/qdrant"
)

// PutRecords submits add/update records for one account. The batch is
// upserted in one call; if the batch call fails, each point is retried
// individually so callers get per-record results instead of one opaque
// failure.
func (r *implRepository) PutRecords(ctx context.Context, cred credential.AccountCredentials, records []indexing.Record) ([]repo.RemoteResult, error) {
	if len(records) == 0 {
		return nil, nil
	}

	colName := collectionName(cred.APIKey)
	if err := r.client.EnsureCollection(ctx, colName, vectorSize); err != nil {
		return nil, fmt.Errorf("indexing.repository.PutRecords: %w", err)
	}

	points := make([]pkgQdrant.Point, 0, len(records))
	for _, rec := range records {
		point, err := r.buildPoint(cred.APIKey, rec)
		if err != nil {
			return nil, fmt.Errorf("indexing.repository.PutRecords: %w", err)
		}
		points = append(points, point)
	}

	results := make([]repo.RemoteResult, 0, len(records))
	if err := r.client.UpsertPoints(ctx, colName, points); err != nil {
		r.l.Warnf(ctx, "indexing.repository.PutRecords: batch upsert failed, retrying per record: %v", err)
		for i, point := range points {
			res := repo.RemoteResult{RecordID: records[i].ID, Success: true}
			if perr := r.client.UpsertPoints(ctx, colName, []pkgQdrant.Point{point}); perr != nil {
				res.Success = false
				res.Messages = []string{perr.Error()}
			}
			results = append(results, res)
		}
		return results, nil
	}

	for _, rec := range records {
		results = append(results, repo.RemoteResult{RecordID: rec.ID, Success: true})
	}
	return results, nil
}

// DeleteRecords removes records for one account by record id.
func (r *implRepository) DeleteRecords(ctx context.Context, cred credential.AccountCredentials, recordIDs []string) ([]repo.RemoteResult, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}

	colName := collectionName(cred.APIKey)
	pointIDs := make([]string, 0, len(recordIDs))
	for _, id := range recordIDs {
		pointIDs = append(pointIDs, pointID(cred.APIKey, id))
	}

	results := make([]repo.RemoteResult, 0, len(recordIDs))
	if err := r.client.DeletePoints(ctx, colName, pointIDs); err != nil {
		r.l.Warnf(ctx, "indexing.repository.DeleteRecords: batch delete failed, retrying per record: %v", err)
		for i, pid := range pointIDs {
			res := repo.RemoteResult{RecordID: recordIDs[i], Success: true}
			if perr := r.client.DeletePoints(ctx, colName, []string{pid}); perr != nil {
				res.Success = false
				res.Messages = []string{perr.Error()}
			}
			results = append(results, res)
		}
		return results, nil
	}

	for _, id := range recordIDs {
		results = append(results, repo.RemoteResult{RecordID: id, Success: true})
	}
	return results, nil
}

func (r *implRepository) buildPoint(apiKey string, rec indexing.Record) (pkgQdrant.Point, error) {
	// Round-trip through JSON to normalize attribute values into the
	// structpb-compatible shape.
	raw, err := json.Marshal(rec)
	if err != nil {
		return pkgQdrant.Point{}, err
	}
	payload := make(map[string]interface{})
	if err := json.Unmarshal(raw, &payload); err != nil {
		return pkgQdrant.Point{}, err
	}

	return pkgQdrant.Point{
		ID:      pointID(apiKey, rec.ID),
		Vector:  hashedVector(searchText(rec), vectorSize),
		Payload: payload,
	}, nil
}

// collectionName derives the per-account collection, e.g. "records_klevu_1234".
func collectionName(apiKey string) string {
	return "records_" + strings.ReplaceAll(apiKey, "-", "_")
}

// pointID maps a record id to a deterministic UUID so re-submissions of the
// same record upsert the same point.
func pointID(apiKey, recordID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("catalog-sync/"+apiKey+"/"+recordID)).String()
}

// searchText concatenates the textual attributes used for the term vector.
func searchText(rec indexing.Record) string {
	var sb strings.Builder
	for _, key := range []string{"sku", "name", "description", "shortDescription"} {
		if v, ok := rec.Attributes[key].(string); ok && v != "" {
			sb.WriteString(v)
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(strings.Join(rec.Relations.Categories, " "))
	return sb.String()
}
