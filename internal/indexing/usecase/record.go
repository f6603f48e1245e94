package usecase

import (
	"catalog-sync-srv/internal/indexing"
)

// BuildRecord wraps an entity and optional parent into an indexing record.
// Both arguments must carry the extensible entity capability; the record is
// an immutable triple with no further transformation.
func (uc *implUseCase) BuildRecord(recordID string, entity interface{}, parent interface{}) (indexing.IndexingRecord, error) {
	ent, ok := entity.(indexing.ExtensibleEntity)
	if !ok || ent == nil {
		return indexing.IndexingRecord{}, &indexing.InvalidRecordDataTypeError{Role: "entity"}
	}

	var par indexing.ExtensibleEntity
	if parent != nil {
		par, ok = parent.(indexing.ExtensibleEntity)
		if !ok {
			return indexing.IndexingRecord{}, &indexing.InvalidRecordDataTypeError{Role: "parent"}
		}
	}

	return indexing.IndexingRecord{
		RecordID: recordID,
		Entity:   ent,
		Parent:   par,
	}, nil
}
