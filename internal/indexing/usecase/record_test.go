package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
)

func TestBuildRecord(t *testing.T) {
	f := newFixture(defaultScopeConfig())

	t.Run("wraps entity and parent", func(t *testing.T) {
		child := testProduct(2, testWebsiteID)
		parent := testProduct(1, testWebsiteID)
		parent.TypeID = model.ProductTypeConfigurable

		record, err := f.uc.BuildRecord("1-2", &child, &parent)
		require.NoError(t, err)
		assert.Equal(t, "1-2", record.RecordID)
		assert.Equal(t, int64(2), record.Entity.EntityID())
		require.NotNil(t, record.Parent)
		assert.Equal(t, int64(1), record.Parent.EntityID())
		assert.Equal(t, model.ProductTypeConfigurable, record.Parent.EntitySubtype())
	})

	t.Run("nil parent is allowed", func(t *testing.T) {
		entity := testProduct(1, testWebsiteID)

		record, err := f.uc.BuildRecord("1", &entity, nil)
		require.NoError(t, err)
		assert.Nil(t, record.Parent)
	})

	t.Run("rejects entity without the extensible capability", func(t *testing.T) {
		_, err := f.uc.BuildRecord("1", "not an entity", nil)
		var typeErr *indexing.InvalidRecordDataTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "entity", typeErr.Role)
	})

	t.Run("rejects nil entity", func(t *testing.T) {
		_, err := f.uc.BuildRecord("1", nil, nil)
		var typeErr *indexing.InvalidRecordDataTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "entity", typeErr.Role)
	})

	t.Run("rejects parent without the extensible capability", func(t *testing.T) {
		entity := testProduct(2, testWebsiteID)

		_, err := f.uc.BuildRecord("1-2", &entity, 42)
		var typeErr *indexing.InvalidRecordDataTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "parent", typeErr.Role)
	})
}
