package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-srv/internal/model"
)

func TestRespondEntityUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes event with defaults applied", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondEntityUpdate(ctx, map[string]interface{}{
			"entityIds": []interface{}{float64(1), float64(2)},
		})
		require.NoError(t, err)
		require.Len(t, f.producer.entityEvents, 1)

		event := f.producer.entityEvents[0]
		assert.Equal(t, model.EntityTypeProduct, event.EntityType)
		assert.Equal(t, []int64{1, 2}, event.EntityIDs)
		assert.NotNil(t, event.StoreIDs)
		assert.Empty(t, event.StoreIDs)
		assert.NotNil(t, event.CustomerGroupIDs)
		assert.NotNil(t, event.EntitySubtypes)
		assert.False(t, event.EmittedAt.IsZero())
	})

	t.Run("passes through explicit scoping fields", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondEntityUpdate(ctx, map[string]interface{}{
			"entityType":       model.EntityTypeProduct,
			"entityIds":        []interface{}{float64(7)},
			"storeIds":         []interface{}{float64(1), float64(2)},
			"customerGroupIds": []interface{}{float64(3)},
			"entitySubtypes":   []interface{}{"simple", "configurable"},
		})
		require.NoError(t, err)
		require.Len(t, f.producer.entityEvents, 1)

		event := f.producer.entityEvents[0]
		assert.Equal(t, []int64{7}, event.EntityIDs)
		assert.Equal(t, []int64{1, 2}, event.StoreIDs)
		assert.Equal(t, []int64{3}, event.CustomerGroupIDs)
		assert.Equal(t, []string{"simple", "configurable"}, event.EntitySubtypes)
	})

	t.Run("suppresses invalid key without publishing", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondEntityUpdate(ctx, map[string]interface{}{
			"entityIds": []interface{}{float64(1)},
			"bogusKey":  "value",
		})
		require.NoError(t, err)
		assert.Empty(t, f.producer.entityEvents)
	})

	t.Run("skips dispatch on empty entity ids", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		require.NoError(t, f.uc.RespondEntityUpdate(ctx, map[string]interface{}{}))
		require.NoError(t, f.uc.RespondEntityUpdate(ctx, map[string]interface{}{
			"entityIds": []interface{}{},
		}))
		assert.Empty(t, f.producer.entityEvents)
	})

	t.Run("skips dispatch on non-numeric entity ids", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondEntityUpdate(ctx, map[string]interface{}{
			"entityIds": []interface{}{"one", "two"},
		})
		require.NoError(t, err)
		assert.Empty(t, f.producer.entityEvents)
	})
}

func TestRespondAttributeUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes event with defaults applied", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondAttributeUpdate(ctx, map[string]interface{}{
			"attributeIds": []interface{}{float64(5)},
		})
		require.NoError(t, err)
		require.Len(t, f.producer.attributeEvents, 1)

		event := f.producer.attributeEvents[0]
		assert.Equal(t, []int64{5}, event.AttributeIDs)
		assert.NotNil(t, event.StoreIDs)
		assert.Empty(t, event.StoreIDs)
	})

	t.Run("suppresses invalid key without publishing", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		err := f.uc.RespondAttributeUpdate(ctx, map[string]interface{}{
			"attributeIds": []interface{}{float64(5)},
			"entityIds":    []interface{}{float64(1)},
		})
		require.NoError(t, err)
		assert.Empty(t, f.producer.attributeEvents)
	})

	t.Run("skips dispatch on empty attribute ids", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		require.NoError(t, f.uc.RespondAttributeUpdate(ctx, map[string]interface{}{}))
		assert.Empty(t, f.producer.attributeEvents)
	})
}
