package postgre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildListEntitiesQuery(t *testing.T) {
	r := &implRepository{}

	t.Run("no filters", func(t *testing.T) {
		query, args := r.buildListEntitiesQuery(repo.ListEntitiesOptions{})
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY id ASC")
		assert.Empty(t, args)
	})

	t.Run("combines filters with AND and sequential placeholders", func(t *testing.T) {
		query, args := r.buildListEntitiesQuery(repo.ListEntitiesOptions{
			APIKey:           "klevu-1234567890",
			TargetEntityType: model.EntityTypeProduct,
			NextAction:       model.ActionAdd,
			OnlyUnlocked:     true,
			Limit:            50,
		})
		assert.Contains(t, query, "api_key = $1")
		assert.Contains(t, query, "target_entity_type = $2")
		assert.Contains(t, query, "next_action = $3")
		assert.Contains(t, query, "lock_timestamp IS NULL")
		assert.Contains(t, query, "LIMIT $4")
		require.Len(t, args, 4)
		assert.Equal(t, "klevu-1234567890", args[0])
		assert.Equal(t, string(model.ActionAdd), args[2])
		assert.Equal(t, 50, args[3])
	})

	t.Run("id lists use ANY", func(t *testing.T) {
		query, args := r.buildListEntitiesQuery(repo.ListEntitiesOptions{
			TargetIDs: []int64{1, 2, 3},
		})
		assert.Contains(t, query, "target_id = ANY($1)")
		require.Len(t, args, 1)
	})

	t.Run("boolean filters distinguish false from unset", func(t *testing.T) {
		query, args := r.buildListEntitiesQuery(repo.ListEntitiesOptions{
			IsIndexable:    boolPtr(false),
			RequiresUpdate: boolPtr(true),
		})
		assert.Contains(t, query, "is_indexable = $1")
		assert.Contains(t, query, "requires_update = $2")
		require.Len(t, args, 2)
		assert.Equal(t, false, args[0])
		assert.Equal(t, true, args[1])
	})

	t.Run("zero limit omits the LIMIT clause", func(t *testing.T) {
		query, _ := r.buildListEntitiesQuery(repo.ListEntitiesOptions{APIKey: "klevu-1234567890"})
		assert.NotContains(t, query, "LIMIT")
	})
}

func TestBuildGetEntitiesQuery(t *testing.T) {
	r := &implRepository{}

	t.Run("default ordering and pagination", func(t *testing.T) {
		query, args := r.buildGetEntitiesQuery(repo.GetEntitiesOptions{
			APIKey: "klevu-1234567890",
			Limit:  25,
			Offset: 50,
		})
		assert.Contains(t, query, "ORDER BY updated_at DESC")
		assert.Contains(t, query, "LIMIT $2")
		assert.Contains(t, query, "OFFSET $3")
		require.Len(t, args, 3)
		assert.Equal(t, 25, args[1])
		assert.Equal(t, 50, args[2])
	})

	t.Run("explicit ordering wins", func(t *testing.T) {
		query, _ := r.buildGetEntitiesQuery(repo.GetEntitiesOptions{OrderBy: "id ASC"})
		assert.Contains(t, query, "ORDER BY id ASC")
		assert.NotContains(t, query, "updated_at DESC")
	})

	t.Run("target id filter", func(t *testing.T) {
		query, args := r.buildGetEntitiesQuery(repo.GetEntitiesOptions{TargetID: 7})
		assert.Contains(t, query, "target_id = $1")
		require.Len(t, args, 1)
		assert.Equal(t, int64(7), args[0])
	})
}

func TestBuildGetEntitiesCountQuery(t *testing.T) {
	r := &implRepository{}

	t.Run("count query shares the filters but not pagination", func(t *testing.T) {
		opt := repo.GetEntitiesOptions{
			APIKey:         "klevu-1234567890",
			NextAction:     model.ActionDelete,
			RequiresUpdate: boolPtr(true),
			Limit:          10,
			Offset:         20,
		}
		query, args := r.buildGetEntitiesCountQuery(opt)
		assert.Contains(t, query, "SELECT COUNT(*) FROM indexing_entities")
		assert.Contains(t, query, "api_key = $1")
		assert.Contains(t, query, "next_action = $2")
		assert.Contains(t, query, "requires_update = $3")
		assert.NotContains(t, query, "LIMIT")
		assert.NotContains(t, query, "OFFSET")
		require.Len(t, args, 3)
	})

	t.Run("no filters counts everything", func(t *testing.T) {
		query, args := r.buildGetEntitiesCountQuery(repo.GetEntitiesOptions{})
		assert.Equal(t, "SELECT COUNT(*) FROM indexing_entities", query)
		assert.Empty(t, args)
	})
}
