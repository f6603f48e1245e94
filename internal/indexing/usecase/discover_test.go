package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
)

const (
	testAPIKey    = "klevu-1234567890"
	testStoreID   = int64(1)
	testWebsiteID = int64(10)
)

func syncedAt(t *testing.T) *time.Time {
	t.Helper()
	ts := time.Now().Add(-time.Hour)
	return &ts
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown entity type", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{EntityType: "KLEVU_CMS"})
		require.ErrorIs(t, err, indexing.ErrUnknownEntityType)
	})

	t.Run("creates row with ADD for new indexable product", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Created)
		assert.Empty(t, out.Failures)

		row := f.repo.get(1)
		assert.Equal(t, testAPIKey, row.APIKey)
		assert.Equal(t, model.EntityTypeProduct, row.TargetEntityType)
		assert.Equal(t, int64(1), row.TargetID)
		assert.Nil(t, row.TargetParentID)
		assert.True(t, row.IsIndexable)
		assert.Equal(t, model.ActionAdd, row.NextAction)
	})

	t.Run("creates non-indexable row for disabled product", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.Status = model.ProductStatusDisabled
		f.addProduct(p)

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Created)

		row := f.repo.get(1)
		assert.False(t, row.IsIndexable)
		assert.Equal(t, model.ActionNoAction, row.NextAction)
	})

	t.Run("excludes product without website assignment", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.WebsiteIDs = nil
		f.addProduct(p)

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.False(t, f.repo.get(1).IsIndexable)
	})

	t.Run("queues DELETE when synced row becomes non-indexable", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.stock.inStock[1] = false
		f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         true,
			NextAction:          model.ActionNoAction,
			LastAction:          model.ActionAdd,
			LastActionTimestamp: syncedAt(t),
		})

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Updated)

		row := f.repo.get(1)
		assert.False(t, row.IsIndexable)
		assert.Equal(t, model.ActionDelete, row.NextAction)
	})

	t.Run("settles to NO_ACTION when never-synced row becomes non-indexable", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.stock.inStock[1] = false
		f.repo.seed(model.IndexingEntity{
			APIKey:           testAPIKey,
			TargetEntityType: model.EntityTypeProduct,
			TargetID:         1,
			IsIndexable:      true,
			NextAction:       model.ActionAdd,
			LastAction:       model.ActionNoAction,
		})

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)

		row := f.repo.get(1)
		assert.False(t, row.IsIndexable)
		assert.Equal(t, model.ActionNoAction, row.NextAction)
	})

	t.Run("cancels stale DELETE on synced row that is indexable again", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         true,
			NextAction:          model.ActionDelete,
			LastAction:          model.ActionAdd,
			LastActionTimestamp: syncedAt(t),
		})

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, model.ActionNoAction, f.repo.get(1).NextAction)
	})

	t.Run("stale DELETE on never-synced row falls back to ADD", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:           testAPIKey,
			TargetEntityType: model.EntityTypeProduct,
			TargetID:         1,
			IsIndexable:      true,
			NextAction:       model.ActionDelete,
			LastAction:       model.ActionNoAction,
		})

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, model.ActionAdd, f.repo.get(1).NextAction)
	})

	t.Run("re-adds row whose remote copy was deleted", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         false,
			NextAction:          model.ActionNoAction,
			LastAction:          model.ActionDelete,
			LastActionTimestamp: syncedAt(t),
		})

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Updated)

		row := f.repo.get(1)
		assert.True(t, row.IsIndexable)
		assert.Equal(t, model.ActionAdd, row.NextAction)
	})

	t.Run("updates re-indexable row whose remote copy still exists", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         false,
			NextAction:          model.ActionNoAction,
			LastAction:          model.ActionAdd,
			LastActionTimestamp: syncedAt(t),
		})

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)

		row := f.repo.get(1)
		assert.True(t, row.IsIndexable)
		assert.Equal(t, model.ActionUpdate, row.NextAction)
	})

	t.Run("skips row that stays non-indexable", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.Status = model.ProductStatusDisabled
		f.addProduct(p)
		f.repo.seed(model.IndexingEntity{
			APIKey:           testAPIKey,
			TargetEntityType: model.EntityTypeProduct,
			TargetID:         1,
			IsIndexable:      false,
			NextAction:       model.ActionNoAction,
		})

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Skipped)
		assert.Zero(t, out.Created)
		assert.Zero(t, out.Updated)
	})

	t.Run("leaves pending work pending", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:           testAPIKey,
			TargetEntityType: model.EntityTypeProduct,
			TargetID:         1,
			IsIndexable:      true,
			NextAction:       model.ActionAdd,
		})

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Skipped)
		assert.Equal(t, model.ActionAdd, f.repo.get(1).NextAction)
	})

	t.Run("queues UPDATE when cached payload hash differs", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         true,
			NextAction:          model.ActionNoAction,
			LastAction:          model.ActionAdd,
			LastActionTimestamp: syncedAt(t),
		})
		require.NoError(t, f.cache.SetPayloadHash(ctx, testAPIKey, "1", "stale-hash"))

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, model.ActionUpdate, f.repo.get(1).NextAction)
	})

	t.Run("skips settled row when cached payload hash matches", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		row := f.repo.seed(model.IndexingEntity{
			APIKey:              testAPIKey,
			TargetEntityType:    model.EntityTypeProduct,
			TargetID:            1,
			IsIndexable:         true,
			NextAction:          model.ActionNoAction,
			LastAction:          model.ActionAdd,
			LastActionTimestamp: syncedAt(t),
		})

		impl := f.uc.(*implUseCase)
		cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
		require.NoError(t, err)
		store, err := f.catalog.DetailStore(ctx, testStoreID)
		require.NoError(t, err)
		product := f.catalog.products[1]
		record, err := impl.buildRecordPayload(ctx, cred, store, product, nil, *row)
		require.NoError(t, err)
		require.NoError(t, f.cache.SetPayloadHash(ctx, testAPIKey, "1", payloadHash(record)))

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Skipped)
		assert.Equal(t, model.ActionNoAction, f.repo.get(1).NextAction)
	})

	t.Run("tracks configurable children as variant rows", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		parent := testProduct(1, testWebsiteID)
		parent.TypeID = model.ProductTypeConfigurable
		f.addProduct(parent)
		child := testProduct(2, testWebsiteID)
		child.ParentIDs = []int64{1}
		f.addProduct(child)
		f.catalog.children[1] = []int64{2}

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Created)

		variant, err := f.repo.GetOneEntity(ctx, repoGetOne(testAPIKey, 2, ptrInt64(1)))
		require.NoError(t, err)
		require.NotZero(t, variant.ID)
		assert.Equal(t, "1-2", variant.RecordID())
		assert.Equal(t, model.ActionAdd, variant.NextAction)
	})

	t.Run("variant row is non-indexable when parent is out of stock", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		parent := testProduct(1, testWebsiteID)
		parent.TypeID = model.ProductTypeConfigurable
		f.addProduct(parent)
		child := testProduct(2, testWebsiteID)
		child.ParentIDs = []int64{1}
		f.addProduct(child)
		f.catalog.children[1] = []int64{2}
		f.stock.inStock[1] = false

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)

		variant, err := f.repo.GetOneEntity(ctx, repoGetOne(testAPIKey, 2, ptrInt64(1)))
		require.NoError(t, err)
		assert.False(t, variant.IsIndexable)
	})

	t.Run("entity id filter limits the reconciled set", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))
		f.addProduct(testProduct(2, testWebsiteID))

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{EntityIDs: []int64{2}})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Created)

		untouched, err := f.repo.GetOneEntity(ctx, repoGetOne(testAPIKey, 1, nil))
		require.NoError(t, err)
		assert.Zero(t, untouched.ID)
	})

	t.Run("failing scope is reported and other scopes continue", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		// Second scope points at a store the catalog does not know.
		f.creds.creds = append(f.creds.creds, credentialFor("klevu-9999999999", 99))
		f.addProduct(testProduct(1, testWebsiteID))

		out, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Created)
		require.Len(t, out.Failures, 1)
		assert.Equal(t, "klevu-9999999999", out.Failures[0].APIKey)
		assert.Equal(t, int64(99), out.Failures[0].StoreID)
	})

	t.Run("mutating run invalidates cached statistics", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		f.addProduct(testProduct(1, testWebsiteID))

		_, err := f.uc.Discover(ctx, indexing.DiscoverInput{})
		require.NoError(t, err)
		assert.Contains(t, f.cache.invalidated, testAPIKey)
	})
}
