package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-srv/internal/model"
)

// buildFor runs the payload builder for a standalone product row.
func buildFor(t *testing.T, f *fixture, product model.Product, parent *model.Product) map[string]interface{} {
	t.Helper()
	ctx := context.Background()

	impl := f.uc.(*implUseCase)
	cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
	require.NoError(t, err)
	store, err := f.catalog.DetailStore(ctx, testStoreID)
	require.NoError(t, err)

	row := model.IndexingEntity{
		APIKey:           testAPIKey,
		TargetEntityType: model.EntityTypeProduct,
		TargetID:         product.ID,
	}
	if parent != nil {
		row.TargetParentID = &parent.ID
	}
	record, err := impl.buildRecordPayload(ctx, cred, store, product, parent, row)
	require.NoError(t, err)
	return record.Attributes
}

func TestBuildPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("serializes base attributes and prices", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.Description = "Long description"
		p.URLKey = "product-1"
		special := 9.99
		p.SpecialPrice = &special
		f.addProduct(p)

		attrs := buildFor(t, f, p, nil)
		assert.Equal(t, "SKU-1", attrs["sku"])
		assert.Equal(t, "Product 1", attrs["name"])
		assert.Equal(t, "Long description", attrs["description"])
		assert.Equal(t, "product-1", attrs["url"])
		assert.Equal(t, true, attrs["inStock"])

		prices, ok := attrs["prices"].(map[string]interface{})
		require.True(t, ok)
		usd, ok := prices["USD"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 19.99, usd["defaultPrice"])
		assert.Equal(t, 9.99, usd["salePrice"])
	})

	t.Run("sale price falls back to default price", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)

		attrs := buildFor(t, f, p, nil)
		usd := attrs["prices"].(map[string]interface{})["USD"].(map[string]interface{})
		assert.Equal(t, 19.99, usd["salePrice"])
	})

	t.Run("category names become record relations", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)
		f.catalog.categories[1] = []model.Category{
			{ID: 3, Name: "Shoes"},
			{ID: 4, Name: "Sale"},
		}

		impl := f.uc.(*implUseCase)
		cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
		require.NoError(t, err)
		store, err := f.catalog.DetailStore(ctx, testStoreID)
		require.NoError(t, err)
		record, err := impl.buildRecordPayload(ctx, cred, store, p, nil, model.IndexingEntity{TargetID: 1})
		require.NoError(t, err)

		assert.Equal(t, []string{"Shoes", "Sale"}, record.Relations.Categories)
	})

	t.Run("rating converts from percent to five point scale", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)
		f.catalog.ratings[1] = model.Rating{ProductID: 1, Average: 87, Count: 12}

		attrs := buildFor(t, f, p, nil)
		assert.Equal(t, 4.35, attrs["rating"])
		assert.Equal(t, 12, attrs["ratingCount"])
	})

	t.Run("no rating attributes without reviews", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)

		attrs := buildFor(t, f, p, nil)
		assert.NotContains(t, attrs, "rating")
		assert.NotContains(t, attrs, "ratingCount")
	})

	t.Run("resized image url is attached", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.ImagePath = "catalog/product-1.png"
		f.addProduct(p)

		attrs := buildFor(t, f, p, nil)
		assert.Equal(t, "https://cdn.test/catalog/product-1.jpg", attrs["image"])
		require.Len(t, f.images.resized, 1)
		assert.Equal(t, 300, f.images.resized[0].Width)
		assert.Equal(t, 300, f.images.resized[0].Height)
	})

	t.Run("image failure degrades the record instead of failing it", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		p.ImagePath = "catalog/product-1.png"
		f.addProduct(p)
		f.images.fetchErr = errors.New("object not found")

		attrs := buildFor(t, f, p, nil)
		assert.NotContains(t, attrs, "image")
		assert.Equal(t, "SKU-1", attrs["sku"])
	})

	t.Run("record type reflects the entity context", func(t *testing.T) {
		configurable := testProduct(1, testWebsiteID)
		configurable.TypeID = model.ProductTypeConfigurable
		variant := testProduct(2, testWebsiteID)

		assert.Equal(t, model.EntityTypeParentProduct, recordType(configurable, nil))
		assert.Equal(t, model.EntityTypeProduct, recordType(variant, &configurable))
		assert.Equal(t, model.EntityTypeProduct, recordType(testProduct(3, testWebsiteID), nil))
	})

	t.Run("variant record carries the parent relation", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		parent := testProduct(1, testWebsiteID)
		parent.TypeID = model.ProductTypeConfigurable
		f.addProduct(parent)
		child := testProduct(2, testWebsiteID)
		f.addProduct(child)

		impl := f.uc.(*implUseCase)
		cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
		require.NoError(t, err)
		store, err := f.catalog.DetailStore(ctx, testStoreID)
		require.NoError(t, err)
		row := model.IndexingEntity{TargetID: 2, TargetParentID: ptrInt64(1)}
		record, err := impl.buildRecordPayload(ctx, cred, store, child, &parent, row)
		require.NoError(t, err)

		assert.Equal(t, "1-2", record.ID)
		assert.Equal(t, "1", record.Relations.ParentProduct)
	})
}

func TestPayloadHash(t *testing.T) {
	t.Run("equal payloads hash equal", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)

		ctx := context.Background()
		impl := f.uc.(*implUseCase)
		cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
		require.NoError(t, err)
		store, err := f.catalog.DetailStore(ctx, testStoreID)
		require.NoError(t, err)

		first, err := impl.buildRecordPayload(ctx, cred, store, p, nil, model.IndexingEntity{TargetID: 1})
		require.NoError(t, err)
		second, err := impl.buildRecordPayload(ctx, cred, store, p, nil, model.IndexingEntity{TargetID: 1})
		require.NoError(t, err)

		assert.Equal(t, payloadHash(first), payloadHash(second))
		assert.NotEmpty(t, payloadHash(first))
	})

	t.Run("different payloads hash differently", func(t *testing.T) {
		f := newFixture(defaultScopeConfig())
		f.withScope(testAPIKey, testStoreID, testWebsiteID)
		p := testProduct(1, testWebsiteID)
		f.addProduct(p)
		changed := p
		changed.Name = "Renamed"

		ctx := context.Background()
		impl := f.uc.(*implUseCase)
		cred, err := f.creds.ForAPIKey(ctx, testAPIKey)
		require.NoError(t, err)
		store, err := f.catalog.DetailStore(ctx, testStoreID)
		require.NoError(t, err)

		first, err := impl.buildRecordPayload(ctx, cred, store, p, nil, model.IndexingEntity{TargetID: 1})
		require.NoError(t, err)
		second, err := impl.buildRecordPayload(ctx, cred, store, changed, nil, model.IndexingEntity{TargetID: 1})
		require.NoError(t, err)

		assert.NotEqual(t, payloadHash(first), payloadHash(second))
	})
}
