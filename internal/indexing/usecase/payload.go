package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/imagestore"
	"catalog-sync-srv/pkg/util"
)

// buildRecordPayload builds the remote record for one row: capability-checked
// indexing record first, then the serialized attribute payload.
func (uc *implUseCase) buildRecordPayload(ctx context.Context, cred credential.AccountCredentials, store model.Store, product model.Product, parent *model.Product, row model.IndexingEntity) (indexing.Record, error) {
	var parentArg interface{}
	if parent != nil {
		parentArg = parent
	}
	rec, err := uc.BuildRecord(row.RecordID(), &product, parentArg)
	if err != nil {
		return indexing.Record{}, err
	}

	return uc.buildPayload(ctx, cred, store, rec, product, parent)
}

// buildPayload serializes one indexing record into the remote payload shape.
func (uc *implUseCase) buildPayload(ctx context.Context, cred credential.AccountCredentials, store model.Store, rec indexing.IndexingRecord, product model.Product, parent *model.Product) (indexing.Record, error) {
	record := indexing.Record{
		ID:   rec.RecordID,
		Type: recordType(product, parent),
	}

	categories, err := uc.catalog.ListProductCategories(ctx, product.ID)
	if err != nil {
		return indexing.Record{}, fmt.Errorf("indexing.usecase.buildPayload: %w", err)
	}
	record.Relations.Categories = util.MapSlice(categories, func(c model.Category) string { return c.Name })
	if parent != nil {
		record.Relations.ParentProduct = fmt.Sprintf("%d", parent.ID)
	}

	inStock, err := uc.stock.Get(ctx, product, store, parent)
	if err != nil {
		return indexing.Record{}, fmt.Errorf("indexing.usecase.buildPayload: %w", err)
	}

	attributes := map[string]interface{}{
		"sku":        product.SKU,
		"name":       product.Name,
		"visibility": product.Visibility,
		"inStock":    inStock,
	}
	if product.Description != "" {
		attributes["description"] = product.Description
	}
	if product.ShortDescription != "" {
		attributes["shortDescription"] = product.ShortDescription
	}
	if product.URLKey != "" {
		attributes["url"] = product.URLKey
	}

	salePrice := product.Price
	if product.SpecialPrice != nil && *product.SpecialPrice > 0 {
		salePrice = *product.SpecialPrice
	}
	attributes["prices"] = map[string]interface{}{
		store.Currency: map[string]interface{}{
			"defaultPrice": product.Price,
			"salePrice":    salePrice,
		},
	}

	if product.ImagePath != "" {
		if imageURL, err := uc.resizedImageURL(ctx, product.ImagePath); err != nil {
			// Image problems degrade the record, they never fail the sync.
			uc.l.Warnf(ctx, "indexing.usecase.buildPayload: image for product %d: %v", product.ID, err)
		} else {
			attributes["image"] = imageURL
		}
	}

	rating, err := uc.catalog.GetRating(ctx, product.ID)
	if err != nil {
		return indexing.Record{}, fmt.Errorf("indexing.usecase.buildPayload: %w", err)
	}
	if rating.Count > 0 {
		// Stored as 0-100 percent; exposed on the conventional 5-point scale.
		attributes["rating"] = math.Round(rating.Average/20*100) / 100
		attributes["ratingCount"] = rating.Count
	}

	record.Attributes = attributes
	return record, nil
}

// resizedImageURL resizes the original catalog image to the configured
// bounds and returns the public URL of the stored copy.
func (uc *implUseCase) resizedImageURL(ctx context.Context, imagePath string) (string, error) {
	source, err := uc.images.FetchSource(ctx, imagePath)
	if err != nil {
		return "", err
	}

	key := imagePath
	if idx := strings.LastIndex(key, "."); idx > 0 {
		key = key[:idx]
	}
	return uc.images.StoreResized(ctx, imagestore.ResizeRequest{
		Key:    key,
		Source: source,
		Width:  uc.cfg.ImageWidth,
		Height: uc.cfg.ImageHeight,
	})
}

// recordType maps the entity context to the remote record type.
func recordType(product model.Product, parent *model.Product) string {
	if parent != nil {
		return model.EntityTypeProduct
	}
	if product.TypeID == model.ProductTypeConfigurable {
		return model.EntityTypeParentProduct
	}
	return model.EntityTypeProduct
}

// payloadHash fingerprints a record payload. Map keys serialize sorted, so
// equal payloads hash equal.
func payloadHash(record indexing.Record) string {
	raw, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
