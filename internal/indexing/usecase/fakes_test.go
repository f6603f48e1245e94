package usecase

import (
	"context"
	"fmt"
	"time"

	catalogRepo "catalog-sync-srv/internal/catalog/repository"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	repo "catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/imagestore"
	"catalog-sync-srv/pkg/log"
	"catalog-sync-srv/pkg/paginator"
	"catalog-sync-srv/pkg/util"
)

// fixture wires the usecase against in-memory fakes.
type fixture struct {
	repo     *fakeRepo
	catalog  *fakeCatalog
	search   *fakeSearchIndex
	cache    *fakeCache
	creds    *fakeCreds
	stock    *fakeStock
	images   *fakeImages
	producer *fakeProducer

	uc indexing.UseCase
}

func defaultScopeConfig() indexing.ScopeConfig {
	return indexing.ScopeConfig{
		ExcludeDisabledProducts: true,
		ExcludeOOSProducts:      true,
		EnableProductSync:       true,
		BatchSize:               100,
		ImageWidth:              300,
		ImageHeight:             300,
	}
}

func newFixture(cfg indexing.ScopeConfig) *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		catalog:  newFakeCatalog(),
		search:   &fakeSearchIndex{},
		cache:    newFakeCache(),
		creds:    &fakeCreds{},
		stock:    &fakeStock{inStock: map[int64]bool{}, defaultIn: true},
		images:   &fakeImages{},
		producer: &fakeProducer{},
	}
	f.uc = New(log.NewNoop(), f.repo, f.catalog, f.search, f.cache, f.creds, f.stock, f.images, f.producer, cfg)
	return f
}

// withScope registers one credentialed store scope with a matching store row.
func (f *fixture) withScope(apiKey string, storeID, websiteID int64) {
	f.creds.creds = append(f.creds.creds, credential.AccountCredentials{
		APIKey:      apiKey,
		RestAuthKey: "valid-auth-key",
		StoreID:     storeID,
	})
	f.catalog.stores[storeID] = model.Store{
		ID:        storeID,
		Code:      fmt.Sprintf("store_%d", storeID),
		WebsiteID: websiteID,
		Name:      "Test Store",
		Currency:  "USD",
	}
}

func (f *fixture) addProduct(p model.Product) {
	f.catalog.products[p.ID] = p
}

func testProduct(id int64, websiteID int64) model.Product {
	return model.Product{
		ID:         id,
		SKU:        fmt.Sprintf("SKU-%d", id),
		Name:       fmt.Sprintf("Product %d", id),
		TypeID:     model.ProductTypeSimple,
		Status:     model.ProductStatusEnabled,
		Visibility: model.VisibilityCatalogSearch,
		Price:      19.99,
		WebsiteIDs: []int64{websiteID},
	}
}

func ptrInt64(v int64) *int64 { return &v }

func credentialFor(apiKey string, storeID int64) credential.AccountCredentials {
	return credential.AccountCredentials{
		APIKey:      apiKey,
		RestAuthKey: "valid-auth-key",
		StoreID:     storeID,
	}
}

func listHistoryFor(entityID int64) repo.ListHistoryOptions {
	return repo.ListHistoryOptions{IndexingEntityID: entityID}
}

func repoGetOne(apiKey string, targetID int64, parentID *int64) repo.GetOneEntityOptions {
	return repo.GetOneEntityOptions{
		APIKey:           apiKey,
		TargetEntityType: model.EntityTypeProduct,
		TargetID:         targetID,
		TargetParentID:   parentID,
	}
}

// fakeRepo is an in-memory repository.Repository.
type fakeRepo struct {
	rows    map[int64]*model.IndexingEntity
	nextID  int64
	history []model.SyncHistory

	listErr error
	lockErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]*model.IndexingEntity{}, nextID: 1}
}

func (r *fakeRepo) seed(row model.IndexingEntity) *model.IndexingEntity {
	if row.ID == 0 {
		row.ID = r.nextID
	}
	if row.ID >= r.nextID {
		r.nextID = row.ID + 1
	}
	if row.NextAction == "" {
		row.NextAction = model.ActionNoAction
	}
	if row.LastAction == "" {
		row.LastAction = model.ActionNoAction
	}
	r.rows[row.ID] = &row
	return r.rows[row.ID]
}

func (r *fakeRepo) get(id int64) model.IndexingEntity {
	row, ok := r.rows[id]
	if !ok {
		return model.IndexingEntity{}
	}
	return *row
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeRepo) GetOneEntity(ctx context.Context, opt repo.GetOneEntityOptions) (model.IndexingEntity, error) {
	for _, row := range r.rows {
		if row.APIKey == opt.APIKey &&
			row.TargetEntityType == opt.TargetEntityType &&
			row.TargetID == opt.TargetID &&
			sameParent(row.TargetParentID, opt.TargetParentID) {
			return *row, nil
		}
	}
	return model.IndexingEntity{}, nil
}

func (r *fakeRepo) GetEntities(ctx context.Context, opt repo.GetEntitiesOptions) ([]model.IndexingEntity, paginator.Paginator, error) {
	var out []model.IndexingEntity
	for _, row := range r.rows {
		if opt.APIKey != "" && row.APIKey != opt.APIKey {
			continue
		}
		if opt.TargetID != 0 && row.TargetID != opt.TargetID {
			continue
		}
		out = append(out, *row)
	}
	return out, paginator.Paginator{Total: int64(len(out)), Count: int64(len(out)), PerPage: int64(opt.Limit), CurrentPage: 1}, nil
}

func (r *fakeRepo) ListEntities(ctx context.Context, opt repo.ListEntitiesOptions) ([]model.IndexingEntity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.IndexingEntity
	for _, row := range r.rows {
		if opt.APIKey != "" && row.APIKey != opt.APIKey {
			continue
		}
		if opt.TargetEntityType != "" && row.TargetEntityType != opt.TargetEntityType {
			continue
		}
		if len(opt.TargetIDs) > 0 && !util.ContainsInt64(opt.TargetIDs, row.TargetID) {
			continue
		}
		if opt.NextAction != "" && row.NextAction != opt.NextAction {
			continue
		}
		if opt.IsIndexable != nil && row.IsIndexable != *opt.IsIndexable {
			continue
		}
		if opt.RequiresUpdate != nil && row.RequiresUpdate != *opt.RequiresUpdate {
			continue
		}
		if opt.OnlyUnlocked && row.LockTimestamp != nil {
			continue
		}
		out = append(out, *row)
		if opt.Limit > 0 && len(out) >= opt.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateEntity(ctx context.Context, opt repo.CreateEntityOptions) (model.IndexingEntity, error) {
	row := model.IndexingEntity{
		ID:               r.nextID,
		APIKey:           opt.APIKey,
		TargetEntityType: opt.TargetEntityType,
		TargetID:         opt.TargetID,
		TargetParentID:   opt.TargetParentID,
		TargetSubtype:    opt.TargetSubtype,
		IsIndexable:      opt.IsIndexable,
		NextAction:       opt.NextAction,
		LastAction:       model.ActionNoAction,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	r.nextID++
	r.rows[row.ID] = &row
	return row, nil
}

func (r *fakeRepo) UpdateEntityActions(ctx context.Context, opt repo.UpdateEntityActionsOptions) error {
	row, ok := r.rows[opt.ID]
	if !ok {
		return fmt.Errorf("entity %d not found", opt.ID)
	}
	if opt.IsIndexable != nil {
		row.IsIndexable = *opt.IsIndexable
	}
	if opt.NextAction != nil {
		row.NextAction = *opt.NextAction
	}
	return nil
}

func (r *fakeRepo) MarkRequiresUpdate(ctx context.Context, opt repo.MarkRequiresUpdateOptions) error {
	row, ok := r.rows[opt.ID]
	if !ok {
		return fmt.Errorf("entity %d not found", opt.ID)
	}
	row.RequiresUpdate = true
	row.RequiresUpdateOrigValues = opt.OrigValues
	return nil
}

func (r *fakeRepo) ResolveRequiresUpdate(ctx context.Context, opt repo.ResolveRequiresUpdateOptions) error {
	row, ok := r.rows[opt.ID]
	if !ok {
		return fmt.Errorf("entity %d not found", opt.ID)
	}
	row.RequiresUpdate = false
	row.RequiresUpdateOrigValues = nil
	row.NextAction = opt.NextAction
	return nil
}

func (r *fakeRepo) LockEntities(ctx context.Context, ids []int64, lockedAt time.Time) ([]int64, error) {
	if r.lockErr != nil {
		return nil, r.lockErr
	}
	var locked []int64
	for _, id := range ids {
		row, ok := r.rows[id]
		if !ok || row.LockTimestamp != nil {
			continue
		}
		ts := lockedAt
		row.LockTimestamp = &ts
		locked = append(locked, id)
	}
	return locked, nil
}

func (r *fakeRepo) UnlockEntities(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			row.LockTimestamp = nil
		}
	}
	return nil
}

func (r *fakeRepo) RecordSyncSuccess(ctx context.Context, opt repo.RecordSyncSuccessOptions) error {
	row, ok := r.rows[opt.ID]
	if !ok {
		return fmt.Errorf("entity %d not found", opt.ID)
	}
	ts := opt.SyncedAt
	row.LastAction = opt.Action
	row.LastActionTimestamp = &ts
	row.NextAction = model.ActionNoAction
	row.IsIndexable = opt.IsIndexable
	row.LockTimestamp = nil
	return nil
}

func (r *fakeRepo) CountEntities(ctx context.Context, apiKey string) (repo.EntityStats, error) {
	stats := repo.EntityStats{ByNextAction: map[string]int64{}}
	for _, row := range r.rows {
		if row.APIKey != apiKey {
			continue
		}
		stats.Total++
		if row.IsIndexable {
			stats.Indexable++
		}
		if row.RequiresUpdate {
			stats.RequiresUpdate++
		}
		stats.ByNextAction[string(row.NextAction)]++
		if row.LastActionTimestamp != nil {
			if stats.LastSyncedAt == nil || row.LastActionTimestamp.After(*stats.LastSyncedAt) {
				stats.LastSyncedAt = row.LastActionTimestamp
			}
		}
	}
	return stats, nil
}

func (r *fakeRepo) CreateHistory(ctx context.Context, opt repo.CreateHistoryOptions) error {
	r.history = append(r.history, model.SyncHistory{
		ID:               int64(len(r.history) + 1),
		IndexingEntityID: opt.IndexingEntityID,
		APIKey:           opt.APIKey,
		TargetEntityType: opt.TargetEntityType,
		TargetID:         opt.TargetID,
		TargetParentID:   opt.TargetParentID,
		Action:           opt.Action,
		IsSuccess:        opt.IsSuccess,
		Message:          opt.Message,
		CreatedAt:        time.Now(),
	})
	return nil
}

func (r *fakeRepo) ListHistory(ctx context.Context, opt repo.ListHistoryOptions) ([]model.SyncHistory, error) {
	var out []model.SyncHistory
	for _, h := range r.history {
		if h.IndexingEntityID == opt.IndexingEntityID {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeCatalog is an in-memory catalogRepo.Repository.
type fakeCatalog struct {
	products   map[int64]model.Product
	children   map[int64][]int64
	stores     map[int64]model.Store
	stockItems map[int64]model.StockItem
	categories map[int64][]model.Category
	ratings    map[int64]model.Rating
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:   map[int64]model.Product{},
		children:   map[int64][]int64{},
		stores:     map[int64]model.Store{},
		stockItems: map[int64]model.StockItem{},
		categories: map[int64][]model.Category{},
		ratings:    map[int64]model.Rating{},
	}
}

func (c *fakeCatalog) DetailProduct(ctx context.Context, id int64) (model.Product, error) {
	return c.products[id], nil
}

func (c *fakeCatalog) ListProducts(ctx context.Context, opt catalogRepo.ListProductsOptions) ([]model.Product, error) {
	var out []model.Product
	for _, p := range c.products {
		if len(opt.IDs) > 0 && !util.ContainsInt64(opt.IDs, p.ID) {
			continue
		}
		// Children only appear through ListChildProducts.
		if len(p.ParentIDs) > 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *fakeCatalog) ListChildProducts(ctx context.Context, parentID int64) ([]model.Product, error) {
	var out []model.Product
	for _, id := range c.children[parentID] {
		out = append(out, c.products[id])
	}
	return out, nil
}

func (c *fakeCatalog) GetStockItem(ctx context.Context, productID int64) (model.StockItem, error) {
	return c.stockItems[productID], nil
}

func (c *fakeCatalog) ListStockItems(ctx context.Context, productIDs []int64) (map[int64]model.StockItem, error) {
	out := map[int64]model.StockItem{}
	for _, id := range productIDs {
		if item, ok := c.stockItems[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (c *fakeCatalog) DetailStore(ctx context.Context, id int64) (model.Store, error) {
	return c.stores[id], nil
}

func (c *fakeCatalog) ListStores(ctx context.Context) ([]model.Store, error) {
	var out []model.Store
	for _, s := range c.stores {
		out = append(out, s)
	}
	return out, nil
}

func (c *fakeCatalog) ListWebsites(ctx context.Context) ([]model.Website, error) {
	return nil, nil
}

func (c *fakeCatalog) ListProductCategories(ctx context.Context, productID int64) ([]model.Category, error) {
	return c.categories[productID], nil
}

func (c *fakeCatalog) GetRating(ctx context.Context, productID int64) (model.Rating, error) {
	return c.ratings[productID], nil
}

// fakeSearchIndex records remote batch calls. Record ids listed in fail get
// an unsuccessful per-record result; err fails the whole call.
type fakeSearchIndex struct {
	putCalls    [][]indexing.Record
	deleteCalls [][]string
	fail        map[string][]string
	err         error
}

func (s *fakeSearchIndex) PutRecords(ctx context.Context, cred credential.AccountCredentials, records []indexing.Record) ([]repo.RemoteResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.putCalls = append(s.putCalls, records)
	out := make([]repo.RemoteResult, len(records))
	for i, rec := range records {
		messages, failed := s.fail[rec.ID]
		out[i] = repo.RemoteResult{RecordID: rec.ID, Success: !failed, Messages: messages}
	}
	return out, nil
}

func (s *fakeSearchIndex) DeleteRecords(ctx context.Context, cred credential.AccountCredentials, recordIDs []string) ([]repo.RemoteResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.deleteCalls = append(s.deleteCalls, recordIDs)
	out := make([]repo.RemoteResult, len(recordIDs))
	for i, id := range recordIDs {
		messages, failed := s.fail[id]
		out[i] = repo.RemoteResult{RecordID: id, Success: !failed, Messages: messages}
	}
	return out, nil
}

// fakeCache is an in-memory repo.CacheRepository.
type fakeCache struct {
	hashes      map[string]string
	stats       map[string]*indexing.StatisticsOutput
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{hashes: map[string]string{}, stats: map[string]*indexing.StatisticsOutput{}}
}

func hashKey(apiKey, recordID string) string { return apiKey + "|" + recordID }

func (c *fakeCache) GetPayloadHash(ctx context.Context, apiKey, recordID string) (string, error) {
	return c.hashes[hashKey(apiKey, recordID)], nil
}

func (c *fakeCache) SetPayloadHash(ctx context.Context, apiKey, recordID, hash string) error {
	c.hashes[hashKey(apiKey, recordID)] = hash
	return nil
}

func (c *fakeCache) DeletePayloadHash(ctx context.Context, apiKey, recordID string) error {
	delete(c.hashes, hashKey(apiKey, recordID))
	return nil
}

func (c *fakeCache) GetStatistics(ctx context.Context, apiKey string) (*indexing.StatisticsOutput, error) {
	return c.stats[apiKey], nil
}

func (c *fakeCache) SetStatistics(ctx context.Context, apiKey string, stats indexing.StatisticsOutput) error {
	c.stats[apiKey] = &stats
	return nil
}

func (c *fakeCache) InvalidateStatistics(ctx context.Context, apiKey string) error {
	delete(c.stats, apiKey)
	c.invalidated = append(c.invalidated, apiKey)
	return nil
}

// fakeCreds serves a fixed credential list. validateErr overrides Validate.
type fakeCreds struct {
	creds       []credential.AccountCredentials
	validateErr error
}

func (f *fakeCreds) ForStore(ctx context.Context, storeID int64) (credential.AccountCredentials, error) {
	for _, cred := range f.creds {
		if cred.StoreID == storeID {
			return cred, nil
		}
	}
	return credential.AccountCredentials{}, fmt.Errorf("%w: store %d", credential.ErrCredentialsNotFound, storeID)
}

func (f *fakeCreds) ForAPIKey(ctx context.Context, apiKey string) (credential.AccountCredentials, error) {
	for _, cred := range f.creds {
		if cred.APIKey == apiKey {
			return cred, nil
		}
	}
	return credential.AccountCredentials{}, fmt.Errorf("%w: api key %s", credential.ErrCredentialsNotFound, apiKey)
}

func (f *fakeCreds) List(ctx context.Context) ([]credential.AccountCredentials, error) {
	return f.creds, nil
}

func (f *fakeCreds) Validate(cred credential.AccountCredentials) error {
	return f.validateErr
}

// fakeStock resolves from a per-product map, defaulting to in stock.
type fakeStock struct {
	inStock   map[int64]bool
	defaultIn bool
	err       error
}

func (s *fakeStock) lookup(id int64) bool {
	if v, ok := s.inStock[id]; ok {
		return v
	}
	return s.defaultIn
}

func (s *fakeStock) Get(ctx context.Context, product model.Product, store model.Store, parent *model.Product) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if parent != nil {
		return s.lookup(product.ID) && s.lookup(parent.ID), nil
	}
	return s.lookup(product.ID), nil
}

// fakeImages returns deterministic URLs without touching any store.
type fakeImages struct {
	fetchErr error
	resized  []imagestore.ResizeRequest
}

func (f *fakeImages) StoreResized(ctx context.Context, req imagestore.ResizeRequest) (string, error) {
	f.resized = append(f.resized, req)
	return "https://cdn.test/" + req.Key + ".jpg", nil
}

func (f *fakeImages) FetchSource(ctx context.Context, key string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []byte("image-bytes"), nil
}

func (f *fakeImages) ObjectURL(key string) string { return "https://cdn.test/" + key }

func (f *fakeImages) EnsureBucket(ctx context.Context) error { return nil }

// fakeProducer collects published events.
type fakeProducer struct {
	entityEvents    []indexing.EntityUpdateEvent
	attributeEvents []indexing.AttributeUpdateEvent
	err             error
}

func (p *fakeProducer) PublishEntityUpdate(ctx context.Context, event indexing.EntityUpdateEvent) error {
	if p.err != nil {
		return p.err
	}
	p.entityEvents = append(p.entityEvents, event)
	return nil
}

func (p *fakeProducer) PublishAttributeUpdate(ctx context.Context, event indexing.AttributeUpdateEvent) error {
	if p.err != nil {
		return p.err
	}
	p.attributeEvents = append(p.attributeEvents, event)
	return nil
}
