package usecase

import (
	catalogRepo "catalog-sync-srv/internal/catalog/repository"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/internal/stock"
	"catalog-sync-srv/pkg/imagestore"
	"catalog-sync-srv/pkg/log"
)

// implUseCase implements the indexing.UseCase interface
type implUseCase struct {
	l           log.Logger
	repo        repository.Repository
	catalog     catalogRepo.Repository
	searchIndex repository.SearchIndexRepository
	cache       repository.CacheRepository
	creds       credential.Provider
	stock       stock.Resolver
	images      imagestore.IImageStore
	producer    indexing.Producer
	cfg         indexing.ScopeConfig
	criteria    map[string]Criterion
}

// New creates a new indexing usecase
func New(
	l log.Logger,
	repo repository.Repository,
	catalog catalogRepo.Repository,
	searchIndex repository.SearchIndexRepository,
	cache repository.CacheRepository,
	creds credential.Provider,
	stockResolver stock.Resolver,
	images imagestore.IImageStore,
	producer indexing.Producer,
	cfg indexing.ScopeConfig,
) indexing.UseCase {
	uc := &implUseCase{
		l:           l,
		repo:        repo,
		catalog:     catalog,
		searchIndex: searchIndex,
		cache:       cache,
		creds:       creds,
		stock:       stockResolver,
		images:      images,
		producer:    producer,
		cfg:         cfg,
	}
	uc.criteria = defaultCriteria(uc)
	return uc
}
