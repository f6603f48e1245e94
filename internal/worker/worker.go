package worker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	catalogPostgre "catalog-sync-srv/internal/catalog/repository/postgre"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	indexingProducer "catalog-sync-srv/internal/indexing/delivery/kafka/producer"
	indexingPostgre "catalog-sync-srv/internal/indexing/repository/postgre"
	indexingQdrant "catalog-sync-srv/internal/indexing/repository/qdrant"
	indexingRedis "catalog-sync-srv/internal/indexing/repository/redis"
	indexingUsecase "catalog-sync-srv/internal/indexing/usecase"
	"catalog-sync-srv/internal/stock"
)

// Run wires the indexing domain, starts the schedulers and the sync job
// consumer, and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	uc, creds, err := w.setupDomain(ctx)
	if err != nil {
		w.l.Errorf(ctx, "Failed to setup domain: %v", err)
		return err
	}

	if err := w.declareSyncQueue(); err != nil {
		w.l.Errorf(ctx, "Failed to declare sync queue: %v", err)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.runDiscoveryScheduler(ctx, uc) })
	g.Go(func() error { return w.runRequireUpdateScheduler(ctx, uc) })
	g.Go(func() error { return w.runSyncScheduler(ctx, creds) })
	g.Go(func() error { return w.consumeSyncJobs(ctx, uc) })

	w.l.Info(ctx, "Worker is running")

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	w.l.Info(ctx, "Worker stopped gracefully")
	return nil
}

// setupDomain initializes the indexing domain layers used by the worker.
func (w *Worker) setupDomain(ctx context.Context) (indexing.UseCase, credential.Provider, error) {
	// Repositories
	catalogRepo := catalogPostgre.New(w.postgresDB)
	indexingRepo := indexingPostgre.New(w.postgresDB)
	searchIndexRepo := indexingQdrant.New(w.l, w.qdrantClient)
	cacheRepo := indexingRedis.New(w.l, w.redisClient)

	// Credentials and stock resolution
	credProvider, err := credential.New(w.config.Stores, w.encrypter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credential provider: %w", err)
	}
	stockResolver, err := stock.New(w.l, catalogRepo, stock.Method(w.config.Indexing.StockCalculationMethod))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stock resolver: %w", err)
	}

	producer := indexingProducer.New(w.l, w.entityProducer, w.attributeProducer)

	uc := indexingUsecase.New(
		w.l,
		indexingRepo,
		catalogRepo,
		searchIndexRepo,
		cacheRepo,
		credProvider,
		stockResolver,
		w.imageStore,
		producer,
		indexing.ScopeConfig{
			ExcludeDisabledProducts: w.config.Indexing.ExcludeDisabledProducts,
			ExcludeOOSProducts:      w.config.Indexing.ExcludeOOSProducts,
			EnableProductSync:       w.config.Indexing.EnableProductSync,
			BatchSize:               w.config.Indexing.BatchSize,
			ImageWidth:              w.config.Indexing.ImageWidth,
			ImageHeight:             w.config.Indexing.ImageHeight,
		},
	)

	w.l.Infof(ctx, "Indexing domain initialized")
	return uc, credProvider, nil
}
