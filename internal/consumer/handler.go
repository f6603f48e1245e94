package consumer

import (
	"context"
	"fmt"

	catalogPostgre "catalog-sync-srv/internal/catalog/repository/postgre"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	indexingConsumer "catalog-sync-srv/internal/indexing/delivery/kafka/consumer"
	indexingProducer "catalog-sync-srv/internal/indexing/delivery/kafka/producer"
	indexingPostgre "catalog-sync-srv/internal/indexing/repository/postgre"
	indexingQdrant "catalog-sync-srv/internal/indexing/repository/qdrant"
	indexingRedis "catalog-sync-srv/internal/indexing/repository/redis"
	indexingUsecase "catalog-sync-srv/internal/indexing/usecase"
	"catalog-sync-srv/internal/stock"
)

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	indexingConsumer *indexingConsumer.Consumer
}

// setupDomains initializes all domain layers (repositories, usecases, consumers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	// Repositories
	catalogRepo := catalogPostgre.New(srv.postgresDB)
	indexingRepo := indexingPostgre.New(srv.postgresDB)
	searchIndexRepo := indexingQdrant.New(srv.l, srv.qdrantClient)
	cacheRepo := indexingRedis.New(srv.l, srv.redisClient)

	// Credentials and stock resolution
	credProvider, err := credential.New(srv.config.Stores, srv.encrypter)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential provider: %w", err)
	}
	stockResolver, err := stock.New(srv.l, catalogRepo, stock.Method(srv.config.Indexing.StockCalculationMethod))
	if err != nil {
		return nil, fmt.Errorf("failed to create stock resolver: %w", err)
	}

	producer := indexingProducer.New(srv.l, srv.entityProducer, srv.attributeProducer)

	indexingUC := indexingUsecase.New(
		srv.l,
		indexingRepo,
		catalogRepo,
		searchIndexRepo,
		cacheRepo,
		credProvider,
		stockResolver,
		srv.imageStore,
		producer,
		indexing.ScopeConfig{
			ExcludeDisabledProducts: srv.config.Indexing.ExcludeDisabledProducts,
			ExcludeOOSProducts:      srv.config.Indexing.ExcludeOOSProducts,
			EnableProductSync:       srv.config.Indexing.EnableProductSync,
			BatchSize:               srv.config.Indexing.BatchSize,
			ImageWidth:              srv.config.Indexing.ImageWidth,
			ImageHeight:             srv.config.Indexing.ImageHeight,
		},
	)

	indexingCons, err := indexingConsumer.New(indexingConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.config.Kafka,
		UseCase:     indexingUC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create indexing consumer: %w", err)
	}

	srv.l.Infof(ctx, "Indexing domain initialized")

	return &domainConsumers{
		indexingConsumer: indexingCons,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.indexingConsumer.ConsumeEntityUpdates(ctx); err != nil {
		return fmt.Errorf("failed to start entity update consumer: %w", err)
	}
	if err := consumers.indexingConsumer.ConsumeAttributeUpdates(ctx); err != nil {
		return fmt.Errorf("failed to start attribute update consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.indexingConsumer != nil {
		if err := consumers.indexingConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing indexing consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
