package consumer

import (
	"context"
	"database/sql"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/encrypter"
	"catalog-sync-srv/pkg/imagestore"
	pkgKafka "catalog-sync-srv/pkg/kafka"
	"catalog-sync-srv/pkg/log"
	pkgQdrant "catalog-sync-srv/pkg/qdrant"
	pkgRedis "catalog-sync-srv/pkg/redis"
)

// ConsumerServer is the Kafka consumer orchestrator
type ConsumerServer struct {
	// Core Configuration
	l      log.Logger
	config *config.Config

	// Infrastructure clients
	postgresDB        *sql.DB
	redisClient       pkgRedis.IRedis
	qdrantClient      pkgQdrant.IQdrant
	imageStore        imagestore.IImageStore
	entityProducer    pkgKafka.IProducer
	attributeProducer pkgKafka.IProducer

	// Security
	encrypter encrypter.Encrypter
}

// Config holds all dependencies for the consumer server
type Config struct {
	// Core Configuration
	Logger log.Logger
	Config *config.Config

	// Infrastructure clients
	PostgresDB        *sql.DB
	RedisClient       pkgRedis.IRedis
	QdrantClient      pkgQdrant.IQdrant
	ImageStore        imagestore.IImageStore
	EntityProducer    pkgKafka.IProducer
	AttributeProducer pkgKafka.IProducer

	// Security
	Encrypter encrypter.Encrypter
}

// Run starts the consumer server and blocks until context is cancelled.
// It initializes all domain layers, starts consumers, and handles graceful shutdown.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		return err
	}

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(ctx, consumers)

	srv.l.Info(ctx, "Consumer Server stopped gracefully")
	return nil
}
