package main

import (
	"context"
	"fmt"
	"time"

	"catalog-sync-srv/config"
	configImagestore "catalog-sync-srv/config/imagestore"
	configKafka "catalog-sync-srv/config/kafka"
	configPostgre "catalog-sync-srv/config/postgre"
	configQdrant "catalog-sync-srv/config/qdrant"
	configRedis "catalog-sync-srv/config/redis"
	"catalog-sync-srv/internal/httpserver"
	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
	"catalog-sync-srv/pkg/encrypter"
	pkgJWT "catalog-sync-srv/pkg/jwt"
	"catalog-sync-srv/pkg/log"
)

// @title       Catalog Sync Service API
// @description Keeps catalog entities synchronized with the remote search index.
// @version     1
// @BasePath    /api/v1
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Service token authentication. Format: "Bearer {token}"
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// 3. Initialize encrypter
	encrypterInstance := encrypter.New(cfg.Encrypter.Key)

	// 4. Initialize PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 5. Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 6. Initialize Qdrant
	qdrantClient, err := configQdrant.Connect(ctx, cfg.Qdrant)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Qdrant: ", err)
		return
	}
	defer configQdrant.Disconnect()
	logger.Infof(ctx, "Qdrant connected successfully to %s:%d", cfg.Qdrant.Host, cfg.Qdrant.Port)

	// 7. Initialize image store
	imageStore, err := configImagestore.Connect(cfg.ImageStore)
	if err != nil {
		logger.Error(ctx, "Failed to connect to image store: ", err)
		return
	}
	logger.Infof(ctx, "Image store connected successfully to %s", cfg.ImageStore.Endpoint)

	// 8. Initialize Kafka producers (one per topic)
	entityProducer, err := configKafka.ConnectProducer(cfg.Kafka, kafkaDelivery.TopicEntityUpdate)
	if err != nil {
		logger.Error(ctx, "Failed to connect Kafka entity producer: ", err)
		return
	}
	attributeProducer, err := configKafka.ConnectProducer(cfg.Kafka, kafkaDelivery.TopicAttributeUpdate)
	if err != nil {
		logger.Error(ctx, "Failed to connect Kafka attribute producer: ", err)
		return
	}
	defer configKafka.DisconnectProducers()
	logger.Info(ctx, "Kafka producers initialized")

	// 9. Initialize JWT Manager
	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		TTL:       time.Duration(cfg.JWT.TTL) * time.Second,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize JWT manager: ", err)
		return
	}
	logger.Info(ctx, "JWT Manager initialized")

	// 10. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		// Database Configuration
		PostgresDB: postgresDB,

		// Infrastructure Configuration
		RedisClient:       redisClient,
		QdrantClient:      qdrantClient,
		ImageStore:        imageStore,
		EntityProducer:    entityProducer,
		AttributeProducer: attributeProducer,

		// Authentication & Security Configuration
		Config:     cfg,
		JWTManager: jwtManager,
		Encrypter:  encrypterInstance,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Run blocks until SIGINT/SIGTERM and shuts down gracefully.
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
