package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync-srv/config"
	configImagestore "catalog-sync-srv/config/imagestore"
	configKafka "catalog-sync-srv/config/kafka"
	configPostgre "catalog-sync-srv/config/postgre"
	configQdrant "catalog-sync-srv/config/qdrant"
	configRabbitMQ "catalog-sync-srv/config/rabbitmq"
	configRedis "catalog-sync-srv/config/redis"
	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
	"catalog-sync-srv/internal/worker"
	"catalog-sync-srv/pkg/encrypter"
	"catalog-sync-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Catalog Sync Worker...")

	// Encrypter
	encrypterInstance := encrypter.New(cfg.Encrypter.Key)

	// PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Info(ctx, "PostgreSQL client initialized")

	// Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// Qdrant
	qdrantClient, err := configQdrant.Connect(ctx, cfg.Qdrant)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Qdrant: %v", err)
		return
	}
	defer configQdrant.Disconnect()
	logger.Info(ctx, "Qdrant client initialized")

	// Image store
	imageStore, err := configImagestore.Connect(cfg.ImageStore)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to image store: %v", err)
		return
	}
	logger.Info(ctx, "Image store client initialized")

	// RabbitMQ
	rabbitConn, err := configRabbitMQ.Connect(cfg.RabbitMQ)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to RabbitMQ: %v", err)
		return
	}
	defer configRabbitMQ.Disconnect()
	logger.Info(ctx, "RabbitMQ connection initialized")

	// Kafka producers (usecase publishes events from the responder path)
	entityProducer, err := configKafka.ConnectProducer(cfg.Kafka, kafkaDelivery.TopicEntityUpdate)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect Kafka entity producer: %v", err)
		return
	}
	attributeProducer, err := configKafka.ConnectProducer(cfg.Kafka, kafkaDelivery.TopicAttributeUpdate)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect Kafka attribute producer: %v", err)
		return
	}
	defer configKafka.DisconnectProducers()
	logger.Info(ctx, "Kafka producers initialized")

	// Worker
	w, err := worker.New(worker.Config{
		Logger:            logger,
		Config:            cfg,
		PostgresDB:        postgresDB,
		RedisClient:       redisClient,
		QdrantClient:      qdrantClient,
		ImageStore:        imageStore,
		RabbitConn:        rabbitConn,
		EntityProducer:    entityProducer,
		AttributeProducer: attributeProducer,
		Encrypter:         encrypterInstance,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create worker: %v", err)
		return
	}

	// Run worker
	logger.Info(ctx, "Worker starting...")
	if err := w.Run(ctx); err != nil {
		logger.Errorf(ctx, "Worker error: %v", err)
		return
	}
}
