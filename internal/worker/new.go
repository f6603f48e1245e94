package worker

import (
	"database/sql"
	"fmt"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/encrypter"
	"catalog-sync-srv/pkg/imagestore"
	pkgKafka "catalog-sync-srv/pkg/kafka"
	"catalog-sync-srv/pkg/log"
	pkgQdrant "catalog-sync-srv/pkg/qdrant"
	"catalog-sync-srv/pkg/rabbitmq"
	pkgRedis "catalog-sync-srv/pkg/redis"
)

// Worker runs the scheduled indexing pipeline: periodic discovery and
// requires-update passes, plus sync jobs fanned out through RabbitMQ.
type Worker struct {
	// Core Configuration
	l      log.Logger
	config *config.Config

	// Infrastructure clients
	postgresDB        *sql.DB
	redisClient       pkgRedis.IRedis
	qdrantClient      pkgQdrant.IQdrant
	imageStore        imagestore.IImageStore
	rabbitConn        rabbitmq.IRabbitMQ
	entityProducer    pkgKafka.IProducer
	attributeProducer pkgKafka.IProducer

	// Security
	encrypter encrypter.Encrypter
}

// Config holds all dependencies for the worker
type Config struct {
	// Core Configuration
	Logger log.Logger
	Config *config.Config

	// Infrastructure clients
	PostgresDB        *sql.DB
	RedisClient       pkgRedis.IRedis
	QdrantClient      pkgQdrant.IQdrant
	ImageStore        imagestore.IImageStore
	RabbitConn        rabbitmq.IRabbitMQ
	EntityProducer    pkgKafka.IProducer
	AttributeProducer pkgKafka.IProducer

	// Security
	Encrypter encrypter.Encrypter
}

// New creates a new worker with dependency validation
func New(cfg Config) (*Worker, error) {
	w := &Worker{
		l:                 cfg.Logger,
		config:            cfg.Config,
		postgresDB:        cfg.PostgresDB,
		redisClient:       cfg.RedisClient,
		qdrantClient:      cfg.QdrantClient,
		imageStore:        cfg.ImageStore,
		rabbitConn:        cfg.RabbitConn,
		entityProducer:    cfg.EntityProducer,
		attributeProducer: cfg.AttributeProducer,
		encrypter:         cfg.Encrypter,
	}

	if err := w.validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// validate validates that all required dependencies are provided
func (w *Worker) validate() error {
	// Core Configuration
	if w.l == nil {
		return fmt.Errorf("logger is required")
	}
	if w.config == nil {
		return fmt.Errorf("config is required")
	}
	if w.config.RabbitMQ.SyncQueue == "" {
		return fmt.Errorf("sync queue name is required")
	}

	// Infrastructure clients
	if w.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if w.redisClient == nil {
		return fmt.Errorf("redis client is required")
	}
	if w.qdrantClient == nil {
		return fmt.Errorf("qdrant client is required")
	}
	if w.imageStore == nil {
		return fmt.Errorf("image store is required")
	}
	if w.rabbitConn == nil {
		return fmt.Errorf("rabbitmq connection is required")
	}
	if w.entityProducer == nil || w.attributeProducer == nil {
		return fmt.Errorf("kafka producers are required")
	}

	// Security
	if w.encrypter == nil {
		return fmt.Errorf("encrypter is required")
	}

	return nil
}
