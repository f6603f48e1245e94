package consumer

import (
	"fmt"
)

// New creates a new consumer server with dependency validation
func New(cfg Config) (*ConsumerServer, error) {
	srv := &ConsumerServer{
		l:                 cfg.Logger,
		config:            cfg.Config,
		postgresDB:        cfg.PostgresDB,
		redisClient:       cfg.RedisClient,
		qdrantClient:      cfg.QdrantClient,
		imageStore:        cfg.ImageStore,
		entityProducer:    cfg.EntityProducer,
		attributeProducer: cfg.AttributeProducer,
		encrypter:         cfg.Encrypter,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided
func (srv *ConsumerServer) validate() error {
	// Core Configuration
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.config == nil {
		return fmt.Errorf("config is required")
	}
	if len(srv.config.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}

	// Infrastructure clients
	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.redisClient == nil {
		return fmt.Errorf("redis client is required")
	}
	if srv.qdrantClient == nil {
		return fmt.Errorf("qdrant client is required")
	}
	if srv.imageStore == nil {
		return fmt.Errorf("image store is required")
	}
	if srv.entityProducer == nil || srv.attributeProducer == nil {
		return fmt.Errorf("kafka producers are required")
	}

	// Security
	if srv.encrypter == nil {
		return fmt.Errorf("encrypter is required")
	}

	return nil
}
