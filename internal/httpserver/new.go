package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/encrypter"
	"catalog-sync-srv/pkg/imagestore"
	pkgJWT "catalog-sync-srv/pkg/jwt"
	pkgKafka "catalog-sync-srv/pkg/kafka"
	"catalog-sync-srv/pkg/log"
	pkgQdrant "catalog-sync-srv/pkg/qdrant"
	pkgRedis "catalog-sync-srv/pkg/redis"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Database Configuration
	postgresDB *sql.DB

	// Infrastructure Configuration
	redisClient       pkgRedis.IRedis
	qdrantClient      pkgQdrant.IQdrant
	imageStore        imagestore.IImageStore
	entityProducer    pkgKafka.IProducer
	attributeProducer pkgKafka.IProducer

	// Authentication & Security Configuration
	config     *config.Config
	jwtManager *pkgJWT.Manager
	encrypter  encrypter.Encrypter
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Database Configuration
	PostgresDB *sql.DB

	// Infrastructure Configuration
	RedisClient       pkgRedis.IRedis
	QdrantClient      pkgQdrant.IQdrant
	ImageStore        imagestore.IImageStore
	EntityProducer    pkgKafka.IProducer
	AttributeProducer pkgKafka.IProducer

	// Authentication & Security Configuration
	Config     *config.Config
	JWTManager *pkgJWT.Manager
	Encrypter  encrypter.Encrypter
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.Default(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		// Database Configuration
		postgresDB: cfg.PostgresDB,

		// Infrastructure Configuration
		redisClient:       cfg.RedisClient,
		qdrantClient:      cfg.QdrantClient,
		imageStore:        cfg.ImageStore,
		entityProducer:    cfg.EntityProducer,
		attributeProducer: cfg.AttributeProducer,

		// Authentication & Security Configuration
		config:     cfg.Config,
		jwtManager: cfg.JWTManager,
		encrypter:  cfg.Encrypter,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	// Database Configuration
	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}

	// Infrastructure Configuration
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.qdrantClient == nil {
		return errors.New("qdrantClient is required")
	}
	if srv.imageStore == nil {
		return errors.New("imageStore is required")
	}
	if srv.entityProducer == nil || srv.attributeProducer == nil {
		return errors.New("kafka producers are required")
	}

	// Authentication & Security Configuration
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}
	if srv.encrypter == nil {
		return errors.New("encrypter is required")
	}

	return nil
}
