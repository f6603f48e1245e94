package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	catalogPostgre "catalog-sync-srv/internal/catalog/repository/postgre"
	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	indexingHTTP "catalog-sync-srv/internal/indexing/delivery/http"
	indexingProducer "catalog-sync-srv/internal/indexing/delivery/kafka/producer"
	indexingPostgre "catalog-sync-srv/internal/indexing/repository/postgre"
	indexingQdrant "catalog-sync-srv/internal/indexing/repository/qdrant"
	indexingRedis "catalog-sync-srv/internal/indexing/repository/redis"
	indexingUsecase "catalog-sync-srv/internal/indexing/usecase"
	"catalog-sync-srv/internal/middleware"
	"catalog-sync-srv/internal/stock"
)

// setupIndexingDomain initializes indexing domain (repo -> usecase -> delivery)
func (srv *HTTPServer) setupIndexingDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	// Repositories
	catalogRepo := catalogPostgre.New(srv.postgresDB)
	indexingRepo := indexingPostgre.New(srv.postgresDB)
	searchIndexRepo := indexingQdrant.New(srv.l, srv.qdrantClient)
	cacheRepo := indexingRedis.New(srv.l, srv.redisClient)

	// Credentials and stock resolution
	credProvider, err := credential.New(srv.config.Stores, srv.encrypter)
	if err != nil {
		return err
	}
	stockResolver, err := stock.New(srv.l, catalogRepo, stock.Method(srv.config.Indexing.StockCalculationMethod))
	if err != nil {
		return err
	}

	// Event producer
	producer := indexingProducer.New(srv.l, srv.entityProducer, srv.attributeProducer)

	// UseCase
	uc := indexingUsecase.New(
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

	// HTTP Handler
	handler := indexingHTTP.New(srv.l, uc)

	// Register routes
	handler.(interface {
		RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
	}).RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Indexing domain registered")
	return nil
}
