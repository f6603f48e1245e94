package http

import (
	"github.com/gin-gonic/gin"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/pkg/log"
)

// Handler defines the HTTP handler interface
type Handler interface {
	RespondEntityUpdate(c *gin.Context)
	RespondAttributeUpdate(c *gin.Context)
	Discover(c *gin.Context)
	Sync(c *gin.Context)
	ListEntities(c *gin.Context)
	GetEntityHistory(c *gin.Context)
	GetStatistics(c *gin.Context)
}

// handler - HTTP handler implementation
type handler struct {
	l  log.Logger
	uc indexing.UseCase
}

// New creates a new HTTP handler
func New(l log.Logger, uc indexing.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
