package http

import (
	"catalog-sync-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	entities := r.Group("/entities")
	entities.Use(mw.Auth())
	{
		entities.GET("", h.ListEntities)
		entities.GET("/:id/history", h.GetEntityHistory)
	}

	r.GET("/statistics", mw.Auth(), h.GetStatistics)

	internal := r.Group("/internal")
	internal.Use(mw.InternalAuth())
	{
		internal.POST("/responder/entity-update", h.RespondEntityUpdate)
		internal.POST("/responder/attribute-update", h.RespondAttributeUpdate)
		internal.POST("/discover", h.Discover)
		internal.POST("/sync", h.Sync)
	}
}
