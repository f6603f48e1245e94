package http

import (
	"github.com/gin-gonic/gin"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/response"
)

// RespondEntityUpdate - Handler cho POST /internal/responder/entity-update
// @Summary Accept an entity change notification
// @Description Internal API for upstream services to report catalog entity changes
// @Tags Indexing (Internal)
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /internal/responder/entity-update [post]
func (h *handler) RespondEntityUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.processResponderRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.RespondEntityUpdate(ctx, data); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.RespondEntityUpdate: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// RespondAttributeUpdate - Handler cho POST /internal/responder/attribute-update
// @Summary Accept an attribute change notification
// @Tags Indexing (Internal)
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /internal/responder/attribute-update [post]
func (h *handler) RespondAttributeUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.processResponderRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.RespondAttributeUpdate(ctx, data); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.RespondAttributeUpdate: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// Discover - Handler cho POST /internal/discover
// @Summary Run discovery reconciliation
// @Description Reconciles indexing rows with the catalog for the given scopes
// @Tags Indexing (Internal)
// @Accept json
// @Produce json
// @Param body body discoverReq true "Discovery filter"
// @Success 200 {object} discoverResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /internal/discover [post]
func (h *handler) Discover(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDiscoverRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Discover(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.Discover: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDiscoverResp(output))
}

// Sync - Handler cho POST /internal/sync
// @Summary Run sync executors
// @Description Submits pending rows to the remote index. Empty action runs delete, add, update in order.
// @Tags Indexing (Internal)
// @Accept json
// @Produce json
// @Param body body syncReq true "Sync request"
// @Success 200 {array} syncResultResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /internal/sync [post]
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSyncRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var results []indexing.IndexerResult
	if req.Action == "" {
		results, err = h.uc.SyncAll(ctx, req.APIKey)
	} else {
		var result indexing.IndexerResult
		result, err = h.uc.Sync(ctx, indexing.SyncInput{
			APIKey: req.APIKey,
			Action: model.Action(req.Action),
		})
		results = []indexing.IndexerResult{result}
	}
	if err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.Sync: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSyncResp(results))
}

// ListEntities - Handler cho GET /entities
// @Summary List indexing entities
// @Tags Indexing
// @Produce json
// @Param api_key query string true "Account api key"
// @Success 200 {object} listEntitiesResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /entities [get]
func (h *handler) ListEntities(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListEntitiesRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entities, pag, err := h.uc.GetEntities(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.ListEntities: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListEntitiesResp(entities, pag))
}

// GetEntityHistory - Handler cho GET /entities/:id/history
// @Summary List sync attempts recorded for one indexing entity
// @Tags Indexing
// @Produce json
// @Param id path int true "Indexing entity id"
// @Success 200 {array} historyEntryResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /entities/{id}/history [get]
func (h *handler) GetEntityHistory(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processEntityIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	history, err := h.uc.GetEntityHistory(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.GetEntityHistory: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newHistoryResp(history))
}

// GetStatistics - Handler cho GET /statistics
// @Summary Summarize indexing state for one api key
// @Tags Indexing
// @Produce json
// @Param api_key query string true "Account api key"
// @Success 200 {object} indexing.StatisticsOutput
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /statistics [get]
func (h *handler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	apiKey, err := h.processAPIKeyQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.uc.GetStatistics(ctx, apiKey)
	if err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.GetStatistics: usecase failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, stats)
}
