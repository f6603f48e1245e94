package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-sync-srv/internal/model"
)

func (h *handler) processResponderRequest(c *gin.Context) (map[string]interface{}, error) {
	var data map[string]interface{}

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&data); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.processResponderRequest: ShouldBindJSON failed: %v", err)
		return nil, errInvalidBody
	}
	return data, nil
}

func (h *handler) processDiscoverRequest(c *gin.Context) (discoverReq, error) {
	var req discoverReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.processDiscoverRequest: ShouldBindJSON failed: %v", err)
		return req, errInvalidBody
	}
	return req, nil
}

func (h *handler) processSyncRequest(c *gin.Context) (syncReq, error) {
	var req syncReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.processSyncRequest: ShouldBindJSON failed: %v", err)
		return req, errInvalidBody
	}

	switch model.Action(req.Action) {
	case "", model.ActionAdd, model.ActionUpdate, model.ActionDelete:
	default:
		h.l.Errorf(ctx, "indexing.delivery.http.processSyncRequest: unknown action %q", req.Action)
		return req, errUnknownAction
	}
	return req, nil
}

func (h *handler) processListEntitiesRequest(c *gin.Context) (listEntitiesReq, error) {
	var req listEntitiesReq

	ctx := c.Request.Context()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(ctx, "indexing.delivery.http.processListEntitiesRequest: ShouldBindQuery failed: %v", err)
		return req, errInvalidQuery
	}
	return req, nil
}

func (h *handler) processEntityIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.l.Errorf(c.Request.Context(), "indexing.delivery.http.processEntityIDParam: invalid id %q", c.Param("id"))
		return 0, errInvalidEntityID
	}
	return id, nil
}

func (h *handler) processAPIKeyQuery(c *gin.Context) (string, error) {
	apiKey := c.Query("api_key")
	if apiKey == "" {
		h.l.Errorf(c.Request.Context(), "indexing.delivery.http.processAPIKeyQuery: missing api_key")
		return "", errMissingAPIKey
	}
	return apiKey, nil
}
