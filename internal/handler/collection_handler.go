package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repono/internal/middleware"
	"repono/internal/service"
)

// CollectionHandler handles the collection retrieval endpoints.
type CollectionHandler struct {
	collectionService service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// Index handles GET /api/v1/tenant/:tenant_id/collection
func (h *CollectionHandler) Index(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.collectionService.List(
		c.Request.Context(),
		account,
		middleware.GetIdentity(c),
		parsePageRequest(c),
	)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Show handles GET /api/v1/tenant/:tenant_id/collection/:id
// The page window applies to the collection's member works.
func (h *CollectionHandler) Show(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.collectionService.Show(
		c.Request.Context(),
		account,
		middleware.GetIdentity(c),
		c.Param("id"),
		parsePageRequest(c),
	)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
