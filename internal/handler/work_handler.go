package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repono/internal/middleware"
	"repono/internal/service"
)

// WorkHandler handles the work retrieval endpoints.
type WorkHandler struct {
	workService service.WorkService
}

// NewWorkHandler creates a new WorkHandler.
func NewWorkHandler(workService service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// Index handles GET /api/v1/tenant/:tenant_id/work
func (h *WorkHandler) Index(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.workService.List(
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

// Show handles GET /api/v1/tenant/:tenant_id/work/:id
func (h *WorkHandler) Show(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.workService.Show(
		c.Request.Context(),
		account,
		middleware.GetIdentity(c),
		c.Param("id"),
	)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
