package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"repono/internal/domain"
)

// ErrorEnvelope is the body-level error used by the retrieval endpoints.
// Not-found conditions are deliberately rendered with HTTP 200 and the real
// status inside the body, keeping the envelope uniform for API clients.
type ErrorEnvelope struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// RespondNotFound renders the in-body not-found envelope with HTTP 200.
func RespondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusOK, ErrorEnvelope{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: message,
	})
}

// RespondUnauthorized renders a real 401 with the given message.
func RespondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorEnvelope{
		Status:  http.StatusUnauthorized,
		Message: message,
	})
}

// HandleError maps a domain error onto the response contract.
func HandleError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &notFound):
		RespondNotFound(c, notFound.Message)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive),
		errors.Is(err, domain.ErrAccountInactive):
		RespondUnauthorized(c, "Invalid email or password.")
	case errors.Is(err, domain.ErrInvalidToken):
		RespondUnauthorized(c, "Invalid token")
	default:
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

// parsePageRequest extracts page and per_page query params. Validation and
// defaulting happen in the services, which own the configured default.
func parsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	return domain.PageRequest{Page: page, PerPage: perPage}
}
