package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 401:
		resp = response.Unauthorized(msg)
	case 404:
		resp = response.NotFound(msg)
	case 500:
		resp = response.InternalError(msg)
	default:
		resp = response.NewAppError(status, msg)
	}
	c.JSON(status, resp)
}

// HandleStoreError maps the domain error taxonomy onto transport statuses:
// duplicates are client errors, misses are 404, a broken store is 503.
func HandleStoreError(c *gin.Context, logger internal.Logger, err error, msg string) {
	switch {
	case errors.Is(err, internal.ErrDuplicateUsername):
		HandleError(c, logger, err, 400, "Username already registered")
	case errors.Is(err, internal.ErrNotFound):
		HandleError(c, logger, err, 404, msg)
	case errors.Is(err, internal.ErrStorageUnavailable):
		HandleError(c, logger, err, 503, "Storage unavailable, try again")
	default:
		HandleError(c, logger, err, 500, msg)
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Created", requestID)
	c.JSON(201, response.Success(data, meta))
}

func currentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}
