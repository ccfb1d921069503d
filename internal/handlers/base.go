package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

// BaseHandler carries the shared plumbing every resource handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// respondList is respondSuccess with the item count set, for collection endpoints.
func (h *BaseHandler) respondList(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

func (h *BaseHandler) respondError(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Status:  models.StatusError,
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service-layer errors to HTTP status codes and the
// uniform envelope. Validation failures carry their field detail in data.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		h.respondError(c, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		h.respondError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrAlreadyExists):
		// Uniqueness violations report as 400 with the offending name
		// in the message, like every other invalid write.
		h.respondError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrUnauthorized):
		h.respondError(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		h.respondError(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		h.respondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		utils.FromContext(c.Request.Context(), h.logger).Error("internal error", "error", err)
		h.respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// parseUintParam reads a numeric path parameter, responding 400 on failure.
func (h *BaseHandler) parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}
