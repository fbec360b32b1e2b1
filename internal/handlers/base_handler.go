package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BaseHandler struct {
	logger utils.Logger
	// strictStatus maps errors to HTTP status codes; otherwise every
	// application error is answered with 200 and the error envelope
	strictStatus bool
}

func NewBaseHandler(logger utils.Logger, strictStatus bool) BaseHandler {
	return BaseHandler{logger: logger, strictStatus: strictStatus}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

func (h *BaseHandler) respondSuccess(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["status"] = statusSuccess
	c.JSON(http.StatusOK, body)
}

// respondBadRequest answers a request that could not be decoded
func (h *BaseHandler) respondBadRequest(c *gin.Context, message string) {
	h.respond(c, http.StatusBadRequest, message)
}

func (h *BaseHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respond(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		h.respond(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrNotFound):
		h.respond(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRateLimited):
		h.respond(c, http.StatusTooManyRequests, "AI request quota exceeded, try again later")
	case errors.Is(err, services.ErrExternalService):
		h.LogError(c, err, "External service failure")
		h.respond(c, http.StatusBadGateway, err.Error())
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respond(c, http.StatusInternalServerError, err.Error())
	}
}

func (h *BaseHandler) respond(c *gin.Context, code int, message string) {
	if !h.strictStatus {
		code = http.StatusOK
	}
	c.JSON(code, ErrorResponse{Status: statusError, Message: message})
}
