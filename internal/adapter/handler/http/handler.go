package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrSaleWithoutItems:       http.StatusBadRequest,
	domain.ErrPaymentMethodRequired:  http.StatusBadRequest,
	domain.ErrDeliveryMethodRequired: http.StatusBadRequest,
	domain.ErrAddressRequired:        http.StatusBadRequest,
	domain.ErrInvalidQuantity:        http.StatusBadRequest,
	domain.ErrInsufficientStock:      http.StatusBadRequest,
	domain.ErrZeroTotal:              http.StatusBadRequest,
	domain.ErrClientNotFound:         http.StatusNotFound,
	domain.ErrProductNotFound:        http.StatusNotFound,
	domain.ErrSaleNotFound:           http.StatusNotFound,
	domain.ErrInvalidSaleStatus:      http.StatusUnprocessableEntity,
	domain.ErrInvalidOrderStatus:     http.StatusUnprocessableEntity,
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadRequest.Error()})
}

// handleError sends an error response with the status code mapped from the domain error
func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{Error: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
