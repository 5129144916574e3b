package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const userPayloadKey = "user_payload"

func authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(userPayloadKey, payload)

		ctx.Next()
	}
}

// roleCheck gates a route group to the given roles. Must run after authCheck.
func roleCheck(roles ...domain.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := getAuthPayload(ctx)
		for _, role := range roles {
			if payload.Role == role {
				ctx.Next()
				return
			}
		}
		handleAbort(ctx, domain.ErrForbidden)
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(userPayloadKey).(*port.TokenPayload)
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Error: err.Error()})
}
