package http

import (
	"github.com/gin-gonic/gin"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
	"github.com/psalazarh/libreria-backend/internal/core/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	req := registerRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: hashed,
	}

	_, err = uh.service.RegisterUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}

// CreateUser creates a user with an explicit role. Restricted to admins by
// the route middleware.
func (uh *UserHandler) CreateUser(ctx *gin.Context) {
	req := createUserRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: hashed,
		Role:     domain.UserRole(req.Role),
	}

	created, err := uh.service.CreateUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, userResponse{
		ID:       created.ID,
		Name:     created.Name,
		LastName: created.LastName,
		Email:    created.Email,
		Role:     string(created.Role),
	})
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := loginRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}
