package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

type productRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int32   `json:"stock"`
	Image       string  `json:"image"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
	}
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	req := productRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	price, err := decimal.NewFromFloat64(req.Price)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		Image:       req.Image,
	}

	newProduct, err := ph.service.CreateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newProductResponse(newProduct), http.StatusCreated)
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	product, err := ph.service.GetProduct(ctx, ctx.Param("id"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, newProductResponse(p))
	}

	ph.handleSuccess(ctx, result)
}
