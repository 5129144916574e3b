package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
)

type SaleItemRequest struct {
	ProductID string
	Quantity  int32
}

type CreateSaleRequest struct {
	UserID         string
	Items          []SaleItemRequest
	PaymentMethod  domain.PaymentMethod
	DeliveryMethod domain.DeliveryMethod
	Address        *domain.DeliveryAddress
	ShippingCost   decimal.Decimal
}

// UpdateSaleStatusRequest carries the optional fields of a status update.
// A zero value means the field was not supplied and is left untouched.
type UpdateSaleStatusRequest struct {
	Status      domain.SaleStatus
	OrderStatus domain.OrderStatus
}

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, email string, password string) (string, error)

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	CreateSale(ctx context.Context, req *CreateSaleRequest) (*domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, saleID string, req *UpdateSaleStatusRequest) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	GetStatistics(ctx context.Context) (*domain.SaleStatistics, error)
}
