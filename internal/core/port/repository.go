package port

import (
	"context"

	"github.com/psalazarh/libreria-backend/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// Product
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	// Sale
	//
	// CreateSale persists the sale, its items and every stock decrement in
	// one transaction. Each decrement is conditional on remaining stock, so
	// two concurrent sales over the same product cannot jointly oversell:
	// the loser gets domain.ErrInsufficientStock and nothing is written.
	CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
}
