package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
	"github.com/psalazarh/libreria-backend/internal/core/utils"
	"go.uber.org/zap"
)

// saleRefLen is how many trailing characters of the sale id appear on the
// mailed receipt.
const saleRefLen = 8

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	mailer       port.Mailer
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	mailer port.Mailer, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		mailer:       mailer,
		logger:       logger,
	}, nil
}

// RegisterUser self-registers a caller. The role is always forced to
// client: elevated roles are only assigned by an admin through CreateUser.
func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Role = domain.RoleClient
	return s.createUser(ctx, user)
}

// CreateUser creates a user with an explicit role. The route carrying it is
// restricted to admins.
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if !user.Role.IsValid() {
		return nil, domain.ErrBadRequest
	}
	return s.createUser(ctx, user)
}

func (s *Service) createUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, email string, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" || product.Price.IsNeg() || product.Stock < 0 {
		return nil, domain.ErrBadRequest
	}

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	newProduct, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Create product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return newProduct, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Get product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

// CreateSale runs the validation sequence for a new sale and hands the
// checked sale to the repository, which reserves stock and persists it in
// one transaction. Failures leave no stock mutation behind.
func (s *Service) CreateSale(ctx context.Context, req *port.CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrSaleWithoutItems
	}
	if !req.PaymentMethod.IsValid() {
		return nil, domain.ErrPaymentMethodRequired
	}
	if req.DeliveryMethod != domain.DeliveryHome && req.DeliveryMethod != domain.DeliveryPickup {
		return nil, domain.ErrDeliveryMethodRequired
	}
	if req.DeliveryMethod == domain.DeliveryHome && !req.Address.IsComplete() {
		return nil, domain.ErrAddressRequired
	}
	if req.ShippingCost.IsNeg() {
		return nil, domain.ErrBadRequest
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrClientNotFound
		}
		s.logger.Error("Get sale user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if user.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	items := make([]domain.SaleItem, 0, len(req.Items))
	total := decimal.Zero

	// Items are checked in input order and the first failure aborts the
	// whole sale before anything is written.
	for _, item := range req.Items {
		if item.ProductID == "" {
			return nil, domain.ErrProductNotFound
		}
		product, err := s.repo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, domain.ErrProductNotFound
			}
			s.logger.Error("Get sale product", zap.String("product", item.ProductID), zap.Error(err))
			return nil, domain.ErrInternal
		}
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if product.Stock < item.Quantity {
			s.logger.Info("Insufficient stock for sale",
				zap.String("product", product.Name),
				zap.Int32("stock", product.Stock),
				zap.Int32("requested", item.Quantity))
			return nil, domain.ErrInsufficientStock
		}

		qty, err := decimal.New(int64(item.Quantity), 0)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}
		line, err := product.Price.Mul(qty)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}
		total, err = total.Add(line)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}

		items = append(items, domain.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
	}

	if total.Cmp(decimal.Zero) <= 0 {
		return nil, domain.ErrZeroTotal
	}
	total, err = total.Add(req.ShippingCost)
	if err != nil {
		return nil, fmt.Errorf("math error:%w", err)
	}

	sale := &domain.Sale{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		UserName:       user.FullName(),
		UserEmail:      user.Email,
		Items:          items,
		Total:          total,
		ShippingCost:   req.ShippingCost,
		PaymentMethod:  req.PaymentMethod,
		Status:         domain.SaleStatusCompleted,
		DeliveryMethod: req.DeliveryMethod,
		Address:        req.Address,
		OrderStatus:    domain.OrderStatusPreparing,
		CreatedAt:      time.Now(),
	}

	newSale, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// lost a concurrent reservation, the transaction rolled back
			return nil, domain.ErrInsufficientStock
		}
		s.logger.Error("Create sale", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newSale, nil
}

// UpdateSaleStatus applies whichever of status/orderStatus is supplied.
// When the order status lands on Entregado the receipt mail is dispatched
// after the update is persisted; a mail failure is logged and swallowed.
func (s *Service) UpdateSaleStatus(ctx context.Context, saleID string, req *port.UpdateSaleStatusRequest) (*domain.Sale, error) {
	if req.Status == "" && req.OrderStatus == "" {
		return nil, domain.ErrNoUpdatedData
	}

	sale, err := s.repo.GetSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrSaleNotFound
		}
		s.logger.Error("Get sale", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, domain.ErrInvalidSaleStatus
		}
		sale.Status = req.Status
	}

	delivered := false
	if req.OrderStatus != "" {
		if !sale.DeliveryMethod.AllowsOrderStatus(req.OrderStatus) {
			s.logger.Info("Rejected order status",
				zap.String("orderStatus", string(req.OrderStatus)),
				zap.String("deliveryMethod", string(sale.DeliveryMethod)))
			return nil, domain.ErrInvalidOrderStatus
		}
		sale.OrderStatus = req.OrderStatus
		delivered = req.OrderStatus == domain.OrderStatusDelivered
	}

	updated, err := s.repo.UpdateSaleStatus(ctx, sale)
	if err != nil {
		s.logger.Error("Update sale status", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if delivered {
		if err := s.mailer.SendSaleReceipt(ctx, redactSaleID(updated.ID), updated); err != nil {
			// the sale stays Entregado no matter what the mail sink does
			s.logger.Error("Send sale receipt", zap.String("sale", redactSaleID(updated.ID)), zap.Error(err))
		}
	}

	return updated, nil
}

// GetSale returns a single sale. A sale whose user or any referenced
// product no longer resolves is treated as not found, matching ListSales.
func (s *Service) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := s.repo.GetSaleByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrSaleNotFound
		}
		s.logger.Error("Get sale", zap.Error(err))
		return nil, domain.ErrInternal
	}

	ok, err := s.resolveSaleRefs(ctx, sale)
	if err != nil {
		return nil, domain.ErrInternal
	}
	if !ok {
		s.logger.Warn("Sale has dangling references", zap.String("sale", sale.ID))
		return nil, domain.ErrSaleNotFound
	}

	return sale, nil
}

// ListSales returns sales matching the filter, newest first. Sales whose
// user or any referenced product no longer resolves are dropped from the
// result instead of failing the listing.
func (s *Service) ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	list, err := s.repo.ListSales(ctx, filter)
	if err != nil {
		s.logger.Error("List sales", zap.Error(err))
		return nil, domain.ErrInternal
	}

	result := make([]*domain.Sale, 0, len(list))
	for _, sale := range list {
		ok, err := s.resolveSaleRefs(ctx, sale)
		if err != nil {
			return nil, domain.ErrInternal
		}
		if !ok {
			s.logger.Warn("Dropping sale with dangling references", zap.String("sale", sale.ID))
			continue
		}
		result = append(result, sale)
	}

	return result, nil
}

// resolveSaleRefs reports whether every reference on the sale still exists.
func (s *Service) resolveSaleRefs(ctx context.Context, sale *domain.Sale) (bool, error) {
	_, err := s.repo.GetUserByID(ctx, sale.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return false, nil
		}
		s.logger.Error("Resolve sale user", zap.Error(err))
		return false, err
	}
	for _, item := range sale.Items {
		_, err := s.repo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return false, nil
			}
			s.logger.Error("Resolve sale product", zap.Error(err))
			return false, err
		}
	}
	return true, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*domain.SaleStatistics, error) {
	list, err := s.repo.ListSales(ctx, domain.SaleFilter{})
	if err != nil {
		s.logger.Error("List sales for statistics", zap.Error(err))
		return nil, domain.ErrInternal
	}

	stats := domain.SaleStatistics{
		TotalSales:   len(list),
		TotalRevenue: decimal.Zero,
		AverageSale:  decimal.Zero,
	}

	for _, sale := range list {
		stats.TotalRevenue, err = stats.TotalRevenue.Add(sale.Total)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}
		switch sale.Status {
		case domain.SaleStatusCompleted:
			stats.CompletedSales++
		case domain.SaleStatusPending:
			stats.PendingSales++
		}
		switch sale.DeliveryMethod {
		case domain.DeliveryHome:
			stats.HomeDeliveries++
		case domain.DeliveryPickup:
			stats.LocalPickups++
		}
	}

	if stats.TotalSales > 0 {
		count, err := decimal.New(int64(stats.TotalSales), 0)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}
		stats.AverageSale, err = stats.TotalRevenue.Quo(count)
		if err != nil {
			return nil, fmt.Errorf("math error:%w", err)
		}
	}

	return &stats, nil
}

func redactSaleID(id string) string {
	if len(id) <= saleRefLen {
		return id
	}
	return id[len(id)-saleRefLen:]
}
