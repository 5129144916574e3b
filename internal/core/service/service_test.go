package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/psalazarh/libreria-backend/internal/adapter/auth"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"github.com/psalazarh/libreria-backend/internal/core/port"
	"github.com/psalazarh/libreria-backend/internal/core/port/mock"
	"github.com/psalazarh/libreria-backend/internal/core/service"
	"github.com/psalazarh/libreria-backend/internal/core/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, mail *mock.MockMailer)

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userRegisterTest struct {
		name     string
		user     domain.User
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Name:     "Ana",
		LastName: "García",
		Email:    "ana@test.com",
		Password: hashedPass,
		Role:     domain.RoleClient,
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{Name: user.Name, LastName: user.LastName, Email: user.Email, Password: "test"},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						return u, nil
					})
			},
			expError: nil,
		},
		{
			name: "Register already exists",
			user: domain.User{Name: user.Name, Email: user.Email, Password: "test"},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(&user, nil)
			},
			expError: domain.ErrConflictingData,
		},
		{
			name: "Register does not honor requested admin role",
			user: domain.User{Name: user.Name, Email: user.Email, Password: "test", Role: domain.RoleAdmin},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						return u, nil
					})
			},
			expError: nil,
		},
		{
			name: "Register does not honor requested employee role",
			user: domain.User{Name: user.Name, Email: user.Email, Password: "test", Role: domain.RoleEmployee},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						return u, nil
					})
			},
			expError: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEmpty(t, result.ID)
				// self-registration always yields a client, whatever the request carried
				assert.Equal(t, domain.RoleClient, result.Role)
			}
		})
	}
}

func TestService_CreateUser(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type createUserTest struct {
		name     string
		user     domain.User
		mock     prepareMocks
		expError error
	}

	tests := []createUserTest{
		{
			name: "Admin creates employee",
			user: domain.User{Name: "Luis", Email: "luis@test.com", Password: "test", Role: domain.RoleEmployee},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "luis@test.com").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						return u, nil
					})
			},
			expError: nil,
		},
		{
			name:     "Unknown role rejected",
			user:     domain.User{Name: "Luis", Email: "luis@test.com", Password: "test", Role: "superuser"},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrBadRequest,
		},
		{
			name:     "Empty role rejected",
			user:     domain.User{Name: "Luis", Email: "luis@test.com", Password: "test"},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			result, err := s.CreateUser(context.Background(), &test.user)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, test.user.Role, result.Role)
			}
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userLoginTest struct {
		name     string
		email    string
		password string
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		ID:       "c7f5a9e2-1f34-4a6e-9a6b-8f0f6f14d01a",
		Name:     "Ana",
		Email:    "ana@test.com",
		Password: hashedPass,
		Role:     domain.RoleClient,
	}

	tests := []userLoginTest{
		{
			name:     "Login good",
			email:    user.Email,
			password: "test",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name:     "Password bad",
			email:    user.Email,
			password: "hacker",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "Login bad",
			email:    "hacker@test.com",
			password: "test",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "hacker@test.com").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts, err := auth.New()
			assert.NoError(t, err)

			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.email, test.password)
			assert.Equal(t, test.expError, err)

			if token != "" {
				payload, err := ts.VerifyToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, payload.UserID)
				assert.Equal(t, user.Role, payload.Role)
			}
		})
	}
}

func TestService_CreateSale(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	client := domain.User{
		ID:       "0f8fad5b-d9cb-469f-a165-70867728950e",
		Name:     "Ana",
		LastName: "García",
		Email:    "ana@test.com",
		Role:     domain.RoleClient,
	}
	employee := domain.User{
		ID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Name:  "Luis",
		Email: "luis@test.com",
		Role:  domain.RoleEmployee,
	}
	book := domain.Product{
		ID:    "9566c74d-1003-4c4d-bbbb-0407d1e2c649",
		Name:  "Cien años de soledad",
		Price: decimal.MustParse("10"),
		Stock: 5,
	}
	freeBook := domain.Product{
		ID:    "65f0cee8-53a6-4b2b-9a96-f3ccf5efb1a2",
		Name:  "Folleto",
		Price: decimal.Zero,
		Stock: 100,
	}

	pickupReq := func(items ...port.SaleItemRequest) *port.CreateSaleRequest {
		return &port.CreateSaleRequest{
			UserID:         client.ID,
			Items:          items,
			PaymentMethod:  domain.PaymentCash,
			DeliveryMethod: domain.DeliveryPickup,
			ShippingCost:   decimal.Zero,
		}
	}

	type createSaleTest struct {
		name     string
		req      *port.CreateSaleRequest
		mock     prepareMocks
		expError error
		check    func(t *testing.T, sale *domain.Sale)
	}

	tests := []createSaleTest{
		{
			name: "Good pickup sale with shipping",
			req: &port.CreateSaleRequest{
				UserID:         client.ID,
				Items:          []port.SaleItemRequest{{ProductID: book.ID, Quantity: 2}},
				PaymentMethod:  domain.PaymentCash,
				DeliveryMethod: domain.DeliveryPickup,
				ShippingCost:   decimal.MustParse("5"),
			},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), book.ID).Return(&book, nil)
				repo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
						return sale, nil
					})
			},
			expError: nil,
			check: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, decimal.MustParse("25"), sale.Total)
				assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
				assert.Equal(t, domain.OrderStatusPreparing, sale.OrderStatus)
				assert.Equal(t, "Ana García", sale.UserName)
				assert.Equal(t, client.Email, sale.UserEmail)
				assert.Len(t, sale.Items, 1)
				assert.Equal(t, book.Name, sale.Items[0].ProductName)
				assert.Equal(t, book.Price, sale.Items[0].Price)
			},
		},
		{
			name:     "No items",
			req:      pickupReq(),
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrSaleWithoutItems,
		},
		{
			name: "Missing payment method",
			req: &port.CreateSaleRequest{
				UserID:         client.ID,
				Items:          []port.SaleItemRequest{{ProductID: book.ID, Quantity: 1}},
				DeliveryMethod: domain.DeliveryPickup,
			},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrPaymentMethodRequired,
		},
		{
			name: "Missing delivery method",
			req: &port.CreateSaleRequest{
				UserID:        client.ID,
				Items:         []port.SaleItemRequest{{ProductID: book.ID, Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
			},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrDeliveryMethodRequired,
		},
		{
			name: "Home delivery needs full address",
			req: &port.CreateSaleRequest{
				UserID:         client.ID,
				Items:          []port.SaleItemRequest{{ProductID: book.ID, Quantity: 1}},
				PaymentMethod:  domain.PaymentCash,
				DeliveryMethod: domain.DeliveryHome,
				Address:        &domain.DeliveryAddress{Street: "Av. Siempreviva 742"},
			},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrAddressRequired,
		},
		{
			name: "Unknown client",
			req:  pickupReq(port.SaleItemRequest{ProductID: book.ID, Quantity: 1}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrClientNotFound,
		},
		{
			name: "Employee cannot buy",
			req: &port.CreateSaleRequest{
				UserID:         employee.ID,
				Items:          []port.SaleItemRequest{{ProductID: book.ID, Quantity: 1}},
				PaymentMethod:  domain.PaymentCash,
				DeliveryMethod: domain.DeliveryPickup,
			},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), employee.ID).Return(&employee, nil)
			},
			expError: domain.ErrForbidden,
		},
		{
			name: "Unknown product",
			req:  pickupReq(port.SaleItemRequest{ProductID: "missing", Quantity: 1}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), "missing").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrProductNotFound,
		},
		{
			name: "Zero quantity",
			req:  pickupReq(port.SaleItemRequest{ProductID: book.ID, Quantity: 0}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), book.ID).Return(&book, nil)
			},
			expError: domain.ErrInvalidQuantity,
		},
		{
			name: "Insufficient stock leaves nothing written",
			req:  pickupReq(port.SaleItemRequest{ProductID: book.ID, Quantity: 10}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), book.ID).Return(&book, nil)
			},
			expError: domain.ErrInsufficientStock,
		},
		{
			name: "Zero total",
			req:  pickupReq(port.SaleItemRequest{ProductID: freeBook.ID, Quantity: 3}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), freeBook.ID).Return(&freeBook, nil)
			},
			expError: domain.ErrZeroTotal,
		},
		{
			name: "Concurrent reservation lost",
			req:  pickupReq(port.SaleItemRequest{ProductID: book.ID, Quantity: 2}),
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetUserByID(gomock.Any(), client.ID).Return(&client, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), book.ID).Return(&book, nil)
				repo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInsufficientStock)
			},
			expError: domain.ErrInsufficientStock,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			result, err := s.CreateSale(context.Background(), test.req)

			assert.Equal(t, test.expError, err)
			if test.expError != nil {
				assert.Nil(t, result)
			} else if test.check != nil {
				test.check(t, result)
			}
		})
	}
}

func TestService_UpdateSaleStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	saleID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	pickupSale := func() *domain.Sale {
		return &domain.Sale{
			ID:             saleID,
			UserID:         "u1",
			UserName:       "Ana García",
			UserEmail:      "ana@test.com",
			Total:          decimal.MustParse("25"),
			PaymentMethod:  domain.PaymentCash,
			Status:         domain.SaleStatusCompleted,
			DeliveryMethod: domain.DeliveryPickup,
			OrderStatus:    domain.OrderStatusPreparing,
			CreatedAt:      time.Now(),
		}
	}

	type updateStatusTest struct {
		name     string
		req      *port.UpdateSaleStatusRequest
		mock     prepareMocks
		expError error
		check    func(t *testing.T, sale *domain.Sale)
	}

	tests := []updateStatusTest{
		{
			name: "Order status outside delivery method set",
			req:  &port.UpdateSaleStatusRequest{OrderStatus: domain.OrderStatusShipping},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pickupSale(), nil)
			},
			expError: domain.ErrInvalidOrderStatus,
		},
		{
			name: "Invalid sale status",
			req:  &port.UpdateSaleStatusRequest{Status: "refunded"},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pickupSale(), nil)
			},
			expError: domain.ErrInvalidSaleStatus,
		},
		{
			name:     "Nothing to update",
			req:      &port.UpdateSaleStatusRequest{},
			mock:     func(repo *mock.MockRepository, mail *mock.MockMailer) {},
			expError: domain.ErrNoUpdatedData,
		},
		{
			name: "Sale not found",
			req:  &port.UpdateSaleStatusRequest{Status: domain.SaleStatusCancelled},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrSaleNotFound,
		},
		{
			name: "Cancel without mail",
			req:  &port.UpdateSaleStatusRequest{Status: domain.SaleStatusCancelled},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pickupSale(), nil)
				repo.EXPECT().UpdateSaleStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
						return sale, nil
					})
			},
			expError: nil,
			check: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, domain.SaleStatusCancelled, sale.Status)
				assert.Equal(t, domain.OrderStatusPreparing, sale.OrderStatus)
			},
		},
		{
			name: "Delivered sends receipt with redacted id",
			req:  &port.UpdateSaleStatusRequest{OrderStatus: domain.OrderStatusDelivered},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pickupSale(), nil)
				repo.EXPECT().UpdateSaleStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
						return sale, nil
					})
				mail.EXPECT().SendSaleReceipt(gomock.Any(), "7728950e", gomock.Any()).Return(nil)
			},
			expError: nil,
			check: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, domain.OrderStatusDelivered, sale.OrderStatus)
			},
		},
		{
			name: "Delivered survives mail failure",
			req:  &port.UpdateSaleStatusRequest{OrderStatus: domain.OrderStatusDelivered},
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), saleID).Return(pickupSale(), nil)
				repo.EXPECT().UpdateSaleStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
						return sale, nil
					})
				mail.EXPECT().SendSaleReceipt(gomock.Any(), "7728950e", gomock.Any()).
					Return(domain.ErrMailDelivery)
			},
			expError: nil,
			check: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, domain.OrderStatusDelivered, sale.OrderStatus)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			result, err := s.UpdateSaleStatus(context.Background(), saleID, test.req)

			assert.Equal(t, test.expError, err)
			if test.expError != nil {
				assert.Nil(t, result)
			} else if test.check != nil {
				test.check(t, result)
			}
		})
	}
}

func TestService_ListSalesFiltersDanglingRefs(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	user := domain.User{ID: "u1", Name: "Ana", Role: domain.RoleClient}
	good := &domain.Sale{
		ID:     "s1",
		UserID: user.ID,
		Items:  []domain.SaleItem{{ProductID: "p1", ProductName: "Libro", Quantity: 1, Price: decimal.MustParse("10")}},
	}
	orphan := &domain.Sale{
		ID:     "s2",
		UserID: "gone",
		Items:  []domain.SaleItem{{ProductID: "p1", Quantity: 1, Price: decimal.MustParse("10")}},
	}

	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	mail := mock.NewMockMailer(mockCtrl)

	filter := domain.SaleFilter{UserID: ""}
	repo.EXPECT().ListSales(gomock.Any(), filter).Return([]*domain.Sale{good, orphan}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(&user, nil)
	repo.EXPECT().GetProductByID(gomock.Any(), "p1").Return(&domain.Product{ID: "p1"}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), "gone").Return(nil, domain.ErrDataNotFound)

	s, err := service.NewService(repo, ts, mail, logger)
	assert.NoError(t, err)

	list, err := s.ListSales(context.Background(), filter)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].ID)
}

func TestService_GetSale(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	user := domain.User{ID: "u1", Name: "Ana", Role: domain.RoleClient}
	sale := func() *domain.Sale {
		return &domain.Sale{
			ID:     "s1",
			UserID: user.ID,
			Items:  []domain.SaleItem{{ProductID: "p1", ProductName: "Libro", Quantity: 1, Price: decimal.MustParse("10")}},
		}
	}

	type getSaleTest struct {
		name     string
		mock     prepareMocks
		expError error
	}

	tests := []getSaleTest{
		{
			name: "Sale resolves",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), "s1").Return(sale(), nil)
				repo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(&user, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), "p1").Return(&domain.Product{ID: "p1"}, nil)
			},
			expError: nil,
		},
		{
			name: "Sale missing",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), "s1").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrSaleNotFound,
		},
		{
			name: "Dangling user hides the sale",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), "s1").Return(sale(), nil)
				repo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrSaleNotFound,
		},
		{
			name: "Dangling product hides the sale",
			mock: func(repo *mock.MockRepository, mail *mock.MockMailer) {
				repo.EXPECT().GetSaleByID(gomock.Any(), "s1").Return(sale(), nil)
				repo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(&user, nil)
				repo.EXPECT().GetProductByID(gomock.Any(), "p1").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrSaleNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)
			test.mock(repo, mail)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			result, err := s.GetSale(context.Background(), "s1")

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.Equal(t, "s1", result.ID)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestService_GetStatistics(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type statisticsTest struct {
		name  string
		sales []*domain.Sale
		check func(t *testing.T, stats *domain.SaleStatistics)
	}

	tests := []statisticsTest{
		{
			name:  "No sales",
			sales: []*domain.Sale{},
			check: func(t *testing.T, stats *domain.SaleStatistics) {
				assert.Equal(t, 0, stats.TotalSales)
				assert.Equal(t, 0, stats.CompletedSales)
				assert.Equal(t, 0, stats.PendingSales)
				assert.Equal(t, decimal.Zero, stats.TotalRevenue)
				assert.Equal(t, decimal.Zero, stats.AverageSale)
			},
		},
		{
			name: "Mixed sales",
			sales: []*domain.Sale{
				{Total: decimal.MustParse("25"), Status: domain.SaleStatusCompleted, DeliveryMethod: domain.DeliveryPickup},
				{Total: decimal.MustParse("75"), Status: domain.SaleStatusPending, DeliveryMethod: domain.DeliveryHome},
			},
			check: func(t *testing.T, stats *domain.SaleStatistics) {
				assert.Equal(t, 2, stats.TotalSales)
				assert.Equal(t, 1, stats.CompletedSales)
				assert.Equal(t, 1, stats.PendingSales)
				assert.Equal(t, 1, stats.HomeDeliveries)
				assert.Equal(t, 1, stats.LocalPickups)
				assert.Zero(t, stats.TotalRevenue.Cmp(decimal.Hundred))
				assert.Zero(t, stats.AverageSale.Cmp(decimal.MustParse("50")))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			mail := mock.NewMockMailer(mockCtrl)

			repo.EXPECT().ListSales(gomock.Any(), domain.SaleFilter{}).Return(test.sales, nil)

			s, err := service.NewService(repo, ts, mail, logger)
			assert.NoError(t, err)

			stats, err := s.GetStatistics(context.Background())
			assert.NoError(t, err)
			test.check(t, stats)
		})
	}
}
