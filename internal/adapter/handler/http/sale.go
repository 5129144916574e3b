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

const dateLayout = "2006-01-02"

type SaleHandler struct {
	Handler
	service port.Service
}

func NewSaleHandler(service port.Service, logger *zap.Logger) (*SaleHandler, error) {
	return &SaleHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

type saleItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type deliveryAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Notes      string `json:"notes"`
}

type createSaleRequest struct {
	Items           []saleItemRequest       `json:"items"`
	PaymentMethod   string                  `json:"paymentMethod"`
	DeliveryMethod  string                  `json:"deliveryMethod"`
	DeliveryAddress *deliveryAddressRequest `json:"deliveryAddress"`
	ShippingCost    float64                 `json:"shippingCost"`
}

type saleItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type saleResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"userId"`
	UserName        string                  `json:"userName"`
	Items           []saleItemResponse      `json:"items"`
	Total           decimal.Decimal         `json:"total"`
	ShippingCost    decimal.Decimal         `json:"shippingCost"`
	PaymentMethod   string                  `json:"paymentMethod"`
	Status          string                  `json:"status"`
	DeliveryMethod  string                  `json:"deliveryMethod"`
	DeliveryAddress *deliveryAddressRequest `json:"deliveryAddress,omitempty"`
	OrderStatus     string                  `json:"orderStatus"`
	Date            string                  `json:"date"`
}

func newSaleResponse(sale *domain.Sale) saleResponse {
	resp := saleResponse{
		ID:             sale.ID,
		UserID:         sale.UserID,
		UserName:       sale.UserName,
		Total:          sale.Total,
		ShippingCost:   sale.ShippingCost,
		PaymentMethod:  string(sale.PaymentMethod),
		Status:         string(sale.Status),
		DeliveryMethod: string(sale.DeliveryMethod),
		OrderStatus:    string(sale.OrderStatus),
		Date:           sale.CreatedAt.Format(dateLayout),
	}
	if sale.Address != nil {
		resp.DeliveryAddress = &deliveryAddressRequest{
			Street:     sale.Address.Street,
			City:       sale.Address.City,
			PostalCode: sale.Address.PostalCode,
			Country:    sale.Address.Country,
			Notes:      sale.Address.Notes,
		}
	}
	resp.Items = make([]saleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, saleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return resp
}

func (sh *SaleHandler) CreateSale(ctx *gin.Context) {
	req := createSaleRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	shipping, err := decimal.NewFromFloat64(req.ShippingCost)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	svcReq := &port.CreateSaleRequest{
		UserID:         getAuthPayload(ctx).UserID,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		ShippingCost:   shipping,
	}
	for _, item := range req.Items {
		svcReq.Items = append(svcReq.Items, port.SaleItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if req.DeliveryAddress != nil {
		svcReq.Address = &domain.DeliveryAddress{
			Street:     req.DeliveryAddress.Street,
			City:       req.DeliveryAddress.City,
			PostalCode: req.DeliveryAddress.PostalCode,
			Country:    req.DeliveryAddress.Country,
			Notes:      req.DeliveryAddress.Notes,
		}
	}

	sale, err := sh.service.CreateSale(ctx, svcReq)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccessWithStatus(ctx, newSaleResponse(sale), http.StatusCreated)
}

type updateSaleStatusRequest struct {
	Status      string `json:"status"`
	OrderStatus string `json:"orderStatus"`
}

func (sh *SaleHandler) UpdateSaleStatus(ctx *gin.Context) {
	req := updateSaleStatusRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	sale, err := sh.service.UpdateSaleStatus(ctx, ctx.Param("id"), &port.UpdateSaleStatusRequest{
		Status:      domain.SaleStatus(req.Status),
		OrderStatus: domain.OrderStatus(req.OrderStatus),
	})
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, newSaleResponse(sale))
}

func (sh *SaleHandler) GetSale(ctx *gin.Context) {
	sale, err := sh.service.GetSale(ctx, ctx.Param("id"))
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, newSaleResponse(sale))
}

func (sh *SaleHandler) ListSales(ctx *gin.Context) {
	filter := domain.SaleFilter{UserID: ctx.Query("userId")}

	if startStr := ctx.Query("startDate"); startStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			sh.handleValidationError(ctx, err)
			return
		}
		filter.StartDate = &start
	}
	if endStr := ctx.Query("endDate"); endStr != "" {
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			sh.handleValidationError(ctx, err)
			return
		}
		// inclusive range: a bare end date means up to the end of that day
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	list, err := sh.service.ListSales(ctx, filter)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	result := make([]saleResponse, 0, len(list))
	for _, sale := range list {
		result = append(result, newSaleResponse(sale))
	}

	sh.handleSuccess(ctx, result)
}

type statisticsResponse struct {
	TotalSales     int             `json:"totalSales"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	CompletedSales int             `json:"completedSales"`
	PendingSales   int             `json:"pendingSales"`
	HomeDeliveries int             `json:"homeDeliveries"`
	LocalPickups   int             `json:"localPickups"`
	AverageSale    decimal.Decimal `json:"averageSale"`
}

func (sh *SaleHandler) GetStatistics(ctx *gin.Context) {
	stats, err := sh.service.GetStatistics(ctx)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, statisticsResponse{
		TotalSales:     stats.TotalSales,
		TotalRevenue:   stats.TotalRevenue,
		CompletedSales: stats.CompletedSales,
		PendingSales:   stats.PendingSales,
		HomeDeliveries: stats.HomeDeliveries,
		LocalPickups:   stats.LocalPickups,
		AverageSale:    stats.AverageSale,
	})
}
