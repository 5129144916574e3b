package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentTransfer   PaymentMethod = "transfer"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentTransfer:
		return true
	}
	return false
}

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "home_delivery"
	DeliveryPickup DeliveryMethod = "local_pickup"
)

// OrderStatus is the delivery-progress state of a sale, distinct from the
// financial SaleStatus. Values are user-facing and kept in Spanish.
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "En preparación"
	OrderStatusShipping  OrderStatus = "En envío"
	OrderStatusReady     OrderStatus = "Preparado"
	OrderStatusDelivered OrderStatus = "Entregado"
)

// AllowedOrderStatuses returns the progress states valid for a delivery
// method. Home deliveries go through shipping, pickups through ready.
func AllowedOrderStatuses(m DeliveryMethod) []OrderStatus {
	switch m {
	case DeliveryHome:
		return []OrderStatus{OrderStatusPreparing, OrderStatusShipping, OrderStatusDelivered}
	case DeliveryPickup:
		return []OrderStatus{OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered}
	}
	return nil
}

func (m DeliveryMethod) AllowsOrderStatus(s OrderStatus) bool {
	for _, allowed := range AllowedOrderStatuses(m) {
		if s == allowed {
			return true
		}
	}
	return false
}

type DeliveryAddress struct {
	Street     string
	City       string
	PostalCode string
	Country    string
	Notes      string
}

func (a *DeliveryAddress) IsComplete() bool {
	return a != nil && a.Street != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// SaleItem is a write-once snapshot of a product at sale time. Price and
// ProductName are captured at creation and never follow later catalog edits.
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
}

type Sale struct {
	ID             string
	UserID         string
	UserName       string
	UserEmail      string
	Items          []SaleItem
	Total          decimal.Decimal
	ShippingCost   decimal.Decimal
	PaymentMethod  PaymentMethod
	Status         SaleStatus
	DeliveryMethod DeliveryMethod
	Address        *DeliveryAddress
	OrderStatus    OrderStatus
	CreatedAt      time.Time
}

// SaleFilter narrows sale listings. Date bounds are inclusive on both ends.
type SaleFilter struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

type SaleStatistics struct {
	TotalSales     int
	TotalRevenue   decimal.Decimal
	CompletedSales int
	PendingSales   int
	HomeDeliveries int
	LocalPickups   int
	AverageSale    decimal.Decimal
}
