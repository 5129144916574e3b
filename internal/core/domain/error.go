package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors. User-facing messages, kept in Spanish.
	ErrSaleWithoutItems       = errors.New("la venta no tiene productos")
	ErrPaymentMethodRequired  = errors.New("el método de pago es obligatorio")
	ErrDeliveryMethodRequired = errors.New("el método de entrega es obligatorio")
	ErrAddressRequired        = errors.New("la dirección de envío es obligatoria para envío a domicilio")
	ErrClientNotFound         = errors.New("cliente no encontrado")
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInvalidQuantity        = errors.New("la cantidad debe ser un entero mayor a cero")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrZeroTotal              = errors.New("el total debe ser mayor a cero")
	ErrSaleNotFound           = errors.New("venta no encontrada")
	ErrInvalidSaleStatus      = errors.New("estado de venta inválido")
	ErrInvalidOrderStatus     = errors.New("estado de pedido inválido para el método de entrega")
	ErrMailDelivery           = errors.New("error enviando el comprobante por email")
)
