package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Product struct {
	ID          string
	Name        string
	Brand       string
	Description string
	Price       decimal.Decimal
	Stock       int32
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
