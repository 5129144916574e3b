package port

import (
	"context"

	"github.com/psalazarh/libreria-backend/internal/core/domain"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer.go -package=mock
type Mailer interface {
	// SendSaleReceipt mails the delivery receipt to the sale's user.
	// saleRef is the redacted sale identifier shown on the receipt.
	SendSaleReceipt(ctx context.Context, saleRef string, sale *domain.Sale) error
}
