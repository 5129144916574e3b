package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/govalues/decimal"
	"github.com/psalazarh/libreria-backend/internal/adapter/config"
	"github.com/psalazarh/libreria-backend/internal/core/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:embed receipt.html.tmpl
var templatesDir embed.FS

var paymentMethodLabels = map[domain.PaymentMethod]string{
	domain.PaymentCreditCard: "Tarjeta de Crédito",
	domain.PaymentDebitCard:  "Tarjeta de Débito",
	domain.PaymentCash:       "Efectivo",
	domain.PaymentTransfer:   "Transferencia",
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	inbox    string
	template *template.Template
	logger   *zap.Logger
}

func NewSMTPMailer(cfg *config.SMTP, log *zap.Logger) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templatesDir, "receipt.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing receipt template: %w", err)
	}

	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		inbox:    cfg.User,
		template: tmpl,
		logger:   log,
	}, nil
}

type receiptItem struct {
	Name     string
	Quantity int32
	Price    string
	Subtotal string
}

type receiptView struct {
	SaleRef      string
	Date         string
	Time         string
	UserName     string
	UserEmail    string
	Items        []receiptItem
	Total        string
	PaymentLabel string
	HomeDelivery bool
	Address      *domain.DeliveryAddress
	ShippingCost string
	OrderStatus  string
}

func (m *SMTPMailer) SendSaleReceipt(ctx context.Context, saleRef string, sale *domain.Sale) error {
	msg, err := m.buildReceipt(saleRef, sale)
	if err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("send receipt", zap.String("cc", sale.UserEmail), zap.Error(err))
		return domain.ErrMailDelivery
	}

	m.logger.Debug("receipt sent", zap.String("sale", saleRef), zap.String("cc", sale.UserEmail))
	return nil
}

// buildReceipt renders the receipt message. The store inbox is the primary
// recipient and the buyer is carried on Cc.
func (m *SMTPMailer) buildReceipt(saleRef string, sale *domain.Sale) (*gomail.Message, error) {
	view := receiptView{
		SaleRef:      saleRef,
		Date:         sale.CreatedAt.Format("02/01/2006"),
		Time:         sale.CreatedAt.Format("15:04:05"),
		UserName:     sale.UserName,
		UserEmail:    sale.UserEmail,
		Total:        money(sale.Total),
		PaymentLabel: paymentLabel(sale.PaymentMethod),
		HomeDelivery: sale.DeliveryMethod == domain.DeliveryHome,
		Address:      sale.Address,
		ShippingCost: money(sale.ShippingCost),
		OrderStatus:  string(sale.OrderStatus),
	}

	for _, item := range sale.Items {
		view.Items = append(view.Items, receiptItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    money(item.Price),
			Subtotal: lineSubtotal(item),
		})
	}

	body := new(bytes.Buffer)
	if err := m.template.Execute(body, view); err != nil {
		m.logger.Error("render receipt", zap.Error(err))
		return nil, domain.ErrMailDelivery
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.inbox)
	msg.SetHeader("Cc", sale.UserEmail)
	msg.SetHeader("Subject", "Comprobante de Venta #"+saleRef)
	msg.SetBody("text/html", body.String())

	return msg, nil
}

func paymentLabel(method domain.PaymentMethod) string {
	if label, ok := paymentMethodLabels[method]; ok {
		return label
	}
	return string(method)
}

func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return fmt.Sprintf("$%.2f", f)
}

func lineSubtotal(item domain.SaleItem) string {
	qty, err := decimal.New(int64(item.Quantity), 0)
	if err != nil {
		return money(item.Price)
	}
	sub, err := item.Price.Mul(qty)
	if err != nil {
		return money(item.Price)
	}
	return money(sub)
}
