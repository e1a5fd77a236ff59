package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"storefront-backend/catalog"
	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/sender"

	"go.uber.org/zap"
)

// NotificationOutcome reports what became of the best-effort confirmation
// email. It is informational only; the payment response is decided before
// the notifier runs and is never changed by it.
type NotificationOutcome struct {
	Attempted bool   `json:"attempted"`
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NotifierService sends the order confirmation email after a verified
// payment.
type NotifierService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) NotificationOutcome
}

type notifierServiceImpl struct {
	users   repository.UserRepository
	catalog catalog.Reader
	email   sender.EmailSender
	tmpl    *template.Template
	logger  *zap.Logger
}

func NewNotifierService(
	users repository.UserRepository,
	cat catalog.Reader,
	email sender.EmailSender,
	logger *zap.Logger,
) (NotifierService, error) {
	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirmation template: %w", err)
	}
	return &notifierServiceImpl{
		users:   users,
		catalog: cat,
		email:   email,
		tmpl:    tmpl,
		logger:  logger,
	}, nil
}

type confirmationLine struct {
	Title    string
	ImageURL string
	Quantity int
	Size     string
	Amount   int
}

type confirmationData struct {
	Name         string
	OrderNumber  string
	Lines        []confirmationLine
	TotalAmount  int
	AddressLines []string
}

// SendOrderConfirmation gathers line items, enriches them from the catalog
// in one batched lookup and hands a fully-formed message to the email
// collaborator. Every failure is caught here and logged; nothing escapes
// to the caller.
func (s *notifierServiceImpl) SendOrderConfirmation(ctx context.Context, order *models.Order) NotificationOutcome {
	outcome := NotificationOutcome{Attempted: true}

	fail := func(stage string, err error) NotificationOutcome {
		outcome.Error = err.Error()
		s.logger.Warn("order confirmation email skipped",
			zap.String("stage", stage),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		return outcome
	}

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		return fail("user lookup", err)
	}

	ids := make([]string, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return fail("catalog lookup", err)
	}
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	data := confirmationData{
		Name:         user.Name,
		OrderNumber:  order.OrderNumber,
		TotalAmount:  order.TotalAmount,
		AddressLines: formatAddressLines(order),
	}
	for _, item := range order.OrderItems {
		line := confirmationLine{
			Title:    item.Title,
			Quantity: item.Quantity,
			Amount:   item.UnitPrice * item.Quantity,
		}
		if item.SelectedSize != nil {
			line.Size = *item.SelectedSize
		}
		if p, ok := byID[item.ProductID]; ok {
			if p.Title != "" {
				line.Title = p.Title
			}
			line.ImageURL = p.ImageURL
		}
		data.Lines = append(data.Lines, line)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return fail("template render", err)
	}

	subject := fmt.Sprintf("Order Confirmed — %s", order.OrderNumber)
	result, err := s.email.SendEmail(ctx, user.Email, subject, buf.String())
	if err != nil {
		return fail("email send", err)
	}

	outcome.Sent = true
	outcome.MessageID = result.MessageID
	s.logger.Info("order confirmation email sent",
		zap.String("order_number", order.OrderNumber),
		zap.String("message_id", result.MessageID),
	)
	return outcome
}

// formatAddressLines builds the human-readable shipping block, skipping
// optional lines that are blank.
func formatAddressLines(order *models.Order) []string {
	lines := []string{order.ShipName}
	if order.ShipStreet1 != "" {
		lines = append(lines, order.ShipStreet1)
	}
	if order.ShipStreet2 != "" {
		lines = append(lines, order.ShipStreet2)
	}
	cityLine := strings.TrimSpace(fmt.Sprintf("%s, %s %s", order.ShipCity, order.ShipState, order.ShipPostalCode))
	lines = append(lines, strings.TrimSuffix(cityLine, ","))
	if order.ShipCountry != "" {
		lines = append(lines, order.ShipCountry)
	}
	if order.ShipPhone != "" {
		lines = append(lines, order.ShipPhone)
	}
	return lines
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; background-color: #faf7f2; margin: 0; }
        .container { max-width: 600px; margin: 40px auto; background: #ffffff; padding: 30px; }
        .header { text-align: center; border-bottom: 1px solid #e0d8c8; padding-bottom: 20px; }
        .header h1 { margin: 0; letter-spacing: 2px; color: #5b4636; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        td { padding: 10px 5px; border-bottom: 1px solid #f0eade; font-size: 14px; color: #444; }
        .total { font-weight: bold; font-size: 16px; }
        .address { background: #faf7f2; padding: 15px; font-size: 14px; color: #555; }
        .footer { text-align: center; font-size: 12px; color: #999; padding-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Kaveri Looms</h1></div>
        <p>Hello {{.Name}},</p>
        <p>Thank you for your order <strong>{{.OrderNumber}}</strong>. Your payment has been received and your pieces are being prepared.</p>
        <table>
            {{range .Lines}}
            <tr>
                <td>{{.Title}}{{if .Size}} (Size {{.Size}}){{end}} × {{.Quantity}}</td>
                <td style="text-align:right">₹{{.Amount}}</td>
            </tr>
            {{end}}
            <tr class="total">
                <td>Total</td>
                <td style="text-align:right">₹{{.TotalAmount}}</td>
            </tr>
        </table>
        <div class="address">
            <strong>Shipping to:</strong><br>
            {{range .AddressLines}}{{.}}<br>{{end}}
        </div>
        <div class="footer">
            <p>Handwoven with care · Kaveri Looms</p>
        </div>
    </div>
</body>
</html>
`
