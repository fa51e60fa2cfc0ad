// Package notify sends customer emails about their orders.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"shopper-backend/models"

	"github.com/keighl/postmark"
)

// Notifier is told about every order that was placed.
type Notifier interface {
	OrderPlaced(ctx context.Context, to string, order *models.Order) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, string, *models.Order) error { return nil }

// emailSender is the part of the Postmark client used here.
type emailSender interface {
	SendEmail(email postmark.Email) (postmark.EmailResponse, error)
}

// Postmark emails an order confirmation through the Postmark API.
type Postmark struct {
	client emailSender
	from   string
}

// NewPostmark sends through the Postmark server identified by serverToken.
func NewPostmark(serverToken, from string) *Postmark {
	return &Postmark{client: postmark.NewClient(serverToken, ""), from: from}
}

func (p *Postmark) OrderPlaced(ctx context.Context, to string, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.client.SendEmail(postmark.Email{
		From:     p.from,
		To:       to,
		Subject:  "Order Confirmation",
		HtmlBody: confirmationHTML(order),
		TextBody: confirmationText(order),
		Tag:      "order-confirmation",
	})
	if err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func confirmationText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your purchase! Your order %s has been placed.\n\n", order.ID.Hex())
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s @ %.2f\n", item.Quantity, item.Name, item.Price)
	}
	fmt.Fprintf(&b, "\nShipping: %.2f\nTotal: %.2f\nPayment method: %s\n",
		order.ShippingFee, order.TotalAmount, order.PaymentInfo.Method)
	return b.String()
}

func confirmationHTML(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>Thank you for your purchase!</strong><br><br>Your order (ID: %s) has been placed.<ul>",
		order.ID.Hex())
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d x %s @ %.2f</li>", item.Quantity, html.EscapeString(item.Name), item.Price)
	}
	fmt.Fprintf(&b, "</ul>Shipping: %.2f<br>Total Amount: <strong>%.2f</strong><br>Payment Method: <strong>%s</strong>",
		order.ShippingFee, order.TotalAmount, html.EscapeString(order.PaymentInfo.Method))
	return b.String()
}
