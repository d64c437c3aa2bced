package notifications

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer sends transactional mail through SendGrid. Delivery is best-effort:
// failures are logged and never surfaced to the request that triggered them.
type Mailer struct {
	apiKey string
	from   string
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{apiKey: apiKey, from: from}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("Sales Savvy", m.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}

func (m *Mailer) SendOrderConfirmation(to, orderID string) {
	body := fmt.Sprintf("Your order %s has been placed successfully!\n\n"+
		"Thank you for shopping with Sales Savvy!", orderID)
	if err := m.send(to, "Sales Savvy - Order Confirmation", body); err != nil {
		zap.L().Warn("order confirmation mail not sent",
			zap.String("order_id", orderID), zap.Error(err))
	}
}
