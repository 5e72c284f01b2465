// utils/email.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"storefront/models"
)

// EmailSender delivers a single message.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// PostmarkSender sends mail through Postmark
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

func NewPostmarkSender(apiToken, from string) *PostmarkSender {
	return &PostmarkSender{client: postmark.NewClient(apiToken, ""), from: from}
}

func (s *PostmarkSender) Send(_ context.Context, to, subject, htmlBody string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     s.from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: htmlBody,
		Tag:      "order-confirmation",
	})
	if err != nil {
		return fmt.Errorf("postmark: %w", err)
	}
	return nil
}

// SendGridSender sends mail through SendGrid. Each Send builds its own
// request so concurrent confirmations do not share a body.
type SendGridSender struct {
	apiKey string
	host   string
	from   *mail.Email
}

// NewSendGridSender builds a sender. An empty host means the public SendGrid API.
func NewSendGridSender(apiKey, host, from string) *SendGridSender {
	return &SendGridSender{
		apiKey: apiKey,
		host:   host,
		from:   mail.NewEmail("Campus Store", from),
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), htmlBody, htmlBody)

	request := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(msg)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailService composes storefront emails and hands them to a sender
type EmailService struct {
	sender EmailSender
	logger *zap.Logger
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(sender EmailSender, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{sender: sender, logger: logger}
}

var ErrNoRecipient = errors.New("email recipient is empty")

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	if toEmail == "" {
		return ErrNoRecipient
	}
	if err := es.sender.Send(ctx, toEmail, subject, htmlContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	es.logger.Debug("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

// SendOrderConfirmationEmail tells the customer their order was placed and
// how payment continues for the chosen method.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, user models.User, record models.OrderRecord) error {
	name := user.Name
	if name == "" {
		name = "Customer"
	}

	var next string
	switch record.PaymentMethod {
	case models.PaymentCash:
		next = "Your item has been reserved for pickup. Please bring cash when you collect it at the campus store."
	case models.PaymentEFT:
		next = fmt.Sprintf("Please pay by EFT using <strong>%s</strong> as your reference. Your order ships once payment clears.", html.EscapeString(record.OrderID))
	default:
		next = "Your card payment is being processed."
	}

	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Quantity: <strong>%d</strong><br>Total Amount: <strong>R%s</strong><br>Payment Method: <strong>%s</strong><br><br>%s<br><br>Thank you for shopping with us!",
		html.EscapeString(name),
		html.EscapeString(record.OrderID),
		record.Quantity,
		record.Total.StringFixed(2),
		record.PaymentMethod,
		next,
	)

	return es.SendEmail(context.Background(), toEmail, subject, htmlContent)
}
