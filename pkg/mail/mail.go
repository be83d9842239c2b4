package mail

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/pkg/config"
)

// Sender delivers a single HTML email. Delivery is fire-and-forget at the
// call sites; failures are logged, never propagated into tenant state.
type Sender interface {
	Send(toName, toEmail, subject, htmlBody string) error
}

// SendgridSender sends mail through the SendGrid v3 API.
type SendgridSender struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendgridSender constructs a SendGrid backed sender.
func NewSendgridSender(cfg config.MailConfig, logger *zap.Logger) *SendgridSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridSender{
		key:    cfg.SendgridKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// Send delivers the message through SendGrid.
func (s *SendgridSender) Send(toName, toEmail, subject, htmlBody string) error {
	if toEmail == "" {
		return fmt.Errorf("recipient email required")
	}
	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail(toName, toEmail), "", htmlBody)
	client := sendgrid.NewSendClient(s.key)
	res, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d", res.StatusCode)
	}
	s.logger.Debug("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

// ConsoleSender logs messages instead of delivering them. Used in
// development when no SendGrid key is configured.
type ConsoleSender struct {
	logger *zap.Logger
}

// NewConsoleSender constructs a console sender.
func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSender{logger: logger}
}

// Send writes the message to the application log.
func (s *ConsoleSender) Send(toName, toEmail, subject, htmlBody string) error {
	s.logger.Info("email (console)",
		zap.String("to", fmt.Sprintf("%s <%s>", toName, toEmail)),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(htmlBody)),
	)
	return nil
}
