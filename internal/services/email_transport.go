package services

import (
	"context"
	"fmt"

	"sheetmart/internal/models"

	"github.com/wneessen/go-mail"
)

// EmailTransport delivers one message.
type EmailTransport interface {
	Send(ctx context.Context, msg *models.EmailMessage) error
}

// SMTPConfig holds sender credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type smtpTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport builds a transport over authenticated SMTP with mandatory
// TLS. Missing credentials surface as ErrTransportNotConfigured on every send.
func NewSMTPTransport(cfg SMTPConfig) EmailTransport {
	return &smtpTransport{cfg: cfg}
}

func (t *smtpTransport) configured() bool {
	return t.cfg.Host != "" && t.cfg.Username != "" && t.cfg.Password != ""
}

func (t *smtpTransport) Send(ctx context.Context, msg *models.EmailMessage) error {
	if !t.configured() {
		return ErrTransportNotConfigured
	}

	m, err := buildMessage(msg, t.cfg.Username)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.cfg.Host,
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(msg *models.EmailMessage, fallbackFrom string) (*mail.Msg, error) {
	m := mail.NewMsg()
	from := msg.From
	if from == "" {
		from = fallbackFrom
	}
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)
	if msg.Text == "" {
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
		return m, nil
	}
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
