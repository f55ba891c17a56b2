package client

import (
	"context"
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"

	"canela-backend/internal/config"
)

// Message is a single outgoing email. HTML takes precedence over Text when
// both are set.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional email. Callers decide whether a send failure
// is fatal; most notifications are fire-and-forget.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

// NewMailClient returns an SMTP mailer, or a logging no-op transport when
// no password is configured so development setups keep working without
// credentials.
func NewMailClient(cfg *config.Mail) (Mailer, error) {
	if cfg.Password == "" {
		log.Println("MAIL_SMTP_PASSWORD is not set, using JSON log transport (no real emails will be sent)")
		return &jsonMailer{from: cfg.From}, nil
	}

	c, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}

	return &smtpMailer{client: c, from: cfg.From}, nil
}

func (m *smtpMailer) Send(ctx context.Context, msg *Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	mm.Subject(msg.Subject)
	if msg.HTML != "" {
		mm.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	} else {
		mm.SetBodyString(gomail.TypeTextPlain, msg.Text)
	}

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// jsonMailer logs the message payload instead of sending it.
type jsonMailer struct {
	from string
}

func (m *jsonMailer) Send(_ context.Context, msg *Message) error {
	log.Printf("mail (not sent): from=%s to=%s subject=%q", m.from, msg.To, msg.Subject)
	return nil
}
