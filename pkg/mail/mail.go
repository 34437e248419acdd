package mail

import (
	"context"
	"fmt"

	"review-api/pkg/utils"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer delivers a plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New picks the SMTP transport when a host is configured and the log
// transport otherwise.
func New(config utils.EmailConfig, log *zap.Logger) (Mailer, error) {
	if config.Host == "" {
		return NewLogMailer(config.From, log), nil
	}
	return NewSMTPMailer(config, log)
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
	log    *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(config.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if config.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(config.User),
			gomail.WithPassword(config.Password),
		)
	}

	client, err := gomail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   config.From,
		log:    log.With(zap.String("mailer", "smtp")),
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(m.from, to, subject, body)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("Failed to send email", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	m.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	from string
	log  *zap.Logger
}

func NewLogMailer(from string, log *zap.Logger) *LogMailer {
	return &LogMailer{from: from, log: log.With(zap.String("mailer", "log"))}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	if _, err := buildMessage(m.from, to, subject, body); err != nil {
		return err
	}

	m.log.Info("Email (not delivered)",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

func buildMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}
