// Package mail delivers transactional email (OTP codes) over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/ideagauge/ideagauge/internal/config"
)

// Mailer sends one-time codes out of band. Injected so tests can capture
// instead of send.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// SMTPMailer implements Mailer using go-mail.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject("Your verification code")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf("Your verification code is: %s\n\nIt expires in 10 minutes.", code))
	msg.AddAlternativeString(gomail.TypeTextHTML,
		fmt.Sprintf("<p>Your verification code is: <b>%s</b></p><p>It expires in 10 minutes.</p>", code))

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)
