// Package email delivers notifications over SMTP. When no host is
// configured the sender degrades to logging, which keeps local setups
// working without a mail relay.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"bookify/internal/domain/shared/result"
)

type Sender struct {
	Host     string
	Port     int
	From     string
	User     string
	Password string
	Logger   *slog.Logger
}

func (s *Sender) Send(ctx context.Context, recipient, subject, body string) result.Result[result.Unit] {
	if err := ctx.Err(); err != nil {
		return result.Failure[result.Unit](result.MustError("Email.Cancelled", err.Error(), nil))
	}
	if recipient == "" {
		return result.Failure[result.Unit](result.MustError("Email.RecipientRequired", "recipient address is required", nil))
	}
	if s.Host == "" {
		if s.Logger != nil {
			s.Logger.Info("email delivery skipped, no SMTP host configured",
				"recipient", recipient, "subject", subject)
		}
		return result.Ok()
	}

	msg := s.compose(recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}
	if err := smtp.SendMail(addr, auth, s.From, []string{recipient}, msg); err != nil {
		return result.Failure[result.Unit](result.MustError("Email.DeliveryFailed", err.Error(), nil))
	}
	return result.Ok()
}

func (s *Sender) compose(recipient, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.From)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
