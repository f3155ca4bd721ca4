// Package mail delivers alert notifications over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

// SMTPMailer sends alert emails through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendAlerts renders and sends one email carrying all fired alerts. The
// dial blocks, so the context deadline is checked up front; gomail itself
// does not take a context.
func (m *SMTPMailer) SendAlerts(ctx context.Context, to, displayName string, alerts []core.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("MoneyWise: %d alert(s) on your account", len(alerts)))
	msg.SetBody("text/html", RenderAlertBody(displayName, alerts))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send alert email to %s: %w", to, err)
	}
	return nil
}
