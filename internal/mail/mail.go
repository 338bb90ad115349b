// Package mail submits the rendered digest over SMTP with implicit TLS.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"findigest/internal/sanitize"
)

// Message is one outgoing digest email.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// SMTPConfig describes the submission endpoint and credentials. Username and
// Password are expected to be sanitized already.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type Sender struct {
	cfg SMTPConfig
}

func NewSender(cfg SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send builds the message and submits it over an SSL/TLS connection on the
// configured port, authenticating with the configured credentials. The
// connection is closed on every exit path. No retries: a failed submission
// is reported and left to the next scheduled run.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	for _, addr := range []struct{ field, value string }{
		{"From", msg.From},
		{"To", msg.To},
	} {
		// Envelope addresses must arrive sanitized; reject here rather
		// than let the SMTP dialog fail with a less useful error.
		if !sanitize.IsASCII(addr.value) {
			return fmt.Errorf("%s address %q is not ASCII: %s",
				addr.field, addr.value, strings.Join(sanitize.Describe(addr.value), "; "))
		}
	}

	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("setting From address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("setting To address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.cfg.Timeout))
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	fmt.Println("Connecting to SMTP server...")
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending via %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}

	fmt.Println("Email sent successfully!")
	return nil
}
