package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	// If true, skip TLS certificate verification (local dev, MailHog).
	InsecureSkipVerify bool
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// send delivers one HTML message over net/smtp. Works with MailHog (no
// auth) and regular servers (PlainAuth + STARTTLS when offered).
func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.from,
		"To":           to,
		"Subject":      encodeRFC2047(subject),
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	var sb strings.Builder
	for k, v := range headers {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if err := c.Hello("localhost"); err != nil {
		return err
	}
	if ok, _ := c.Extension("STARTTLS"); ok {
		cfg := &tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.InsecureSkipVerify,
		}
		if err := c.StartTLS(cfg); err != nil {
			return err
		}
		// EHLO again after TLS to refresh the extension list.
		if err := c.Hello("localhost"); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		return err
	}
	return w.Close()
}

// SendWelcome greets a freshly registered account and points it at phone
// verification.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,<br/>Welcome to PrajaConnect! Please verify your phone number using the OTP sent to your mobile.</p>`, name)
	return m.send(ctx, to, "Welcome to PrajaConnect", body)
}

// Subject encoding per RFC 2047, in case of non-ASCII subjects.
func encodeRFC2047(s string) string {
	return fmt.Sprintf("=?UTF-8?Q?%s?=", qEncode(s))
}

func qEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == ' ' {
			if c == ' ' {
				b.WriteByte('_')
			} else {
				b.WriteByte(c)
			}
		} else {
			b.WriteString(fmt.Sprintf("=%02X", c))
		}
	}
	return b.String()
}
