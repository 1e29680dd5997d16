package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var headerReplacer = strings.NewReplacer("\r\n", "", "\r", "", "\n", "", "%0a", "", "%0d", "")

// Mailer sends run outcomes by email.
type Mailer struct {
	cfg Config
}

// NewMailer creates a mailer for the SMTP settings in cfg.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Notify implements Notifier.
func (m *Mailer) Notify(ctx context.Context, outcome Outcome) error {
	to := m.recipients()
	if len(to) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	msg, err := m.compose(outcome, to)
	if err != nil {
		return fmt.Errorf("failed to compose email: %w", err)
	}

	if err := m.send(ctx, to, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", strings.Join(to, ","), err)
	}
	return nil
}

func (m *Mailer) recipients() []string {
	var to []string
	for _, addr := range strings.Split(m.cfg.To, ",") {
		if addr = strings.TrimSpace(headerReplacer.Replace(addr)); addr != "" {
			to = append(to, addr)
		}
	}
	return to
}

// compose builds a multipart message with the outcome body and the optional log attachment.
func (m *Mailer) compose(outcome Outcome, to []string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", headerReplacer.Replace(m.cfg.From))
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", headerReplacer.Replace(outcome.Subject()))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=\"UTF-8\""},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(body, []byte(outcome.Body())); err != nil {
		return nil, err
	}

	if m.cfg.Attachment != "" {
		if data, err := os.ReadFile(m.cfg.Attachment); err == nil && len(data) > 0 {
			part, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":              {"text/plain; charset=\"UTF-8\""},
				"Content-Transfer-Encoding": {"base64"},
				"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filepath.Base(m.cfg.Attachment))},
			})
			if err != nil {
				return nil, err
			}
			if err := writeBase64(part, data); err != nil {
				return nil, err
			}
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBase64(w interface{ Write([]byte) (int, error) }, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

func (m *Mailer) send(ctx context.Context, to []string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	dialer := &net.Dialer{Timeout: 30 * time.Second}

	var conn net.Conn
	var err error
	if m.cfg.ImplicitTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: m.cfg.Host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	if !m.cfg.ImplicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return err
			}
		}
	}

	if m.cfg.Username != "" || m.cfg.Password != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return err
		}
	}

	if err := c.Mail(headerReplacer.Replace(m.cfg.From)); err != nil {
		return err
	}
	for _, addr := range to {
		if err := c.Rcpt(addr); err != nil {
			return err
		}
	}

	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}
