package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPNotifier sends notifications as plain-text email over
// implicit-TLS SMTP (port 465 style).
type SMTPNotifier struct {
	host     string
	port     int
	from     string
	to       string
	password string
	timeout  time.Duration
}

// NewSMTPNotifier creates an email notifier. The password should be an
// app password, not the account password.
func NewSMTPNotifier(host string, port int, from, to, password string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		from:     from,
		to:       to,
		password: password,
		timeout:  15 * time.Second,
	}
}

func (s *SMTPNotifier) Name() string { return "email" }

func (s *SMTPNotifier) Send(ctx context.Context, n Notification) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	dialer := &net.Dialer{Timeout: s.timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	// The smtp client has no context support; honor cancellation by
	// closing the connection when ctx expires mid-send.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(s.to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := buildMessage(s.from, s.to, n)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to string, n Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", n.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(n.Body, "\n", "\r\n"))
	return b.String()
}
