// Package mailer sends transactional email over SMTP with implicit TLS.
// Authentication email (the magic link itself) is the identity
// provider's job; this sender only covers the app's own messages.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
)

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port string, username string, password string, from string) *SMTPSender {
	if from == "" {
		from = username
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendWelcomeEmail greets a freshly created profile and points the user
// at the intake form.
func (sender *SMTPSender) SendWelcomeEmail(to string, name string) error {
	subject := "Welcome to Ruta Health - Your Journey Begins!"
	body := fmt.Sprintf(`<h2>Welcome aboard, %s!</h2>
<p>Your account is now active.</p>
<p>Next step: complete your comprehensive health intake form to get personalized recommendations.</p>
<p>We're excited to be part of your holistic health journey!</p>
<p>Best regards,<br>The Ruta Health Team</p>`, name)
	return sender.send(to, subject, body)
}

func (sender *SMTPSender) send(to string, subject string, htmlBody string) error {
	message := []byte(
		fmt.Sprintf("From: %s\r\n", sender.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	serverAddr := sender.host + ":" + sender.port
	tlsConfig := &tls.Config{ServerName: sender.host}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, sender.host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", sender.username, sender.password, sender.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(sender.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return nil
}

// LogSender stands in when SMTP is not configured; it records the send
// instead of delivering it.
type LogSender struct{}

func (LogSender) SendWelcomeEmail(to string, name string) error {
	log.Printf("mailer disabled, skipping welcome email to %s (%s)", to, name)
	return nil
}
