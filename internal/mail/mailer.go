package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/dmartinezh/poketeams/config"
)

// Mailer sends transactional email. When no SMTP host is configured the
// mailer is a no-op, so local environments work without a mail server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a mailer from the SMTP configuration.
func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{from: cfg.SMTP.From}
	if cfg.SMTP.Host != "" {
		m.dialer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	}
	return m
}

// SendWelcomeEmail sends the registration welcome mail. Failures are
// logged only; registration never depends on delivery.
func (m *Mailer) SendWelcomeEmail(to, userName string) {
	if m.dialer == nil {
		log.Printf("Mail - SMTP not configured, skipping welcome email to %s", to)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to Pokémon Teams")
	msg.SetBody("text/html", welcomeTemplate(userName))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("Mail - Error sending welcome email to %s: %v", to, err)
		return
	}
	log.Printf("Mail - Welcome email sent successfully to %s", to)
}

func welcomeTemplate(userName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Welcome to Pokémon Teams</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #ffffff; border-radius: 10px; padding: 30px;">
    <h1 style="color: #ff6b6b; text-align: center;">🎉 Welcome to Pokémon Teams</h1>
    <h2>Hello %s,</h2>
    <p>We're excited to have you with us! Your account has been successfully created
    and you can now start building your Pokémon teams.</p>
    <ul>
      <li>Create and manage your favorite Pokémon teams</li>
      <li>Acquire new Pokémon for your collection</li>
      <li>Organize your Pokémon into strategic teams</li>
    </ul>
    <p>Let your adventure begin!</p>
    <p style="font-size: 12px; color: #777; text-align: center;">This is an automated email, please do not reply.</p>
  </div>
</body>
</html>`, userName)
}
