package mailer

import (
	"fmt"

	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers the welcome email after a successful promotion. Sends are
// best effort; the registration does not fail on delivery errors.
type Sender interface {
	SendWelcome(to, username string) error
}

type smtpSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		config: config,
		log:    log,
	}
}

func (s *smtpSender) SendWelcome(to, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome aboard")
	m.SetBody("text/html", welcomeBody(username))

	d := gomail.NewDialer(
		s.config.Host,
		s.config.Port,
		s.config.User,
		s.config.Password,
	)

	if err := d.DialAndSend(m); err != nil {
		s.log.Error("Failed to send welcome email",
			zap.Error(err),
			zap.String("to", to),
		)
		return fmt.Errorf("send welcome email to %s: %w", to, err)
	}

	s.log.Info("Welcome email sent", zap.String("to", to))
	return nil
}

func welcomeBody(username string) string {
	return fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>Your facial verification succeeded and your customer account is ready. "+
			"It will stay in pending status until final review.</p>"+
			"<p>You can sign in with your existing credentials.</p>",
		username,
	)
}
