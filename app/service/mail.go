package service

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/chirper-app/chirper/config"

	"github.com/sirupsen/logrus"
)

// SMTPMailer sends account emails. When SMTP is unconfigured it degrades to
// logging the would-be message, which keeps local development working without
// a mail server.
type SMTPMailer struct {
	cfg config.SMTPConfig

	baseURL string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if !cfg.SMTP.Enabled() {
		logrus.Warn("SMTP not configured, outbound mail disabled")
	}
	return &SMTPMailer{cfg: cfg.SMTP, baseURL: cfg.BaseURL}
}

func (m *SMTPMailer) SendVerifyEmail(to, token string) {
	subject := "Verify your email"
	body := fmt.Sprintf("Click the link to verify your email: %s/verify-email?token=%s", m.baseURL, token)
	m.send(to, subject, body)
}

func (m *SMTPMailer) SendResetPassword(to, token string) {
	subject := "Reset your password"
	body := fmt.Sprintf("Click the link to reset your password: %s/reset-password?token=%s", m.baseURL, token)
	m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) {
	if !m.cfg.Enabled() {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Mail disabled, skipping send")
		return
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s", to, m.cfg.From, subject, body))
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
		return
	}
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")
}
