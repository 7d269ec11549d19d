package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config for the SMTP sender.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// Configured reports whether the sender has enough config to deliver.
func (c Config) Configured() bool {
	return c.SMTPHost != "" && c.Username != "" && c.Password != ""
}

// Sender delivers transactional mail.
type Sender interface {
	SendOTP(to, name, code string) error
	SendWelcome(to, name string) error
}

// Template names an admin can override.
const (
	TemplateOTP     = "otp"
	TemplateWelcome = "welcome"
)

// TemplateSource yields an admin-edited override for a named template.
// A nil source or a missing name means the built-in template is used.
type TemplateSource interface {
	LookupTemplate(name string) (subject, body string, ok bool)
}

type SMTPSender struct {
	config    Config
	dialer    *gomail.Dialer
	templates TemplateSource
}

func NewSMTPSender(config Config, templates TemplateSource) (Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	return &SMTPSender{
		config:    config,
		dialer:    gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
		templates: templates,
	}, nil
}

func (s *SMTPSender) SendOTP(to, name, code string) error {
	subject, body := renderOTP(s.templates, name, code)
	return s.send(to, subject, body)
}

func (s *SMTPSender) SendWelcome(to, name string) error {
	subject, body := renderWelcome(s.templates, name)
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
