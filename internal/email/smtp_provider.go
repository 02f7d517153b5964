package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config   SMTPConfig
	renderer TemplateRenderer
	dialer   *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config SMTPConfig, renderer TemplateRenderer) *SMTPProvider {
	if config.Port == 0 {
		config.Port = 587
	}
	return &SMTPProvider{
		config:   config,
		renderer: renderer,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return errors.New("smtp host is not configured")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is not configured")
	}
	return nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return errors.New("no recipients")
	}

	m := p.buildMessage(email)

	// gomail не принимает context, поэтому проверяем отмену до отправки
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return errors.New("template renderer is not configured")
	}
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(ctx, &Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body,
	})
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}
