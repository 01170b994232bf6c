package email

import (
	"log/slog"
)

// LogProvider пишет письма в лог вместо отправки. Используется,
// когда SMTP выключен в конфигурации.
type LogProvider struct {
	log      *slog.Logger
	renderer TemplateRenderer
}

func NewLogProvider(log *slog.Logger, renderer TemplateRenderer) *LogProvider {
	return &LogProvider{log: log, renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	p.log.Info("email suppressed (smtp disabled)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer != nil {
		// Ошибки шаблонов видны и без SMTP
		if _, err := p.renderer.Render(templateName, data); err != nil {
			return err
		}
	}
	return p.Send(&Email{To: to, Subject: subject})
}

func (p *LogProvider) Close() error {
	return nil
}
