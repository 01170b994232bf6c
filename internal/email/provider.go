package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(email *Email) error

	// SendTemplate рендерит шаблон и отправляет его как HTML
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Close освобождает ресурсы провайдера
	Close() error
}

// TemplateRenderer рендерит шаблоны писем
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
