package testutil

import (
	"sync"

	"collabhub_backend/internal/email"
)

// SentEmail - письмо, "отправленное" RecordingProvider
type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// RecordingProvider запоминает письма вместо отправки
type RecordingProvider struct {
	mu   sync.Mutex
	sent []SentEmail
	Err  error
}

func (p *RecordingProvider) Send(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.sent = append(p.sent, SentEmail{To: e.To, Subject: e.Subject})
	return nil
}

func (p *RecordingProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.sent = append(p.sent, SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (p *RecordingProvider) Close() error {
	return nil
}

// Sent возвращает копию отправленных писем
func (p *RecordingProvider) Sent() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentEmail, len(p.sent))
	copy(out, p.sent)
	return out
}

// Templates - имена шаблонов в порядке отправки
func (p *RecordingProvider) Templates() []string {
	var names []string
	for _, e := range p.Sent() {
		names = append(names, e.Template)
	}
	return names
}
