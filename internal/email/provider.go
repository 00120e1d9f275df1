package email

// Provider sends notification mail.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends it as HTML.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	Close() error
}

// TemplateRenderer turns a named template into an HTML body.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
