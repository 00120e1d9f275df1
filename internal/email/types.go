package email

// Email is one outgoing message. Body is HTML.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is passed to html/template when rendering a message.
type TemplateData map[string]interface{}
