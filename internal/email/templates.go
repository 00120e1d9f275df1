package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateApplicationAccepted = "application_accepted"
	TemplateApplicationRejected = "application_rejected"
)

var builtinTemplates = map[string]string{
	TemplateApplicationAccepted: `<p>Hi {{.Name}},</p>
<p>Your application to become a FitForge trainer has been accepted. You can now publish slots from your dashboard.</p>
{{if .Feedback}}<p>Note from our team: {{.Feedback}}</p>{{end}}`,
	TemplateApplicationRejected: `<p>Hi {{.Name}},</p>
<p>Your trainer application was {{.Status}}.</p>
{{if .Feedback}}<p>Feedback from our team: {{.Feedback}}</p>{{end}}
<p>You are welcome to apply again.</p>`,
}

// TemplateManager is a concurrency-safe set of named html templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplates returns a manager holding the application notification templates.
func NewDefaultTemplates() *TemplateManager {
	tm := NewTemplateManager()
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render executes a registered template. Unknown names are an error.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
