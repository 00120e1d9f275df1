package email

import "sync"

// MockProvider keeps messages in memory. It is used in tests and whenever
// SMTP is not configured.
type MockProvider struct {
	mu       sync.Mutex
	renderer TemplateRenderer
	sent     []Email
}

// NewMockProvider keeps every message in memory. Used when SMTP is not
// configured and in tests.
func NewMockProvider(renderer TemplateRenderer) *MockProvider {
	return &MockProvider{renderer: renderer}
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *email)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	body := ""
	if m.renderer != nil {
		rendered, err := m.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		body = rendered
	}
	return m.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (m *MockProvider) Close() error { return nil }

// Sent returns a copy of every message sent so far.
func (m *MockProvider) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}
