package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateDeliveryFailed - письмо о том, что публикация образа не удалась
const TemplateDeliveryFailed = "delivery_failed"

const deliveryFailedHTML = `<h3>Публикация не удалась</h3>
<p>Образ <b>#{{.LookID}}</b> не был опубликован в {{.Service}}.</p>
<p>Задача: {{.TaskID}}</p>
<pre>{{.Error}}</pre>`

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	template.Must(tm.add(TemplateDeliveryFailed, deliveryFailedHTML))
	return tm
}

// Render рендерит шаблон с данными
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

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	_, err := tm.add(name, templateStr)
	return err
}

func (tm *TemplateManager) add(name, templateStr string) (*template.Template, error) {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return tpl, nil
}
