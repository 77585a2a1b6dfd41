package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/domain/entity"
)

const fieldTemplates = `
{{define "text"}}<input type="text" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{if .MaxLength}} maxlength="{{.MaxLength}}"{{end}}>{{end}}
{{define "color"}}<input type="text" class="color-picker" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}" pattern="#?[0-9A-Fa-f]{6}">{{end}}
{{define "slider"}}<input type="range" id="{{.ID}}" name="{{.Name}}" min="{{.Min}}" max="{{.Max}}" value="{{.Value}}">{{end}}
{{define "font_name"}}<input type="text" class="font-name" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}">{{end}}
{{define "class_list"}}<input type="text" class="class-list" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}">{{end}}
{{define "toggle"}}<input type="hidden" name="{{.Name}}" value="0"><input type="checkbox" id="{{.ID}}" name="{{.Name}}" value="1"{{if .Checked}} checked{{end}}>{{end}}
`

// fieldData feeds one field template.
type fieldData struct {
	ID        string
	Name      string
	Value     string
	Min       int64
	Max       int64
	MaxLength int
	Checked   bool
}

// TemplateRenderer renders form inputs with html/template. Values are already
// sanitized by the validator, so it only applies attribute escaping.
type TemplateRenderer struct {
	prefix string
	tmpl   *template.Template
}

var _ port.FieldRenderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer creates a renderer naming inputs prefix[section][key].
func NewTemplateRenderer(prefix string) *TemplateRenderer {
	return &TemplateRenderer{
		prefix: prefix,
		tmpl:   template.Must(template.New("fields").Parse(fieldTemplates)),
	}
}

func (r *TemplateRenderer) RenderField(_ context.Context, field entity.Field, value entity.Value) (string, error) {
	tmpl := r.tmpl.Lookup(string(field.Kind.Type))
	if tmpl == nil {
		return "", fmt.Errorf("no template for kind %s", field.Kind.Type)
	}

	data := fieldData{
		ID:        field.Section + "_" + field.Key,
		Name:      formName(r.prefix, field.Section, field.Key),
		Value:     value.String(),
		Min:       field.Kind.Min,
		Max:       field.Kind.Max,
		MaxLength: field.Kind.MaxLength,
		Checked:   value.Bool(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", field.Kind.Type, err)
	}
	return buf.String(), nil
}
