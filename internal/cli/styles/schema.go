package styles

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// SchemaRenderer renders the settings field catalog.
type SchemaRenderer struct {
	theme *Theme
}

// NewSchemaRenderer creates a new SchemaRenderer.
func NewSchemaRenderer(theme *Theme) *SchemaRenderer {
	return &SchemaRenderer{theme: theme}
}

// Render renders one box per tab, fields in registration order.
func (r *SchemaRenderer) Render(fields []usecase.FieldInfo) string {
	if len(fields) == 0 {
		return r.theme.Subtle.Render("No settings fields found")
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	parts := []string{
		fmt.Sprintf("%s %s", iconStyle.Render(IconTab), r.theme.Title.Render("Settings Schema Reference")),
		"",
	}

	for _, group := range groupByTab(fields) {
		parts = append(parts, r.renderTab(group.tab, group.fields), "")
	}

	return strings.Join(parts, "\n")
}

// RenderJSON renders the schema output as indented JSON.
func (*SchemaRenderer) RenderJSON(out *usecase.GetSettingsSchemaOutput) (string, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}

type tabGroup struct {
	tab    entity.Tab
	fields []usecase.FieldInfo
}

// groupByTab keeps the first-seen order of tabs.
func groupByTab(fields []usecase.FieldInfo) []tabGroup {
	var groups []tabGroup
	for _, f := range fields {
		if n := len(groups); n > 0 && groups[n-1].tab == f.Tab {
			groups[n-1].fields = append(groups[n-1].fields, f)
			continue
		}
		groups = append(groups, tabGroup{tab: f.Tab, fields: []usecase.FieldInfo{f}})
	}
	return groups
}

func (r *SchemaRenderer) renderTab(tab entity.Tab, fields []usecase.FieldInfo) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, r.renderField(f))
	}

	header := r.theme.Highlight.Render(string(tab))
	return r.theme.Box.PaddingTop(0).Render(header + "\n" + strings.Join(lines, "\n"))
}

func (r *SchemaRenderer) renderField(f usecase.FieldInfo) string {
	keyStyle := r.theme.Normal.Bold(true)
	defaultStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	line := fmt.Sprintf("%s  %s", keyStyle.Render(f.Path), r.theme.Subtle.Render(f.Kind))
	switch {
	case f.Required:
		line += "  " + r.theme.WarningStyle.Render("required")
	case f.Default != nil && fmt.Sprint(f.Default) != "":
		line += "  " + defaultStyle.Render(fmt.Sprint(f.Default))
	}

	switch {
	case f.Min != nil && f.Max != nil:
		line += "\n  " + r.theme.Normal.Render(fmt.Sprintf("Range: %d-%d", *f.Min, *f.Max))
	case f.MaxLength > 0:
		line += "\n  " + r.theme.Normal.Render(fmt.Sprintf("Max length: %d", f.MaxLength))
	}
	if len(f.Positions) > 0 {
		line += "\n  " + r.theme.Normal.Render("Positions: "+usecase.DescribePositions(f.Positions))
	}
	return line
}
