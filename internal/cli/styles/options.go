package styles

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/infrastructure/persistence/sqlite"
)

// OptionsRenderer renders stored options, import reports and history.
type OptionsRenderer struct {
	theme *Theme
}

// NewOptionsRenderer creates a new OptionsRenderer.
func NewOptionsRenderer(theme *Theme) *OptionsRenderer {
	return &OptionsRenderer{theme: theme}
}

// RenderOptions renders the effective values grouped by tab. Values coming
// from field defaults are dimmed.
func (r *OptionsRenderer) RenderOptions(namespace string, out *usecase.ShowOptionsOutput) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s %s\n",
		iconStyle.Render(IconDatabase),
		r.theme.Title.Render(namespace),
		r.theme.RevisionBadge(out.Version),
	))

	if len(out.Options) == 0 {
		sb.WriteString("\n  " + r.theme.Subtle.Render("No stored options") + "\n")
		return sb.String()
	}

	var current entity.Tab
	for _, opt := range out.Options {
		if opt.Tab != current {
			current = opt.Tab
			sb.WriteString("\n  " + r.theme.Highlight.Render(string(current)) + "\n")
		}
		sb.WriteString(fmt.Sprintf("    %s %s = %s\n",
			iconStyle.Render(IconCursor),
			r.theme.Normal.Bold(true).Render(opt.Path),
			r.renderValue(opt),
		))
	}
	return sb.String()
}

func (r *OptionsRenderer) renderValue(opt usecase.ResolvedOption) string {
	text := fmt.Sprintf("%q", opt.Value.String())
	if opt.Value.Type() != entity.ValueString {
		text = opt.Value.String()
	}
	if !opt.Stored {
		return r.theme.Subtle.Render(text + " (default)")
	}
	return r.theme.Normal.Render(text)
}

// RenderImport renders the outcome of a legacy import.
func (r *OptionsRenderer) RenderImport(out *usecase.ImportLegacyOptionsOutput, dryRun bool) string {
	okStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	errStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	warnStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)

	var sb strings.Builder
	sb.WriteString("\n")
	for _, tab := range out.Imported {
		sb.WriteString(fmt.Sprintf("  %s %s\n", okStyle.Render(IconCheck), r.theme.Normal.Render(string(tab))))
	}

	rejected := make([]string, 0, len(out.Rejected))
	for tab := range out.Rejected {
		rejected = append(rejected, string(tab))
	}
	sort.Strings(rejected)
	for _, tab := range rejected {
		sb.WriteString(fmt.Sprintf("  %s %s\n", errStyle.Render(IconX), r.theme.Normal.Render(tab)))
		for _, fe := range out.Rejected[entity.Tab(tab)] {
			sb.WriteString("      " + r.theme.ErrorStyle.Render(fe.Error()) + "\n")
		}
	}

	for _, path := range out.Skipped {
		sb.WriteString(fmt.Sprintf("  %s skipped %s\n", warnStyle.Render(IconWarning), r.theme.Subtle.Render(path)))
	}

	var summary string
	switch {
	case dryRun:
		summary = "Dry run, nothing written"
	case out.Changed:
		summary = fmt.Sprintf("Saved version %d", out.Version)
	default:
		summary = "No changes"
	}
	sb.WriteString("\n  " + r.theme.Subtle.Render(summary) + "\n")
	return sb.String()
}

// RenderHistory renders past revisions, newest first.
func (r *OptionsRenderer) RenderHistory(namespace string, entries []sqlite.HistoryEntry, now time.Time) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s\n", iconStyle.Render(IconClock), r.theme.Title.Render(namespace+" history")))
	if len(entries) == 0 {
		sb.WriteString("\n  " + r.theme.Subtle.Render("No revisions recorded") + "\n")
		return sb.String()
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("    %s %s %s  %s\n",
			r.theme.RevisionBadge(e.Revision),
			r.theme.Normal.Render(e.WrittenAt.Local().Format(time.DateTime)),
			r.theme.TimeBadge(e.WrittenAt, now),
			r.theme.Subtle.Render(fmt.Sprintf("%d bytes", len(e.Data))),
		))
	}
	return sb.String()
}

// RenderError renders an error message.
func (r *OptionsRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s %v\n", iconStyle.Render(IconX), err)
}
