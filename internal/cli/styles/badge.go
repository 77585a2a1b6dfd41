package styles

import (
	"fmt"
	"time"
)

// RevisionBadge renders a document revision badge.
func (t *Theme) RevisionBadge(revision int64) string {
	return t.Badge.Render(fmt.Sprintf("r%d", revision))
}

// TimeBadge renders a time badge relative to now.
func (t *Theme) TimeBadge(tm, now time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm, now))
}

// RelativeTime formats tm as a short age relative to now.
func RelativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
