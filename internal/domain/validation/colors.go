package validation

import (
	"regexp"
	"strings"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

var hexColorRE = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether value is a six-digit hex color, with or without
// the leading '#'.
func IsHexColor(value string) bool {
	return hexColorRE.MatchString(value)
}

// SanitizeColor accepts "" (unset) or a hex color. A missing '#' is added so
// stored values can be interpolated into CSS as-is.
func SanitizeColor(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !IsHexColor(value) {
		return "", violation(entity.ReasonInvalidFormat, "must be a hex color like #RRGGBB")
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	return value, nil
}
