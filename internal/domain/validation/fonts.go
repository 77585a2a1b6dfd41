package validation

import (
	"regexp"
	"strings"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

const maxFontNameLength = 200

// Letters, digits, spaces, hyphens and commas only: the value ends up inside
// a font-family declaration.
var fontNameRE = regexp.MustCompile(`^[A-Za-z0-9 ,\-]*$`)

// SanitizeFontName trims value and checks it against the safe font charset.
// An empty value keeps the theme's font-family.
func SanitizeFontName(value string) (string, error) {
	value = strings.TrimSpace(value)

	if len(value) > maxFontNameLength {
		return "", violation(entity.ReasonOutOfRange, "is too long")
	}
	if !fontNameRE.MatchString(value) {
		return "", violation(entity.ReasonInvalidFormat, "may only contain letters, digits, spaces, hyphens and commas")
	}

	return value, nil
}
