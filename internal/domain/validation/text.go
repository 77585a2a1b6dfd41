package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// SanitizeText trims value and enforces maxLength (in characters) when positive.
// NUL bytes are rejected; everything else is left to output-context escaping.
func SanitizeText(value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)

	if !utf8.ValidString(value) || strings.ContainsRune(value, 0) {
		return "", violation(entity.ReasonInvalidFormat, "contains invalid characters")
	}
	if maxLength > 0 && utf8.RuneCountInString(value) > maxLength {
		return "", violation(entity.ReasonOutOfRange, fmt.Sprintf("must be at most %d characters", maxLength))
	}

	return value, nil
}
