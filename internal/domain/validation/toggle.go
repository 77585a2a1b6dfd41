package validation

import (
	"strings"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// SanitizeToggle maps checkbox-style input to a boolean.
func SanitizeToggle(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "", "0", "false", "off", "no":
		return false, nil
	default:
		return false, violation(entity.ReasonInvalidFormat, "must be on or off")
	}
}
