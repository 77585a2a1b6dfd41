package validation

import (
	"regexp"
	"strings"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

var cssIdentRE = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// SanitizeClassList splits value on whitespace, checks every token is a CSS
// identifier and joins them back with single spaces.
func SanitizeClassList(value string) (string, error) {
	tokens := strings.Fields(value)
	for _, tok := range tokens {
		if !cssIdentRE.MatchString(tok) {
			return "", violation(entity.ReasonInvalidFormat, "class "+quote(tok)+" is not a valid CSS class name")
		}
	}
	return strings.Join(tokens, " "), nil
}

func quote(s string) string {
	return "'" + s + "'"
}
