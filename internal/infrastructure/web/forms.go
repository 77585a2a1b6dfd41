package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Form keys that are never field values.
const (
	formKeyTab     = "tab"
	formKeyToken   = "csrf_token"
	formKeyVersion = "version"
)

// fieldValues extracts field inputs from a submitted form, keyed by field
// path. Both "section.key" and the host style "prefix[section][key]" are
// accepted; when both name the same field the host style wins. When a name
// repeats, the last value wins, which lets a hidden "0" precede a checkbox of
// the same name.
func fieldValues(form url.Values, prefix string) map[string]string {
	out := make(map[string]string, len(form))
	hostStyle := make(map[string]bool)
	for name, values := range form {
		if len(values) == 0 || name == formKeyTab || name == formKeyToken || name == formKeyVersion {
			continue
		}
		path, ok := fieldPath(name, prefix)
		if !ok {
			continue
		}
		prefixed := prefix != "" && strings.HasPrefix(name, prefix+"[")
		if hostStyle[path] && !prefixed {
			continue
		}
		out[path] = values[len(values)-1]
		if prefixed {
			hostStyle[path] = true
		}
	}
	return out
}

// expectedVersion parses the optional version the form was rendered at.
func expectedVersion(form url.Values) (*int64, error) {
	raw := strings.TrimSpace(form.Get(formKeyVersion))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid form version %q", raw)
	}
	return &v, nil
}

// fieldPath maps a form name to "section.key".
func fieldPath(name, prefix string) (string, bool) {
	if prefix != "" && strings.HasPrefix(name, prefix+"[") {
		rest := strings.TrimPrefix(name, prefix)
		section, rest, ok := cutBracket(rest)
		if !ok {
			return "", false
		}
		key, rest, ok := cutBracket(rest)
		if !ok || rest != "" {
			return "", false
		}
		return section + "." + key, true
	}

	if strings.ContainsAny(name, "[]") {
		return "", false
	}
	section, key, ok := strings.Cut(name, ".")
	if !ok || section == "" || key == "" || strings.Contains(key, ".") {
		return "", false
	}
	return name, true
}

// cutBracket splits "[a]rest" into "a" and "rest".
func cutBracket(s string) (inner, rest string, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end <= 1 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

// formName is the inverse of fieldPath for the host style.
func formName(prefix, section, key string) string {
	if prefix == "" {
		return section + "." + key
	}
	return prefix + "[" + section + "][" + key + "]"
}
