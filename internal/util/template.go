package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// ExpandPath replaces every {name} placeholder in tmpl with the path escaped
// value from values. A placeholder without a value is an error.
func ExpandPath(tmpl string, values map[string]string) (string, error) {
	if !strings.Contains(tmpl, "{") { // fast path: no placeholders
		return tmpl, nil
	}

	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok || v == "" {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("path %s: no value for %s", tmpl, strings.Join(missing, ", "))
	}
	return out, nil
}
