package util

import (
	"strings"
	"unicode"
)

// KebabCase converts a parameter name such as "AIAgentConfiguration" or
// "Message_Value_Text_Value" into a flag name ("ai-agent-configuration",
// "message-value-text-value"). Acronyms stay together.
func KebabCase(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		runes := []rune(part)
		for i, r := range runes {
			if i > 0 && unicode.IsUpper(r) {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
