package chain

import "strings"

// NormalizeDecimalInput sanitizes free-form keyboard input into a decimal
// string. It is applied on every keystroke, so partial values such as "12."
// are kept as they are.
//
// Steps: trim whitespace, turn commas into dots, keep only the first dot,
// drop everything except digits and the dot, strip leading zeros, and put a
// zero in front of a leading dot. A run of zeros collapses to "0". Signs are
// removed; amounts typed into a form are never negative.
func NormalizeDecimalInput(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))
	dotSeen := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '.' || c == ',':
			if !dotSeen {
				sb.WriteByte('.')
				dotSeen = true
			}
		case c >= '0' && c <= '9':
			sb.WriteByte(c)
		}
	}
	value = sb.String()

	if len(value) > 1 {
		trimmed := strings.TrimLeft(value, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		value = trimmed
	}

	if strings.HasPrefix(value, ".") {
		value = "0" + value
	}

	return value
}
