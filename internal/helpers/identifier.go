package helpers

import "strings"

func isIdentifierStart(c rune) bool {
	switch c {
	case '_', '$':
		return true
	}
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierContinue(c rune) bool {
	return isIdentifierStart(c) || (c >= '0' && c <= '9')
}

// ToIdentifier turns an arbitrary module id into a bare JavaScript
// identifier so it can be embedded in a generated variable name. Every
// disallowed character becomes "_", including a leading digit. An empty id
// stays empty: a missing id is the caller's ordering problem and must not
// turn into a spurious "_".
func ToIdentifier(id string) string {
	if id == "" {
		return ""
	}

	valid := true
	for i, c := range id {
		if i == 0 {
			if !isIdentifierStart(c) {
				valid = false
				break
			}
		} else if !isIdentifierContinue(c) {
			valid = false
			break
		}
	}
	if valid {
		return id
	}

	sb := strings.Builder{}
	for i, c := range id {
		if i == 0 {
			if isIdentifierStart(c) {
				sb.WriteRune(c)
			} else {
				sb.WriteByte('_')
			}
		} else if isIdentifierContinue(c) {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
