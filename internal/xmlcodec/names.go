package xmlcodec

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// XML 1.0 names restricted to what field names realistically contain.
var elementNameRegex = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}._-]*$`)

func isElementName(name string) bool {
	return elementNameRegex.MatchString(name)
}

// sanitizeName turns an arbitrary field name into an element name.
// "First Name" becomes "first_name"; characters that survive snake-casing
// but are still not allowed become '_'.
func sanitizeName(name string) string {
	snake := strcase.ToSnake(strings.TrimSpace(name))

	var sb strings.Builder
	for _, r := range snake {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}

	out := sb.String()
	if out == "" {
		return "_"
	}
	if first := []rune(out)[0]; !unicode.IsLetter(first) && first != '_' {
		out = "_" + out
	}
	return out
}
