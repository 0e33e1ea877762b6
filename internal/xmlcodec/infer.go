package xmlcodec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/dataconv/internal/models"
)

// Patterns for numeric text. They are matched against the trimmed text so
// pretty-printed values like "\n  3.5\n" still read as numbers.
var (
	decimalRegex = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+)([eE][+-]?\d+)?$`)
	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)
)

// inferText maps element text to a value:
//   - empty, whitespace-only or "null" (any case) -> Null
//   - text with a decimal point that parses as a number -> Double
//   - an integer literal -> Int or Long by range
//   - anything else, including integers past 64 bits -> String, untrimmed
//
// Surrounding whitespace is ignored for the numeric forms only.
func inferText(text string) models.Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return models.NullValue
	}

	if strings.Contains(trimmed, ".") {
		if decimalRegex.MatchString(trimmed) {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return models.Double(f)
			}
		}
		return models.String(text)
	}

	if integerRegex.MatchString(trimmed) {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return models.Integer(n)
		}
	}

	return models.String(text)
}
