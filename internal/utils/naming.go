package utils

import (
	"strings"
	"unicode"
)

// SnakeCase converts a Go field name such as "StudentID" to "student_id".
// Runs of capitals are kept together.
func SnakeCase(name string) string {
	var builder strings.Builder
	var prev rune
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && unicode.IsLower(prev) {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
		} else {
			builder.WriteRune(r)
		}
		prev = r
	}
	return builder.String()
}
