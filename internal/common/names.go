package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// SimpleName returns the last segment of a qualified name.
// Both "demo.Source" and "example.com/demo.Source" yield "Source".
func SimpleName(qualified string) string {
	if i := strings.LastIndexAny(qualified, "./"); i >= 0 {
		return qualified[i+1:]
	}

	return qualified
}

// UpperFirst returns s with its first rune upper-cased.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// FileStem converts a qualified name into a lower-case identifier usable in file names.
func FileStem(qualified string) string {
	var sb strings.Builder

	sb.Grow(len(qualified))

	for _, r := range qualified {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteByte('_')
		}
	}

	return strings.Trim(sb.String(), "_")
}
