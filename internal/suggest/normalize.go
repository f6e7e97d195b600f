package suggest

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier for fuzzy comparison: camel-case humps and
// separators ('_', '-', ' ', '$') are dropped and everything is lower-cased.
// "HTTPServer", "http_server" and "httpServer" all normalize to "httpserver".
func Normalize(s string) string {
	return strings.Join(Tokens(s), "")
}

// Tokens splits an identifier into lower-case words.
//   - "OrderID" -> ["order", "id"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "read_all" -> ["read", "all"]
func Tokens(s string) []string {
	runes := []rune(s)

	var (
		tokens []string
		cur    []rune
	)

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		cur = append(cur, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '$'
}

// startsWord reports whether runes[i] begins a new camel-case word.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// Last capital of an acronym followed by lower case: "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
