package classdef

import (
	"strings"
	"unicode"

	"delegen/internal/model"
)

// ParseExpression classifies delegate expression text.
// Blank text yields nil: the clause has no delegate expression.
func ParseExpression(text string) *model.Expression {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	if isIdentifier(s) {
		return model.NameExpr(s)
	}

	if rest, ok := strings.CutPrefix(s, "this."); ok && isIdentifier(rest) {
		return &model.Expression{Kind: model.ExprName, Text: s, Name: rest}
	}

	if !balanced(s) {
		return &model.Expression{Kind: model.ExprInvalid, Text: s}
	}

	return model.GeneralExpr(s)
}

func isIdentifier(s string) bool {
	if s == "" || s == "this" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// balanced reports whether brackets nest properly and quotes are closed.
func balanced(s string) bool {
	var stack []rune

	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}

	var quote rune

	escaped := false

	for _, r := range s {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}

			continue
		}

		switch r {
		case '"', '\'':
			quote = r
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}

			stack = stack[:len(stack)-1]
		}
	}

	return quote == 0 && len(stack) == 0
}
