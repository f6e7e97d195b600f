package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// TypeRef is a parsed type reference such as "demo.Source<Int, List<T>>".
type TypeRef struct {
	Name string
	Args []string
}

// String renders the reference in canonical form.
func (r TypeRef) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}

	return r.Name + "<" + strings.Join(r.Args, ", ") + ">"
}

// ParseTypeRef splits a type reference into its base name and top-level type arguments.
// Square brackets are accepted as argument delimiters as well as angle brackets.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, errors.New("empty type reference")
	}

	open := strings.IndexAny(s, "<[")
	if open < 0 {
		return TypeRef{Name: s}, nil
	}

	closer := byte('>')
	if s[open] == '[' {
		closer = ']'
	}

	if s[len(s)-1] != closer {
		return TypeRef{}, fmt.Errorf("type reference %q: unterminated type arguments", s)
	}

	ref := TypeRef{Name: strings.TrimSpace(s[:open])}
	if ref.Name == "" {
		return TypeRef{}, fmt.Errorf("type reference %q: missing base name", s)
	}

	inner := s[open+1 : len(s)-1]
	depth := 0
	start := 0

	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
			if depth < 0 {
				return TypeRef{}, fmt.Errorf("type reference %q: unbalanced brackets", s)
			}
		case ',':
			if depth == 0 {
				ref.Args = append(ref.Args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return TypeRef{}, fmt.Errorf("type reference %q: unbalanced brackets", s)
	}

	last := strings.TrimSpace(inner[start:])
	if last == "" {
		return TypeRef{}, fmt.Errorf("type reference %q: empty type argument", s)
	}

	ref.Args = append(ref.Args, last)

	return ref, nil
}

// BaseName returns the type name without type arguments. Malformed references
// are returned trimmed but otherwise untouched.
func BaseName(s string) string {
	if ref, err := ParseTypeRef(s); err == nil {
		return ref.Name
	}

	return strings.TrimSpace(s)
}

// Substitute replaces every identifier of typ bound in bindings.
// Qualified identifiers ("demo.T", "example.com/demo.T") are never replaced.
func Substitute(typ string, bindings map[string]string) string {
	if typ == "" || len(bindings) == 0 {
		return typ
	}

	var sb strings.Builder

	sb.Grow(len(typ))

	runes := []rune(typ)
	for i := 0; i < len(runes); {
		if !isIdentRune(runes[i]) {
			sb.WriteRune(runes[i])
			i++

			continue
		}

		j := i
		for j < len(runes) && (isIdentRune(runes[j]) || runes[j] == '.' || runes[j] == '/') {
			j++
		}

		ident := string(runes[i:j])
		if repl, ok := bindings[ident]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteString(ident)
		}

		i = j
	}

	return sb.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normalizeType strips whitespace so "Map<K, V>" and "Map<K,V>" compare equal.
func normalizeType(s string) string {
	return strings.Join(strings.Fields(s), "")
}
