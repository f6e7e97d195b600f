package plan

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"delegen/internal/common"
)

// NamingScheme selects how fresh delegate fields are named.
type NamingScheme int

const (
	// NamingStable hashes the class and target names, so a field keeps its
	// name when delegations are added or reordered.
	NamingStable NamingScheme = iota
	// NamingIndexed numbers fields by specifier position.
	NamingIndexed
)

func (s NamingScheme) String() string {
	switch s {
	case NamingStable:
		return "stable"
	case NamingIndexed:
		return "indexed"
	default:
		return common.UnknownStr
	}
}

// ParseNamingScheme parses "stable" or "indexed".
func ParseNamingScheme(s string) (NamingScheme, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stable":
		return NamingStable, true
	case "indexed":
		return NamingIndexed, true
	default:
		return NamingStable, false
	}
}

// FieldNamer proposes names for fresh delegate fields. The planner calls it
// once per specifier that needs a fresh field and never asks again within a
// Plan call. Namers shared through PlanAll must be safe for concurrent use.
//
// Plans are deterministic only when the namer is a pure function of its
// arguments: a namer that keeps state makes repeated Plan calls on the same
// class produce different field names.
type FieldNamer interface {
	FieldName(class, target string, index int) string
}

// FieldNamerFunc adapts a function to FieldNamer.
type FieldNamerFunc func(class, target string, index int) string

func (f FieldNamerFunc) FieldName(class, target string, index int) string {
	return f(class, target, index)
}

// StableNamer names fields prefix_<base36 hash>$ from the class and target names.
type StableNamer struct {
	Prefix string
}

func (n StableNamer) FieldName(class, target string, _ int) string {
	return MangledName(n.Prefix, class, target)
}

// IndexedNamer names fields $prefix_<index>.
type IndexedNamer struct {
	Prefix string
}

func (n IndexedNamer) FieldName(_, _ string, index int) string {
	return "$" + n.Prefix + "_" + strconv.Itoa(index)
}

// NewFieldNamer returns the namer for scheme.
func NewFieldNamer(scheme NamingScheme, prefix string) FieldNamer {
	if scheme == NamingIndexed {
		return IndexedNamer{Prefix: prefix}
	}

	return StableNamer{Prefix: prefix}
}

// MangledName derives a field name from the class and target names.
// A zero hash yields the bare prefix.
func MangledName(prefix, class, target string) string {
	h := int64(stringHash(class + ":" + target))
	if h < 0 {
		h = -h
	}

	if h == 0 {
		return prefix
	}

	return prefix + "_" + strconv.FormatInt(h, 36) + "$"
}

// stringHash is the 31-multiplier polynomial hash over UTF-16 code units,
// with 32-bit wraparound.
func stringHash(s string) int32 {
	var h int32

	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}

	return h
}

// uniqueName appends _index to name until it is not taken.
func uniqueName(name string, index int, taken map[string]bool) string {
	suffix := "_" + strconv.Itoa(index)

	for taken[name] {
		name += suffix
	}

	return name
}
