package classdef

import (
	"strings"

	"delegen/internal/model"
)

// ResolveType resolves a type reference like:
//   - "demo.Source" (full)
//   - "Source<Int>" (name only, type arguments ignored)
//   - "io.Sink" for "example.com/io.Sink" (suffix).
//
// Ambiguous suffix or name-only matches do not resolve.
func ResolveType(ref string, f *File) *TypeDef {
	if f == nil {
		return nil
	}

	base := model.BaseName(ref)
	if base == "" {
		return nil
	}

	for i := range f.Types {
		if f.Types[i].Name == base {
			return &f.Types[i]
		}
	}

	var found *TypeDef

	for i := range f.Types {
		name := f.Types[i].Name
		if !strings.HasSuffix(name, "."+base) && !strings.HasSuffix(name, "/"+base) {
			continue
		}

		if found != nil {
			return nil
		}

		found = &f.Types[i]
	}

	return found
}
