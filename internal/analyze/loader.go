package analyze

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"

	"delegen/internal/classdef"
)

var log = commonlog.GetLogger("delegen.analyze")

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects class definitions.
type Analyzer struct {
	file *classdef.File
	// defined holds the qualified names of interfaces already in file.
	defined map[string]bool
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		file:    &classdef.File{},
		defined: make(map[string]bool),
	}
}

// LoadPackages loads the given package patterns and returns the accumulated
// class definitions, defaults applied.
func (a *Analyzer) LoadPackages(patterns ...string) (*classdef.File, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: LoadMode}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	slices.SortFunc(pkgs, func(x, y *packages.Package) int {
		return strings.Compare(x.PkgPath, y.PkgPath)
	})

	for _, pkg := range pkgs {
		a.processPackage(pkg.Types)
	}

	classdef.ApplyDefaults(a.file)

	log.Infof("analyzed %d packages: %d types, %d classes", len(pkgs), len(a.file.Types), len(a.file.Classes))

	return a.file, nil
}

// File returns the definitions collected so far.
func (a *Analyzer) File() *classdef.File {
	return a.file
}

func (a *Analyzer) processPackage(pkg *types.Package) {
	scope := pkg.Scope()

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		switch ut := named.Underlying().(type) {
		case *types.Interface:
			if ut.IsMethodSet() {
				a.defineInterface(named)
			}
		case *types.Struct:
			a.defineClass(named, ut)
		}
	}
}

// defineInterface adds the type definition of named and of every interface
// it embeds, once each.
func (a *Analyzer) defineInterface(named *types.Named) {
	named = named.Origin()

	name := qualifiedName(named.Obj())
	if a.defined[name] {
		return
	}

	a.defined[name] = true

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return
	}

	td := classdef.TypeDef{Name: name, Kind: "interface"}

	for i := range named.TypeParams().Len() {
		td.TypeParams = append(td.TypeParams, named.TypeParams().At(i).Obj().Name())
	}

	for i := range iface.NumEmbeddeds() {
		emb, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named)
		if !ok {
			continue
		}

		if _, isIface := emb.Underlying().(*types.Interface); !isIface {
			continue
		}

		a.defineInterface(emb)
		td.Extends = append(td.Extends, typeRef(emb))
	}

	for i := range iface.NumExplicitMethods() {
		td.Members = append(td.Members, methodDef(iface.ExplicitMethod(i)))
	}

	log.Debugf("interface %s: %d methods", name, len(td.Members))

	a.file.Types = append(a.file.Types, td)
}

// defineClass adds named as a class if it embeds at least one interface.
func (a *Analyzer) defineClass(named *types.Named, st *types.Struct) {
	cd := classdef.ClassDef{Name: qualifiedName(named.Obj())}

	for i := range st.NumFields() {
		field := st.Field(i)

		if emb := embeddedInterface(field); emb != nil {
			a.defineInterface(emb)

			ref := typeRef(emb)
			by := field.Name()

			cd.Supertypes = append(cd.Supertypes, ref)
			cd.Properties = append(cd.Properties, classdef.PropertyDef{Name: field.Name(), Type: ref})
			cd.Delegations = append(cd.Delegations, classdef.DelegationDef{Target: ref, By: &by})

			continue
		}

		cd.Properties = append(cd.Properties, classdef.PropertyDef{
			Name:    field.Name(),
			Type:    typeString(field.Type()),
			Mutable: true,
		})
	}

	if len(cd.Delegations) == 0 {
		return
	}

	for i := range named.NumMethods() {
		cd.Members = append(cd.Members, methodDef(named.Method(i)))
	}

	log.Debugf("class %s: %d delegations", cd.Name, len(cd.Delegations))

	a.file.Classes = append(a.file.Classes, cd)
}

// embeddedInterface returns the named interface an embedded field holds, or nil.
func embeddedInterface(field *types.Var) *types.Named {
	if !field.Embedded() {
		return nil
	}

	named, ok := types.Unalias(field.Type()).(*types.Named)
	if !ok {
		return nil
	}

	if _, ok := named.Underlying().(*types.Interface); !ok {
		return nil
	}

	return named
}

// methodDef converts fn into a function member. Blank parameters get the
// first free name of the form p<i>.
func methodDef(fn *types.Func) classdef.MemberDef {
	sig := fn.Type().(*types.Signature)

	md := classdef.MemberDef{
		Name:       fn.Name(),
		Kind:       "function",
		Returns:    resultString(sig.Results()),
		Visibility: "public",
	}

	if !fn.Exported() {
		md.Visibility = "internal"
	}

	params := sig.Params()

	used := make(map[string]bool, params.Len())
	for i := range params.Len() {
		used[params.At(i).Name()] = true
	}

	for i := range params.Len() {
		p := params.At(i)

		typ := typeString(p.Type())
		if sig.Variadic() && i == params.Len()-1 {
			if s, ok := p.Type().(*types.Slice); ok {
				typ = "..." + typeString(s.Elem())
			}
		}

		name := p.Name()
		if name == "" || name == "_" {
			n := i
			for used[fmt.Sprintf("p%d", n)] {
				n++
			}

			name = fmt.Sprintf("p%d", n)
			used[name] = true
		}

		md.Params = append(md.Params, classdef.ParamDef{Name: name, Type: typ})
	}

	return md
}

func resultString(results *types.Tuple) string {
	switch results.Len() {
	case 0:
		return ""
	case 1:
		return typeString(results.At(0).Type())
	}

	parts := make([]string, results.Len())
	for i := range results.Len() {
		parts[i] = typeString(results.At(i).Type())
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// typeRef renders a supertype reference: the qualified name plus type
// arguments in angle brackets.
func typeRef(named *types.Named) string {
	name := qualifiedName(named.Obj())

	args := named.TypeArgs()
	if args.Len() == 0 {
		return name
	}

	parts := make([]string, args.Len())
	for i := range args.Len() {
		parts[i] = typeString(args.At(i))
	}

	return name + "<" + strings.Join(parts, ", ") + ">"
}

// qualifiedName is "pkgpath.Name", or just the name for universe types.
func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return obj.Pkg().Path() + "." + obj.Name()
}

// typeString spells t the same way wherever it appears: every named type is
// qualified by its full package path, so members declared in different
// packages compare equal when their types are identical.
func typeString(t types.Type) string {
	return types.TypeString(t, pathQualifier)
}

func pathQualifier(pkg *types.Package) string {
	return pkg.Path()
}
