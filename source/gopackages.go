package source

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"github.com/erraggy/oasmodels/modelerrors"
	"golang.org/x/tools/go/packages"
)

// LoadGoPackages loads the Go packages matching patterns, relative to dir,
// and converts their exported struct types into declarations.
func LoadGoPackages(dir string, patterns ...string) ([]Declaration, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedName,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, &modelerrors.ParseError{Path: dir, Message: "loading Go packages", Cause: err}
	}
	if len(pkgs) == 0 {
		return nil, &modelerrors.ParseError{Path: dir, Message: fmt.Sprintf("no Go packages match %s", strings.Join(patterns, " "))}
	}

	var decls []Declaration
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		if pkg.Types == nil {
			continue
		}
		decls = append(decls, DeclarationsFromPackage(pkg.Types)...)
	}
	if len(errs) > 0 {
		return nil, &modelerrors.ParseError{Path: dir, Message: "Go package errors", Cause: errors.Join(errs...)}
	}
	return decls, nil
}

// DeclarationsFromPackage converts the exported struct types of pkg into
// declarations, in scope order. Struct fields map to properties named after
// their json tag; embedded structs contribute their fields and become the
// base type.
func DeclarationsFromPackage(pkg *types.Package) []Declaration {
	scope := pkg.Scope()
	var decls []Declaration
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}
		d := Declaration{Package: pkg.Name(), Name: name}
		if tps := named.TypeParams(); tps != nil {
			for i := range tps.Len() {
				d.Params = append(d.Params, tps.At(i).Obj().Name())
			}
		}
		d.Base, d.Properties = structProperties(st, pkg)
		decls = append(decls, d)
	}
	return decls
}

func structProperties(st *types.Struct, pkg *types.Package) (string, []PropertyDecl) {
	var base string
	var props []PropertyDecl
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() {
			if inner, ok := derefNamedStruct(f.Type()); ok {
				if base == "" {
					base = goTypeExpr(f.Type(), pkg)
				}
				_, embedded := structProperties(inner, pkg)
				props = append(props, embedded...)
				continue
			}
		}
		if !f.Exported() {
			continue
		}
		name, omitEmpty, skip := jsonName(f.Name(), st.Tag(i))
		if skip {
			continue
		}
		_, isPointer := f.Type().(*types.Pointer)
		props = append(props, PropertyDecl{
			Name:     name,
			Type:     goTypeExpr(f.Type(), pkg),
			Required: !omitEmpty && !isPointer,
		})
	}
	return base, props
}

func derefNamedStruct(t types.Type) (*types.Struct, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if _, ok := t.(*types.Named); !ok {
		return nil, false
	}
	st, ok := t.Underlying().(*types.Struct)
	return st, ok
}

func jsonName(field, tag string) (name string, omitEmpty, skip bool) {
	jsonTag := reflect.StructTag(tag).Get("json")
	if jsonTag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(jsonTag, ",")
	if name == "" {
		name = field
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// goTypeExpr renders a Go type as a type expression.
func goTypeExpr(t types.Type, pkg *types.Package) string {
	switch tt := t.(type) {
	case *types.Pointer:
		return goTypeExpr(tt.Elem(), pkg)
	case *types.Basic:
		return basicTypeExpr(tt)
	case *types.Slice:
		if isByte(tt.Elem()) {
			return "binary"
		}
		return "List<" + goTypeExpr(tt.Elem(), pkg) + ">"
	case *types.Array:
		if isByte(tt.Elem()) {
			return "binary"
		}
		return "List<" + goTypeExpr(tt.Elem(), pkg) + ">"
	case *types.Map:
		return "Map<string," + goTypeExpr(tt.Elem(), pkg) + ">"
	case *types.TypeParam:
		return tt.Obj().Name()
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == "time" {
			switch obj.Name() {
			case "Time":
				return "date-time"
			case "Duration":
				return "duration"
			}
		}
		if _, ok := tt.Underlying().(*types.Struct); !ok {
			// Named scalars, slices and maps document as their underlying type.
			return goTypeExpr(tt.Underlying(), pkg)
		}
		if obj.Pkg() == nil {
			return "object"
		}
		expr := obj.Pkg().Name() + "." + obj.Name()
		if args := tt.TypeArgs(); args != nil && args.Len() > 0 {
			parts := make([]string, args.Len())
			for i := range args.Len() {
				parts[i] = goTypeExpr(args.At(i), pkg)
			}
			expr += "<" + strings.Join(parts, ",") + ">"
		}
		return expr
	case *types.Alias:
		return goTypeExpr(types.Unalias(tt), pkg)
	default:
		return "object"
	}
}

func basicTypeExpr(b *types.Basic) string {
	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		return "boolean"
	case types.String, types.UntypedString:
		return "string"
	case types.Int64, types.Uint64:
		return "int64"
	case types.Int, types.Int8, types.Int16, types.Int32, types.Uint, types.Uint8, types.Uint16, types.Uint32, types.UntypedInt:
		return "int"
	case types.Float32:
		return "float"
	case types.Float64, types.UntypedFloat:
		return "double"
	default:
		return "any"
	}
}

func isByte(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && (b.Kind() == types.Byte)
}
