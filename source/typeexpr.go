package source

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
)

// primitives are rendered as plain references and never become models.
var primitives = map[string]bool{
	"string": true, "int": true, "int32": true, "int64": true, "integer": true,
	"long": true, "short": true, "byte": true, "float": true, "float32": true,
	"float64": true, "double": true, "number": true, "bool": true, "boolean": true,
	"date": true, "date-time": true, "datetime": true, "time": true, "duration": true,
	"binary": true, "uuid": true, "uri": true, "object": true, "any": true, "void": true,
	"bigdecimal": true, "biginteger": true, "char": true, "uint": true, "uint32": true,
	"uint64": true,
}

// IsPrimitive reports whether t is a built-in scalar type.
func IsPrimitive(t model.ResolvedType) bool {
	return t.Package == "" && !t.IsGeneric() && primitives[strings.ToLower(t.Name)]
}

// containerKind returns the container kind of t, or "" when t is not a
// collection type.
func containerKind(t model.ResolvedType) string {
	if t.Package != "" || !t.IsGeneric() {
		return ""
	}
	switch t.Name {
	case "List", "Array", "Collection", "Iterable":
		return model.ContainerList
	case "Set":
		return model.ContainerSet
	case "Map":
		return model.ContainerMap
	}
	return ""
}

// ParseTypeExpr parses a type expression such as "Order",
// "com.acme.Page<Item>", "Map<string,List<Item>>" or "Item[]". A trailing
// "[]" is shorthand for List<...>. The last dot separates package and name.
func ParseTypeExpr(expr string) (model.ResolvedType, error) {
	p := &typeParser{src: expr}
	t, err := p.parseType()
	if err != nil {
		return model.ResolvedType{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return model.ResolvedType{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParseTypeExpr is like ParseTypeExpr but panics on error.
func MustParseTypeExpr(expr string) model.ResolvedType {
	t, err := ParseTypeExpr(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return &modelerrors.ParseError{
		Path:    "type expression " + fmt.Sprintf("%q", p.src),
		Column:  p.pos + 1,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) parseType() (model.ResolvedType, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	ident := p.src[start:p.pos]
	if ident == "" {
		if p.pos >= len(p.src) {
			return model.ResolvedType{}, p.errorf("missing type name")
		}
		return model.ResolvedType{}, p.errorf("unexpected %q", p.src[p.pos])
	}
	if strings.HasPrefix(ident, ".") || strings.HasSuffix(ident, ".") || strings.Contains(ident, "..") {
		return model.ResolvedType{}, p.errorf("malformed name %q", ident)
	}

	var t model.ResolvedType
	if i := strings.LastIndexByte(ident, '.'); i >= 0 {
		t = model.ResolvedType{Package: ident[:i], Name: ident[i+1:]}
	} else {
		t = model.ResolvedType{Name: ident}
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return model.ResolvedType{}, err
			}
			t.Args = append(t.Args, arg)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return model.ResolvedType{}, p.errorf("unterminated type arguments")
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == '>' {
				p.pos++
				break
			}
			return model.ResolvedType{}, p.errorf("unexpected %q in type arguments", p.src[p.pos])
		}
	}

	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "[]") {
			break
		}
		p.pos += 2
		t = model.NewType("List", t)
	}
	return t, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c == '-' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// substitute replaces type parameters in t with their bound arguments.
func substitute(t model.ResolvedType, bindings map[string]model.ResolvedType) model.ResolvedType {
	if len(bindings) == 0 {
		return t
	}
	if t.Package == "" && !t.IsGeneric() {
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
	}
	if !t.IsGeneric() {
		return t
	}
	args := make([]model.ResolvedType, len(t.Args))
	for i, arg := range t.Args {
		args[i] = substitute(arg, bindings)
	}
	return model.ResolvedType{Package: t.Package, Name: t.Name, Args: args}
}
