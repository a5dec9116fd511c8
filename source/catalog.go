package source

import (
	"fmt"

	"github.com/erraggy/oasmodels/internal/maputil"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
)

// PropertyDecl declares one property of a type.
type PropertyDecl struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Example     any    `yaml:"example,omitempty"`
}

// Declaration describes a documented type. Property, subtype and base types
// are type expressions; Params names the generic parameters they may use.
type Declaration struct {
	Package       string         `yaml:"package,omitempty"`
	Name          string         `yaml:"name"`
	Params        []string       `yaml:"params,omitempty"`
	Description   string         `yaml:"description,omitempty"`
	Base          string         `yaml:"base,omitempty"`
	Discriminator string         `yaml:"discriminator,omitempty"`
	SubTypes      []string       `yaml:"subtypes,omitempty"`
	Example       any            `yaml:"example,omitempty"`
	Properties    []PropertyDecl `yaml:"properties,omitempty"`
}

// QualifiedName returns "package.Name".
func (d Declaration) QualifiedName() string {
	return model.ResolvedType{Package: d.Package, Name: d.Name}.QualifiedName()
}

type compiledProperty struct {
	decl PropertyDecl
	typ  model.ResolvedType
}

type compiledDecl struct {
	Declaration
	properties []compiledProperty
	subTypes   []model.ResolvedType
	base       model.ResolvedType
}

// Catalog is a set of type declarations keyed by qualified name.
type Catalog struct {
	decls  map[string]*compiledDecl
	byName map[string][]string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		decls:  make(map[string]*compiledDecl),
		byName: make(map[string][]string),
	}
}

// Add validates d and adds it to the catalog. A later declaration with the
// same qualified name replaces the earlier one.
func (c *Catalog) Add(d Declaration) error {
	if d.Name == "" {
		return &modelerrors.ConfigError{Option: "types", Message: "declaration has no name"}
	}
	cd := &compiledDecl{Declaration: d}
	seen := make(map[string]bool, len(d.Properties))
	for _, p := range d.Properties {
		if p.Name == "" {
			return &modelerrors.ConfigError{Option: "types", Value: d.QualifiedName(), Message: "property has no name"}
		}
		if seen[p.Name] {
			return &modelerrors.ConfigError{Option: "types", Value: d.QualifiedName(), Message: fmt.Sprintf("duplicate property %q", p.Name)}
		}
		seen[p.Name] = true
		t, err := ParseTypeExpr(p.Type)
		if err != nil {
			return fmt.Errorf("source: %s.%s: %w", d.QualifiedName(), p.Name, err)
		}
		cd.properties = append(cd.properties, compiledProperty{decl: p, typ: t})
	}
	for _, expr := range d.SubTypes {
		t, err := ParseTypeExpr(expr)
		if err != nil {
			return fmt.Errorf("source: %s subtypes: %w", d.QualifiedName(), err)
		}
		cd.subTypes = append(cd.subTypes, t)
	}
	if d.Base != "" {
		t, err := ParseTypeExpr(d.Base)
		if err != nil {
			return fmt.Errorf("source: %s base: %w", d.QualifiedName(), err)
		}
		cd.base = t
	}

	qn := d.QualifiedName()
	if _, exists := c.decls[qn]; !exists {
		c.byName[d.Name] = append(c.byName[d.Name], qn)
	}
	c.decls[qn] = cd
	return nil
}

// Lookup returns the declaration for t. A type without a package matches a
// declaration by simple name when exactly one such declaration exists.
func (c *Catalog) Lookup(t model.ResolvedType) (Declaration, bool) {
	cd, ok := c.lookup(t)
	if !ok {
		return Declaration{}, false
	}
	return cd.Declaration, true
}

func (c *Catalog) lookup(t model.ResolvedType) (*compiledDecl, bool) {
	if cd, ok := c.decls[t.QualifiedName()]; ok {
		return cd, true
	}
	if t.Package == "" {
		if names := c.byName[t.Name]; len(names) == 1 {
			return c.decls[names[0]], true
		}
	}
	return nil, false
}

// Len returns the number of declarations.
func (c *Catalog) Len() int {
	return len(c.decls)
}

// Names returns the qualified names of all declarations, sorted.
func (c *Catalog) Names() []string {
	return maputil.SortedKeys(c.decls)
}
