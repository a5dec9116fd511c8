package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/reader"
	"go.yaml.in/yaml/v4"
)

// Manifest describes an API surface: its type declarations and its
// operations, grouped by resource group.
//
//	types:
//	  - name: Order
//	    package: shop
//	    properties:
//	      - {name: id, type: int, required: true}
//	      - {name: items, type: "List<Item>"}
//	groups:
//	  - name: orders
//	    operations:
//	      - {id: getOrder, method: GET, path: "/orders/{id}", returns: Order}
type Manifest struct {
	Types      []Declaration     `yaml:"types,omitempty"`
	GoPackages *GoPackagesConfig `yaml:"go_packages,omitempty"`
	Ignorable  []string          `yaml:"ignorable,omitempty"`
	Groups     []GroupDecl       `yaml:"groups"`

	// Dir is the directory relative paths are resolved against. LoadManifest
	// sets it to the manifest's directory.
	Dir string `yaml:"-"`
}

// GoPackagesConfig selects Go packages whose exported struct types are added
// to the catalog.
type GoPackagesConfig struct {
	Dir      string   `yaml:"dir,omitempty"`
	Patterns []string `yaml:"patterns"`
}

// GroupDecl declares a resource group.
type GroupDecl struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Operations  []OperationDecl `yaml:"operations"`
}

// OperationDecl declares one operation.
type OperationDecl struct {
	ID         string          `yaml:"id"`
	Method     string          `yaml:"method,omitempty"`
	Path       string          `yaml:"path,omitempty"`
	Returns    string          `yaml:"returns,omitempty"`
	Parameters []ParameterDecl `yaml:"parameters,omitempty"`
	Ignorable  []string        `yaml:"ignorable,omitempty"`
}

// ParameterDecl declares one operation parameter.
type ParameterDecl struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in,omitempty"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
}

// ParseManifest parses a manifest from YAML or JSON bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &modelerrors.ParseError{Message: "invalid manifest", Cause: err}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the caller
	if err != nil {
		return nil, &modelerrors.ParseError{Path: path, Cause: err}
	}
	m, err := ParseManifest(data)
	if err != nil {
		var pe *modelerrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

func (m *Manifest) validate() error {
	if len(m.Groups) == 0 {
		return &modelerrors.ConfigError{Option: "groups", Message: "manifest declares no groups"}
	}
	for i, g := range m.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return &modelerrors.ConfigError{Option: "groups", Value: i, Message: "group has no name"}
		}
		for j, op := range g.Operations {
			if op.ID == "" && op.Path == "" {
				return &modelerrors.ConfigError{
					Option:  "operations",
					Value:   fmt.Sprintf("%s[%d]", g.Name, j),
					Message: "operation needs an id or a path",
				}
			}
		}
	}
	return nil
}

// Catalog builds the type catalog from the declared types and, when
// configured, from Go packages. Declared types override Go types with the
// same qualified name.
func (m *Manifest) Catalog() (*Catalog, error) {
	catalog := NewCatalog()
	if m.GoPackages != nil && len(m.GoPackages.Patterns) > 0 {
		dir := m.GoPackages.Dir
		if dir == "" || !filepath.IsAbs(dir) {
			dir = filepath.Join(m.Dir, dir)
		}
		decls, err := LoadGoPackages(dir, m.GoPackages.Patterns...)
		if err != nil {
			return nil, err
		}
		for _, d := range decls {
			if err := catalog.Add(d); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range m.Types {
		if err := catalog.Add(d); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// IgnorableTypes parses the manifest-wide ignorable types, canonicalized
// through src.
func (m *Manifest) IgnorableTypes(src *Source) ([]model.ResolvedType, error) {
	return parseTypes(src, m.Ignorable)
}

// Scan converts the declared groups into a reader scan. Types are
// canonicalized through src.
func (m *Manifest) Scan(src *Source) (*reader.Scan, error) {
	scan := &reader.Scan{}
	for _, g := range m.Groups {
		group := model.ResourceGroup{Name: g.Name, Description: g.Description}
		gs := reader.GroupScan{Group: group}
		for _, od := range g.Operations {
			op, err := od.operation(src, group)
			if err != nil {
				return nil, err
			}
			gs.Operations = append(gs.Operations, op)
		}
		scan.Groups = append(scan.Groups, gs)
	}
	return scan, nil
}

func (od OperationDecl) operation(src *Source, group model.ResourceGroup) (*model.Operation, error) {
	op := &model.Operation{
		ID:     od.ID,
		Method: strings.ToUpper(od.Method),
		Path:   od.Path,
		Group:  group,
	}
	if op.ID == "" {
		op.ID = strings.TrimSpace(op.Method + " " + op.Path)
	}
	if od.Returns != "" {
		t, err := parseType(src, od.Returns)
		if err != nil {
			return nil, fmt.Errorf("source: operation %s returns: %w", op.ID, err)
		}
		op.ReturnType = &t
	}
	for _, pd := range od.Parameters {
		t, err := parseType(src, pd.Type)
		if err != nil {
			return nil, fmt.Errorf("source: operation %s parameter %s: %w", op.ID, pd.Name, err)
		}
		op.Parameters = append(op.Parameters, model.Parameter{
			Name:     pd.Name,
			In:       strings.ToLower(pd.In),
			Type:     t,
			Required: pd.Required,
		})
	}
	ignorable, err := parseTypes(src, od.Ignorable)
	if err != nil {
		return nil, fmt.Errorf("source: operation %s ignorable: %w", op.ID, err)
	}
	op.Ignorable = ignorable
	return op, nil
}

func parseType(src *Source, expr string) (model.ResolvedType, error) {
	t, err := ParseTypeExpr(expr)
	if err != nil {
		return model.ResolvedType{}, err
	}
	if src != nil {
		t = src.Canonical(t)
	}
	return t, nil
}

func parseTypes(src *Source, exprs []string) ([]model.ResolvedType, error) {
	var types []model.ResolvedType
	for _, expr := range exprs {
		t, err := parseType(src, expr)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
