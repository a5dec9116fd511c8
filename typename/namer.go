// Package typename computes display names for models from their type contexts.
//
// A [Namer] is a pure function of a context's state at call time. The default
// implementation renders the context's resolved type, formatting generic
// arguments according to a [GenericNamingStrategy] and applying a [Casing].
//
//	n := typename.New(typename.Config{Generic: typename.GenericNamingOf})
//	n.TypeName(tc) // "PageOfItem"
package typename

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/model"
)

// Namer resolves the display name of a type context.
type Namer interface {
	TypeName(tc *model.TypeContext) string
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(tc *model.TypeContext) string

// TypeName implements Namer.
func (f NamerFunc) TypeName(tc *model.TypeContext) string {
	return f(tc)
}

// GenericNamingStrategy defines how generic type arguments are formatted.
type GenericNamingStrategy int

const (
	// GenericNamingGuillemets wraps arguments in guillemets (default).
	// Example: Page<Item> -> Page«Item»
	GenericNamingGuillemets GenericNamingStrategy = iota

	// GenericNamingAngleBrackets keeps angle brackets.
	// Example: Page<Item> -> Page<Item>
	GenericNamingAngleBrackets

	// GenericNamingOf uses "Of" between the base type and each argument.
	// Example: Map<String,Item> -> MapOfStringAndItem
	GenericNamingOf

	// GenericNamingUnderscore replaces brackets with underscores.
	// Example: Page<Item> -> Page_Item_
	GenericNamingUnderscore

	// GenericNamingFlattened drops brackets entirely.
	// Example: Page<Item> -> PageItem
	GenericNamingFlattened
)

var genericStrategyNames = map[string]GenericNamingStrategy{
	"":               GenericNamingGuillemets,
	"default":        GenericNamingGuillemets,
	"guillemets":     GenericNamingGuillemets,
	"angle":          GenericNamingAngleBrackets,
	"angle-brackets": GenericNamingAngleBrackets,
	"of":             GenericNamingOf,
	"underscore":     GenericNamingUnderscore,
	"flattened":      GenericNamingFlattened,
}

// ParseGenericNamingStrategy parses a strategy name such as "of" or "underscore".
func ParseGenericNamingStrategy(s string) (GenericNamingStrategy, error) {
	st, ok := genericStrategyNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown generic naming strategy %q (valid: %s)", s, strings.Join(ValidGenericNamingStrategies(), ", "))
	}
	return st, nil
}

// ValidGenericNamingStrategies returns the canonical strategy names.
func ValidGenericNamingStrategies() []string {
	return []string{"guillemets", "angle", "of", "underscore", "flattened"}
}

// Casing defines how the base type name is cased.
type Casing int

const (
	// CasingAsDeclared keeps names as declared (default).
	CasingAsDeclared Casing = iota
	// CasingPascal converts names to PascalCase.
	CasingPascal
	// CasingCamel converts names to camelCase.
	CasingCamel
	// CasingSnake converts names to snake_case.
	CasingSnake
	// CasingKebab converts names to kebab-case.
	CasingKebab
)

var casingNames = map[string]Casing{
	"":         CasingAsDeclared,
	"declared": CasingAsDeclared,
	"pascal":   CasingPascal,
	"camel":    CasingCamel,
	"snake":    CasingSnake,
	"kebab":    CasingKebab,
}

// ParseCasing parses a casing name such as "pascal" or "snake".
func ParseCasing(s string) (Casing, error) {
	c, ok := casingNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown casing %q (valid: declared, pascal, camel, snake, kebab)", s)
	}
	return c, nil
}

// Config configures the default Namer.
type Config struct {
	// Generic selects how generic arguments are rendered.
	Generic GenericNamingStrategy
	// Casing is applied to every type name segment.
	Casing Casing
	// Qualified prefixes the top-level name with its package, e.g. "com.acme.Order".
	Qualified bool
}

// DefaultConfig returns the default naming configuration: names as declared,
// generic arguments in guillemets, no package qualification.
func DefaultConfig() Config {
	return Config{Generic: GenericNamingGuillemets, Casing: CasingAsDeclared}
}

// DefaultNamer renders a context's resolved type as a display name.
type DefaultNamer struct {
	config Config
}

// New returns a DefaultNamer for cfg.
func New(cfg Config) *DefaultNamer {
	return &DefaultNamer{config: cfg}
}

// Default returns a DefaultNamer with DefaultConfig.
func Default() *DefaultNamer {
	return New(DefaultConfig())
}

// TypeName implements Namer.
func (n *DefaultNamer) TypeName(tc *model.TypeContext) string {
	if tc == nil {
		return ""
	}
	return n.Name(tc.Type)
}

// Name renders t as a display name.
func (n *DefaultNamer) Name(t model.ResolvedType) string {
	base := n.applyCasing(t.Name)
	if n.config.Qualified && t.Package != "" {
		base = t.Package + "." + base
	}
	if len(t.Args) == 0 {
		return base
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = n.argName(arg)
	}
	return base + n.formatGenericSuffix(args)
}

// argName renders a generic argument; arguments are never package qualified.
func (n *DefaultNamer) argName(t model.ResolvedType) string {
	name := n.applyCasing(t.Name)
	if n.config.Generic == GenericNamingOf {
		name = naming.ToPascalCase(name)
	}
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = n.argName(arg)
	}
	return name + n.formatGenericSuffix(args)
}

func (n *DefaultNamer) formatGenericSuffix(args []string) string {
	switch n.config.Generic {
	case GenericNamingAngleBrackets:
		return "<" + strings.Join(args, ",") + ">"
	case GenericNamingOf:
		return "Of" + strings.Join(args, "And")
	case GenericNamingUnderscore:
		return "_" + strings.Join(args, "_") + "_"
	case GenericNamingFlattened:
		return strings.Join(args, "")
	default:
		return "«" + strings.Join(args, ",") + "»"
	}
}

func (n *DefaultNamer) applyCasing(s string) string {
	switch n.config.Casing {
	case CasingPascal:
		return naming.ToPascalCase(s)
	case CasingCamel:
		return naming.ToCamelCase(s)
	case CasingSnake:
		return naming.ToSnakeCase(s)
	case CasingKebab:
		return naming.ToKebabCase(s)
	default:
		return s
	}
}

var _ Namer = (*DefaultNamer)(nil)
